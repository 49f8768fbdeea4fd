package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/search"
	"github.com/linknest/linknest-server/internal/store"
)

// SearchService bridges the search index with the data store. It also
// satisfies store.SearchIndexer so the store can mirror item writes
// into the index.
type SearchService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search executes a search across all items.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexItem indexes a single item with its current tag slugs.
// Called by the store after item writes.
func (s *SearchService) IndexItem(ctx context.Context, item *domain.Item) error {
	doc, err := s.buildItemDocument(ctx, item)
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}

	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	s.logger.Debug("indexed item", "id", item.ID, "title", item.Title)
	return nil
}

// DeleteItem removes an item from the index.
// Called by the store after item deletes.
func (s *SearchService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.index.DeleteDocument(itemID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	s.logger.Debug("removed item from index", "id", itemID)
	return nil
}

// DocumentCount returns the number of indexed items.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// RebuildIndex re-indexes every stored item. Called at startup when
// the index mapping version changed or the index was lost.
func (s *SearchService) RebuildIndex(ctx context.Context) error {
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return fmt.Errorf("list items for rebuild: %w", err)
	}

	docs := make([]*search.SearchDocument, 0, len(items))
	for _, item := range items {
		doc, err := s.buildItemDocument(ctx, item)
		if err != nil {
			s.logger.Warn("skipping item during index rebuild",
				"item_id", item.ID,
				"error", err,
			)
			continue
		}
		docs = append(docs, doc)
	}

	if err := s.index.Rebuild(docs); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	return nil
}

// SyncIndex brings the index up to date without a full rebuild when
// the document count already matches the store.
func (s *SearchService) SyncIndex(ctx context.Context) error {
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return fmt.Errorf("list items for sync: %w", err)
	}

	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("document count: %w", err)
	}

	if count == uint64(len(items)) {
		s.logger.Debug("search index in sync", "documents", count)
		return nil
	}

	s.logger.Info("search index out of sync, rebuilding",
		"indexed", count,
		"stored", len(items),
	)
	return s.RebuildIndex(ctx)
}

// buildItemDocument resolves tag slugs and converts an item to its
// index representation.
func (s *SearchService) buildItemDocument(ctx context.Context, item *domain.Item) (*search.SearchDocument, error) {
	tags, err := s.store.GetTagsForItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.Slug)
	}

	return search.ItemToSearchDocument(item, slugs), nil
}
