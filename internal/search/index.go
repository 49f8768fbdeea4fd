// Package search provides full-text search over items using Bleve.
//
// The index lives alongside the Badger database on disk. Item writes are
// mirrored into the index asynchronously by the store, and the whole index
// can be rebuilt from stored items at startup when the mapping changes.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// mappingVersion is bumped whenever buildIndexMapping changes in a way
// that requires reindexing existing documents.
const mappingVersion = "1"

// versionFileName is written next to the index directory so stale indexes
// can be detected and rebuilt on open.
const versionFileName = "search.version"

// SearchIndex wraps a Bleve index with versioning and concurrency control.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	// DataPath is the directory where the index is stored.
	DataPath string
	// Logger for index operations. Defaults to slog.Default() if nil.
	Logger *slog.Logger
}

// NewSearchIndex opens an existing index or creates a new one.
//
// If the on-disk mapping version does not match mappingVersion, the old
// index is discarded and a fresh one is created. The caller is expected
// to repopulate it from the store afterwards.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	indexPath := filepath.Join(opts.DataPath, "items.bleve")
	versionPath := filepath.Join(opts.DataPath, versionFileName)

	si := &SearchIndex{
		path:   indexPath,
		logger: opts.Logger,
	}

	needsRebuild := false
	if data, err := os.ReadFile(versionPath); err == nil {
		if string(data) != mappingVersion {
			si.logger.Info("search index mapping version changed, rebuilding",
				"old_version", string(data),
				"new_version", mappingVersion)
			needsRebuild = true
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading index version file: %w", err)
	}

	if needsRebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("removing stale search index: %w", err)
		}
	}

	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		si.logger.Info("creating new search index", "path", indexPath)
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("creating search index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0644); err != nil {
			index.Close()
			return nil, fmt.Errorf("writing index version file: %w", err)
		}
	} else if err != nil {
		// Index exists but cannot be opened. Recreate it rather than fail
		// startup; the store remains the source of truth.
		si.logger.Warn("search index corrupt, recreating", "error", err)
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("removing corrupt search index: %w", err)
		}
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("recreating search index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0644); err != nil {
			index.Close()
			return nil, fmt.Errorf("writing index version file: %w", err)
		}
	}

	si.index = index
	return si, nil
}

// IndexDocument adds or updates a single document in the index.
func (si *SearchIndex) IndexDocument(doc *SearchDocument) error {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if err := si.index.Index(doc.ID, doc.ToMap()); err != nil {
		return fmt.Errorf("indexing document %s: %w", doc.ID, err)
	}
	return nil
}

// IndexDocuments indexes documents in batches for efficiency.
func (si *SearchIndex) IndexDocuments(docs []*SearchDocument) error {
	si.mu.RLock()
	defer si.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		batch := si.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("adding document %s to batch: %w", doc.ID, err)
			}
		}

		if err := si.index.Batch(batch); err != nil {
			return fmt.Errorf("executing index batch: %w", err)
		}
	}

	return nil
}

// DeleteDocument removes a document from the index.
func (si *SearchIndex) DeleteDocument(id string) error {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if err := si.index.Delete(id); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	return nil
}

// DeleteDocuments removes multiple documents in a single batch.
func (si *SearchIndex) DeleteDocuments(ids []string) error {
	si.mu.RLock()
	defer si.mu.RUnlock()

	batch := si.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}

	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("executing delete batch: %w", err)
	}
	return nil
}

// DocumentCount returns the number of documents in the index.
func (si *SearchIndex) DocumentCount() (uint64, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	return si.index.DocCount()
}

// Rebuild replaces the entire index contents with the given documents.
// It takes the exclusive lock so searches see either the old or new state.
func (si *SearchIndex) Rebuild(docs []*SearchDocument) error {
	si.mu.Lock()
	defer si.mu.Unlock()

	si.logger.Info("rebuilding search index", "documents", len(docs))

	if err := si.index.Close(); err != nil {
		return fmt.Errorf("closing index for rebuild: %w", err)
	}

	if err := os.RemoveAll(si.path); err != nil {
		return fmt.Errorf("removing index for rebuild: %w", err)
	}

	index, err := bleve.New(si.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating index for rebuild: %w", err)
	}
	si.index = index

	const batchSize = 500
	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		batch := si.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("adding document %s to rebuild batch: %w", doc.ID, err)
			}
		}
		if err := si.index.Batch(batch); err != nil {
			return fmt.Errorf("executing rebuild batch: %w", err)
		}
	}

	si.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}

// Close closes the underlying index.
func (si *SearchIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()

	return si.index.Close()
}
