package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/id"
	"github.com/linknest/linknest-server/internal/store"
	"github.com/linknest/linknest-server/internal/util"
	"github.com/linknest/linknest-server/internal/validation"
)

// ItemService orchestrates item operations. Items always belong to
// exactly one list, fixed at creation.
type ItemService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewItemService creates a new item service.
func NewItemService(store *store.Store, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ItemWithTags pairs an item with its resolved tag records.
type ItemWithTags struct {
	*domain.Item
	Tags []*domain.Tag `json:"tags"`
}

// CreateItemRequest contains fields for creating an item. Tags are
// free-form names; each is created or reused by its normalized slug.
type CreateItemRequest struct {
	ListID       string   `json:"list_id" validate:"required"`
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	URL          string   `json:"url" validate:"omitempty,url"`
	Description  string   `json:"description" validate:"max=2000"`
	Location     string   `json:"location" validate:"max=200"`
	PreviewImage string   `json:"preview_image" validate:"omitempty,url"`
	Tags         []string `json:"tags" validate:"max=20"`
	Completed    bool     `json:"completed"`
}

// CreateItem creates a new item in a list.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemWithTags, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	now := time.Now()
	item := &domain.Item{
		ID:           itemID,
		ListID:       req.ListID,
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		Location:     req.Location,
		PreviewImage: req.PreviewImage,
		TagIDs:       tagIDs(tags),
		Completed:    req.Completed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		"item_id", itemID,
		"list_id", req.ListID,
		"title", req.Title,
	)

	return &ItemWithTags{Item: item, Tags: tags}, nil
}

// GetItem retrieves an item with its tags.
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*ItemWithTags, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	tags, err := s.store.GetTagsForItem(ctx, item)
	if err != nil {
		return nil, err
	}

	return &ItemWithTags{Item: item, Tags: tags}, nil
}

// ListItems returns all items in a list with their tags, ordered by
// creation time.
func (s *ItemService) ListItems(ctx context.Context, listID string) ([]*ItemWithTags, error) {
	items, err := s.store.ListItemsByList(ctx, listID)
	if err != nil {
		return nil, err
	}

	result := make([]*ItemWithTags, 0, len(items))
	for _, item := range items {
		tags, err := s.store.GetTagsForItem(ctx, item)
		if err != nil {
			return nil, err
		}
		result = append(result, &ItemWithTags{Item: item, Tags: tags})
	}

	return result, nil
}

// ListAllItems returns every item across all lists with their tags,
// ordered by creation time.
func (s *ItemService) ListAllItems(ctx context.Context) ([]*ItemWithTags, error) {
	items, err := s.store.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*ItemWithTags, 0, len(items))
	for _, item := range items {
		tags, err := s.store.GetTagsForItem(ctx, item)
		if err != nil {
			return nil, err
		}
		result = append(result, &ItemWithTags{Item: item, Tags: tags})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// ListItemsByTag returns all items carrying a tag, looked up by slug.
func (s *ItemService) ListItemsByTag(ctx context.Context, slug string) ([]*ItemWithTags, error) {
	tag, err := s.store.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	itemIDs, err := s.store.GetItemIDsForTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*ItemWithTags, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := s.store.GetItem(ctx, itemID)
		if err != nil {
			// Index can briefly outlive a deleted item.
			s.logger.Warn("skipping unresolvable item for tag",
				"item_id", itemID,
				"tag_slug", slug,
			)
			continue
		}

		tags, err := s.store.GetTagsForItem(ctx, item)
		if err != nil {
			return nil, err
		}
		result = append(result, &ItemWithTags{Item: item, Tags: tags})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// UpdateItemRequest contains fields for updating an item. The owning
// list cannot change.
type UpdateItemRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	URL          string   `json:"url" validate:"omitempty,url"`
	Description  string   `json:"description" validate:"max=2000"`
	Location     string   `json:"location" validate:"max=200"`
	PreviewImage string   `json:"preview_image" validate:"omitempty,url"`
	Tags         []string `json:"tags" validate:"max=20"`
	Completed    bool     `json:"completed"`
}

// UpdateItem updates an item's content and tag set.
func (s *ItemService) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*ItemWithTags, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	item.Title = req.Title
	item.URL = req.URL
	item.Description = req.Description
	item.Location = req.Location
	item.PreviewImage = req.PreviewImage
	item.TagIDs = tagIDs(tags)
	item.Completed = req.Completed
	item.Touch()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item updated",
		"item_id", itemID,
		"title", req.Title,
	)

	return &ItemWithTags{Item: item, Tags: tags}, nil
}

// SetCompleted toggles an item's completion state without touching
// the rest of its fields.
func (s *ItemService) SetCompleted(ctx context.Context, itemID string, completed bool) (*ItemWithTags, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Completed = completed
	item.Touch()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	tags, err := s.store.GetTagsForItem(ctx, item)
	if err != nil {
		return nil, err
	}

	return &ItemWithTags{Item: item, Tags: tags}, nil
}

// DeleteItem removes an item from its list.
func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}

// resolveTags creates or reuses a tag for each raw name. Names that
// normalize to an empty slug are dropped, duplicates collapse to one.
func (s *ItemService) resolveTags(ctx context.Context, rawNames []string) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	seen := make(map[string]bool, len(rawNames))

	for _, name := range rawNames {
		slug := util.NormalizeTagSlug(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		tag, _, err := s.store.FindOrCreateTagBySlug(ctx, slug, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// tagIDs projects tag records to their ids.
func tagIDs(tags []*domain.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
