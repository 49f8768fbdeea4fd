package service

import (
	"context"
	"log/slog"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/store"
	"github.com/linknest/linknest-server/internal/util"
	"github.com/linknest/linknest-server/internal/validation"
)

// TagService orchestrates global tag operations. Tags are shared
// across all lists; their item counts are derived, never stored.
type TagService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewTagService creates a new tag service.
func NewTagService(store *store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListTags returns all tags with their item counts, ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.TagSummary, error) {
	return s.store.ListTags(ctx)
}

// GetTagBySlug returns a tag with its item count.
func (s *TagService) GetTagBySlug(ctx context.Context, slug string) (*domain.TagSummary, error) {
	tag, err := s.store.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.store.GetTagSummary(ctx, tag.ID)
}

// CreateTagRequest contains fields for creating a tag. The tagslug
// rule rejects names that normalize to an empty slug.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60,tagslug"`
}

// CreateTag creates or reuses a tag by the normalized form of its name.
// Creating "Date Night" twice, or "date-night" after "Date Night",
// yields the same tag.
func (s *TagService) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, bool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}

	slug := util.NormalizeTagSlug(req.Name)

	tag, created, err := s.store.FindOrCreateTagBySlug(ctx, slug, req.Name)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.Info("tag created",
			"tag_id", tag.ID,
			"slug", slug,
		)
	}

	return tag, created, nil
}

// RenameTagRequest contains fields for renaming a tag.
type RenameTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60,tagslug"`
}

// RenameTag changes a tag's display name and slug. Items keep the tag
// through the rename since they reference it by id.
func (s *TagService) RenameTag(ctx context.Context, tagID string, req RenameTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	newSlug := util.NormalizeTagSlug(req.Name)

	tag, err := s.store.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	tag.Name = req.Name
	tag.Slug = newSlug
	tag.Touch()

	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag renamed",
		"tag_id", tagID,
		"slug", newSlug,
	)

	return tag, nil
}

// DeleteTag removes a tag and detaches it from every item carrying it.
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "tag_id", tagID)
	return nil
}
