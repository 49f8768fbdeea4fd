// Package service provides the business logic layer for lists, items,
// tags, search, and the place importer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/id"
	"github.com/linknest/linknest-server/internal/store"
	"github.com/linknest/linknest-server/internal/validation"
)

// ListService orchestrates list operations.
type ListService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewListService creates a new list service.
func NewListService(store *store.Store, logger *slog.Logger) *ListService {
	return &ListService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// Bootstrap seeds starter lists on an empty store.
func (s *ListService) Bootstrap(ctx context.Context) (*store.BootstrapResult, error) {
	result, err := s.store.EnsureStarterLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure starter lists: %w", err)
	}

	if result.IsFirstRun {
		s.logger.Info("seeded starter lists", "count", len(result.Lists))
	}

	return result, nil
}

// CreateListRequest contains fields for creating a list.
type CreateListRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=120"`
	Icon         string `json:"icon" validate:"max=16"`
	PreviewImage string `json:"preview_image" validate:"omitempty,url"`
}

// CreateList creates a new list.
func (s *ListService) CreateList(ctx context.Context, req CreateListRequest) (*domain.List, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	listID, err := id.Generate("list")
	if err != nil {
		return nil, fmt.Errorf("generate list ID: %w", err)
	}

	now := time.Now()
	list := &domain.List{
		ID:           listID,
		Name:         req.Name,
		Icon:         req.Icon,
		PreviewImage: req.PreviewImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	s.logger.Info("list created",
		"list_id", listID,
		"name", req.Name,
	)

	return list, nil
}

// GetList retrieves a list with its item count.
func (s *ListService) GetList(ctx context.Context, listID string) (*domain.ListSummary, error) {
	return s.store.GetListSummary(ctx, listID)
}

// ListLists returns all lists with item counts, ordered by name.
func (s *ListService) ListLists(ctx context.Context) ([]*domain.ListSummary, error) {
	return s.store.ListLists(ctx)
}

// UpdateListRequest contains fields for updating a list. Zero-valued
// fields are applied as-is, so callers send the full desired state.
type UpdateListRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=120"`
	Icon         string `json:"icon" validate:"max=16"`
	PreviewImage string `json:"preview_image" validate:"omitempty,url"`
}

// UpdateList updates list metadata.
func (s *ListService) UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*domain.List, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	list.Name = req.Name
	list.Icon = req.Icon
	list.PreviewImage = req.PreviewImage
	list.Touch()

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	s.logger.Info("list updated",
		"list_id", listID,
		"name", req.Name,
	)

	return list, nil
}

// DeleteList deletes a list and every item it owns.
func (s *ListService) DeleteList(ctx context.Context, listID string) error {
	if err := s.store.DeleteList(ctx, listID); err != nil {
		return err
	}

	s.logger.Info("list deleted", "list_id", listID)
	return nil
}
