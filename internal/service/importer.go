package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/places"
	"github.com/linknest/linknest-server/internal/store"
	"github.com/linknest/linknest-server/internal/util"
	"github.com/linknest/linknest-server/internal/validation"
)

// Importer service errors.
var (
	ErrImportInFlight = errors.New("an import is already in progress")
)

// ImportService turns Google Maps links into item drafts. Extraction
// is best-effort: a failed lookup degrades to whatever the link itself
// yields, it never fails the request.
type ImportService struct {
	places    *places.Client
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator

	// Guards against concurrent imports. Re-entry is rejected, not
	// queued, matching a single-user app where a second paste while
	// one is resolving is almost always a mistake.
	importing atomic.Bool
}

// NewImportService creates a new import service.
func NewImportService(places *places.Client, store *store.Store, logger *slog.Logger) *ImportService {
	return &ImportService{
		places:    places,
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// PlacesEnabled reports whether imports can resolve details through
// the Places API, as opposed to URL parsing alone.
func (s *ImportService) PlacesEnabled() bool {
	return s.places != nil && s.places.Enabled()
}

// ImportRequest contains the link to import.
type ImportRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ImportResult is a pre-filled item draft. Tags named by the place
// lookup are already created or reused, ready to attach to an item.
type ImportResult struct {
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	Description  string        `json:"description"`
	Location     string        `json:"location,omitempty"`
	PreviewImage string        `json:"preview_image,omitempty"`
	Rating       float64       `json:"rating,omitempty"`
	PriceLevel   int           `json:"price_level,omitempty"`
	Tags         []*domain.Tag `json:"tags"`
}

// ImportPlace extracts a place draft from a Google Maps link.
func (s *ImportService) ImportPlace(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !s.importing.CompareAndSwap(false, true) {
		return nil, ErrImportInFlight
	}
	defer s.importing.Store(false)

	draft := s.places.ExtractPlace(ctx, req.URL)

	result := &ImportResult{
		Title:        draft.Title,
		URL:          draft.URL,
		Description:  draft.Description,
		Location:     draft.Location,
		PreviewImage: draft.PreviewImage,
		Rating:       draft.Rating,
		PriceLevel:   draft.PriceLevel,
		Tags:         []*domain.Tag{},
	}

	for _, name := range draft.TagNames {
		slug := util.NormalizeTagSlug(name)
		if slug == "" {
			continue
		}

		tag, _, err := s.store.FindOrCreateTagBySlug(ctx, slug, name)
		if err != nil {
			// Tag creation failing must not sink the import.
			s.logger.Warn("could not create tag for imported place",
				"tag_name", name,
				"error", err,
			)
			continue
		}
		result.Tags = append(result.Tags, tag)
	}

	s.logger.Info("place imported",
		"title", result.Title,
		"tags", len(result.Tags),
	)

	return result, nil
}
