package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linknest/linknest-server/internal/service"
)

func (s *Server) registerImportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "importPlace",
		Method:      http.MethodPost,
		Path:        "/api/v1/import/place",
		Summary:     "Import place",
		Description: "Extracts a pre-filled item draft from a Google Maps link. Best effort: a failed lookup degrades to parsing the link itself.",
		Tags:        []string{"Import"},
	}, s.handleImportPlace)
}

// === DTOs ===

// ImportPlaceRequest is the request body for a place import.
type ImportPlaceRequest struct {
	URL string `json:"url" minLength:"1" format:"uri" doc:"Google Maps share link"`
}

// ImportPlaceInput wraps the import request for Huma.
type ImportPlaceInput struct {
	Body ImportPlaceRequest
}

// ImportPlaceResponse is a pre-filled item draft.
type ImportPlaceResponse struct {
	Title        string        `json:"title" doc:"Suggested item title"`
	URL          string        `json:"url" doc:"The imported link"`
	Description  string        `json:"description" doc:"Suggested description"`
	Location     string        `json:"location,omitempty" doc:"Address or coordinates"`
	PreviewImage string        `json:"preview_image,omitempty" doc:"Place photo URL"`
	Rating       float64       `json:"rating,omitempty" doc:"Place rating when resolved"`
	PriceLevel   int           `json:"price_level,omitempty" doc:"Price level when resolved"`
	Tags         []TagResponse `json:"tags" doc:"Tags created or reused for the place's categories"`
}

// ImportPlaceOutput wraps the import response for Huma.
type ImportPlaceOutput struct {
	Body ImportPlaceResponse
}

// === Handlers ===

func (s *Server) handleImportPlace(ctx context.Context, input *ImportPlaceInput) (*ImportPlaceOutput, error) {
	result, err := s.services.Import.ImportPlace(ctx, service.ImportRequest{
		URL: input.Body.URL,
	})
	if err != nil {
		return nil, err
	}

	tags := make([]TagResponse, len(result.Tags))
	for i, t := range result.Tags {
		tags[i] = TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}

	return &ImportPlaceOutput{
		Body: ImportPlaceResponse{
			Title:        result.Title,
			URL:          result.URL,
			Description:  result.Description,
			Location:     result.Location,
			PreviewImage: result.PreviewImage,
			Rating:       result.Rating,
			PriceLevel:   result.PriceLevel,
			Tags:         tags,
		},
	}, nil
}
