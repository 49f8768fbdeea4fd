package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linknest/linknest-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags with item counts, ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a tag, or returns the existing one with the same slug",
		Tags:        []string{"Tags"},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{slug}",
		Summary:     "Get tag",
		Description: "Returns a tag by slug with its item count",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{slug}",
		Summary:     "Rename tag",
		Description: "Changes a tag's name and slug; items keep the tag",
		Tags:        []string{"Tags"},
	}, s.handleRenameTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{slug}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from every item",
		Tags:        []string{"Tags"},
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{slug}/items",
		Summary:     "Get tag items",
		Description: "Returns all items carrying this tag",
		Tags:        []string{"Tags"},
	}, s.handleGetTagItems)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Display name"`
	Slug      string    `json:"slug" doc:"URL-safe slug"`
	ItemCount int       `json:"item_count,omitempty" doc:"Number of items carrying this tag"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListTagsResponse contains all tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags with item counts"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"60" doc:"Tag name"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps a single tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// GetTagInput contains parameters for getting a tag by slug.
type GetTagInput struct {
	Slug string `path:"slug" doc:"Tag slug"`
}

// RenameTagRequest is the request body for renaming a tag.
type RenameTagRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"60" doc:"New tag name"`
}

// RenameTagInput wraps the rename tag request for Huma.
type RenameTagInput struct {
	Slug string `path:"slug" doc:"Tag slug"`
	Body RenameTagRequest
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Slug string `path:"slug" doc:"Tag slug"`
}

// GetTagItemsInput contains parameters for listing a tag's items.
type GetTagItemsInput struct {
	Slug string `path:"slug" doc:"Tag slug"`
}

// TagItemsResponse contains items carrying a tag.
type TagItemsResponse struct {
	Items []ItemResponse `json:"items" doc:"Items carrying this tag"`
}

// TagItemsOutput wraps the tag items response for Huma.
type TagItemsOutput struct {
	Body TagItemsResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			ItemCount: t.ItemCount,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag, _, err := s.services.Tag.CreateTag(ctx, service.CreateTagRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{
		Body: TagResponse{
			ID:        tag.ID,
			Name:      tag.Name,
			Slug:      tag.Slug,
			CreatedAt: tag.CreatedAt,
			UpdatedAt: tag.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	summary, err := s.services.Tag.GetTagBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	return &TagOutput{
		Body: TagResponse{
			ID:        summary.ID,
			Name:      summary.Name,
			Slug:      summary.Slug,
			ItemCount: summary.ItemCount,
			CreatedAt: summary.CreatedAt,
			UpdatedAt: summary.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleRenameTag(ctx context.Context, input *RenameTagInput) (*TagOutput, error) {
	existing, err := s.services.Tag.GetTagBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.RenameTag(ctx, existing.ID, service.RenameTagRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{
		Body: TagResponse{
			ID:        tag.ID,
			Name:      tag.Name,
			Slug:      tag.Slug,
			CreatedAt: tag.CreatedAt,
			UpdatedAt: tag.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MessageOutput, error) {
	existing, err := s.services.Tag.GetTagBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, existing.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}

func (s *Server) handleGetTagItems(ctx context.Context, input *GetTagItemsInput) (*TagItemsOutput, error) {
	items, err := s.services.Item.ListItemsByTag(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = itemResponse(item)
	}

	return &TagItemsOutput{Body: TagItemsResponse{Items: resp}}, nil
}
