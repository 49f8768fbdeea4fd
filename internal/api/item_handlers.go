package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linknest/linknest-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Create item",
		Description: "Creates a new item in a list",
		Tags:        []string{"Items"},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List all items",
		Description: "Returns every item across all lists, ordered by creation time",
		Tags:        []string{"Items"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item by ID with its tags",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update item",
		Description: "Updates an item's content and tag set",
		Tags:        []string{"Items"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "setItemCompleted",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}/completed",
		Summary:     "Set item completed",
		Description: "Sets an item's completion flag",
		Tags:        []string{"Items"},
	}, s.handleSetItemCompleted)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item from its list",
		Tags:        []string{"Items"},
	}, s.handleDeleteItem)
}

// === DTOs ===

// ItemResponse contains item data in API responses.
type ItemResponse struct {
	ID           string        `json:"id" doc:"Item ID"`
	ListID       string        `json:"list_id" doc:"Owning list ID"`
	Title        string        `json:"title" doc:"Item title"`
	URL          string        `json:"url,omitempty" doc:"Linked URL"`
	Description  string        `json:"description,omitempty" doc:"Free-form notes"`
	Location     string        `json:"location,omitempty" doc:"Location text"`
	PreviewImage string        `json:"preview_image,omitempty" doc:"Preview image URL"`
	Tags         []TagResponse `json:"tags" doc:"Tags on this item"`
	Completed    bool          `json:"completed" doc:"Completion flag"`
	CreatedAt    time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time     `json:"updated_at" doc:"Last update time"`
}

func itemResponse(item *service.ItemWithTags) ItemResponse {
	tags := make([]TagResponse, len(item.Tags))
	for i, t := range item.Tags {
		tags[i] = TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}

	return ItemResponse{
		ID:           item.ID,
		ListID:       item.ListID,
		Title:        item.Title,
		URL:          item.URL,
		Description:  item.Description,
		Location:     item.Location,
		PreviewImage: item.PreviewImage,
		Tags:         tags,
		Completed:    item.Completed,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	ListID       string   `json:"list_id" minLength:"1" doc:"Owning list ID"`
	Title        string   `json:"title" minLength:"1" maxLength:"200" doc:"Item title"`
	URL          string   `json:"url,omitempty" doc:"Linked URL"`
	Description  string   `json:"description,omitempty" maxLength:"2000" doc:"Free-form notes"`
	Location     string   `json:"location,omitempty" maxLength:"200" doc:"Location text"`
	PreviewImage string   `json:"preview_image,omitempty" doc:"Preview image URL"`
	Tags         []string `json:"tags,omitempty" maxItems:"20" doc:"Tag names, created or reused by slug"`
	Completed    bool     `json:"completed,omitempty" doc:"Completion flag"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Body CreateItemRequest
}

// ItemOutput wraps a single item response for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// GetItemInput contains parameters for getting an item.
type GetItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// UpdateItemRequest is the request body for updating an item.
// The owning list cannot change.
type UpdateItemRequest struct {
	Title        string   `json:"title" minLength:"1" maxLength:"200" doc:"Item title"`
	URL          string   `json:"url,omitempty" doc:"Linked URL"`
	Description  string   `json:"description,omitempty" maxLength:"2000" doc:"Free-form notes"`
	Location     string   `json:"location,omitempty" maxLength:"200" doc:"Location text"`
	PreviewImage string   `json:"preview_image,omitempty" doc:"Preview image URL"`
	Tags         []string `json:"tags,omitempty" maxItems:"20" doc:"Tag names, created or reused by slug"`
	Completed    bool     `json:"completed,omitempty" doc:"Completion flag"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body UpdateItemRequest
}

// SetItemCompletedRequest is the request body for toggling completion.
type SetItemCompletedRequest struct {
	Completed bool `json:"completed" doc:"New completion state"`
}

// SetItemCompletedInput wraps the completion toggle for Huma.
type SetItemCompletedInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body SetItemCompletedRequest
}

// DeleteItemInput contains parameters for deleting an item.
type DeleteItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// === Handlers ===

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.CreateItem(ctx, service.CreateItemRequest{
		ListID:       input.Body.ListID,
		Title:        input.Body.Title,
		URL:          input.Body.URL,
		Description:  input.Body.Description,
		Location:     input.Body.Location,
		PreviewImage: input.Body.PreviewImage,
		Tags:         input.Body.Tags,
		Completed:    input.Body.Completed,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(item)}, nil
}

func (s *Server) handleListItems(ctx context.Context, _ *struct{}) (*ListItemsOutput, error) {
	items, err := s.services.Item.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = itemResponse(item)
	}

	return &ListItemsOutput{Body: ListItemsResponse{Items: resp}}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(item)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.UpdateItem(ctx, input.ID, service.UpdateItemRequest{
		Title:        input.Body.Title,
		URL:          input.Body.URL,
		Description:  input.Body.Description,
		Location:     input.Body.Location,
		PreviewImage: input.Body.PreviewImage,
		Tags:         input.Body.Tags,
		Completed:    input.Body.Completed,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(item)}, nil
}

func (s *Server) handleSetItemCompleted(ctx context.Context, input *SetItemCompletedInput) (*ItemOutput, error) {
	item, err := s.services.Item.SetCompleted(ctx, input.ID, input.Body.Completed)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(item)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*MessageOutput, error) {
	if err := s.services.Item.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}
