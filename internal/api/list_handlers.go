package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/service"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists",
		Summary:     "List lists",
		Description: "Returns all lists with item counts, ordered by name or last modification",
		Tags:        []string{"Lists"},
	}, s.handleListLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "createList",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists",
		Summary:     "Create list",
		Description: "Creates a new list",
		Tags:        []string{"Lists"},
	}, s.handleCreateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Get list",
		Description: "Returns a list by ID with its item count",
		Tags:        []string{"Lists"},
	}, s.handleGetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateList",
		Method:      http.MethodPatch,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Update list",
		Description: "Updates list name, icon, and preview image",
		Tags:        []string{"Lists"},
	}, s.handleUpdateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Delete list",
		Description: "Deletes a list and every item it contains",
		Tags:        []string{"Lists"},
	}, s.handleDeleteList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getListItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}/items",
		Summary:     "Get list items",
		Description: "Returns all items in a list, ordered by creation time",
		Tags:        []string{"Lists"},
	}, s.handleGetListItems)
}

// === DTOs ===

// ListResponse contains list data in API responses.
type ListResponse struct {
	ID           string    `json:"id" doc:"List ID"`
	Name         string    `json:"name" doc:"List name"`
	Icon         string    `json:"icon,omitempty" doc:"Display icon"`
	PreviewImage string    `json:"preview_image,omitempty" doc:"Preview image URL"`
	ItemCount    int       `json:"item_count" doc:"Number of items in the list"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func listSummaryResponse(l *domain.ListSummary) ListResponse {
	return ListResponse{
		ID:           l.ID,
		Name:         l.Name,
		Icon:         l.Icon,
		PreviewImage: l.PreviewImage,
		ItemCount:    l.ItemCount,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func listResponse(l *domain.List, itemCount int) ListResponse {
	return ListResponse{
		ID:           l.ID,
		Name:         l.Name,
		Icon:         l.Icon,
		PreviewImage: l.PreviewImage,
		ItemCount:    itemCount,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// ListListsInput contains query parameters for listing lists.
type ListListsInput struct {
	Sort string `query:"sort" enum:"alphabetical,lastModified," doc:"Sort order (default alphabetical)"`
}

// ListListsResponse contains all lists.
type ListListsResponse struct {
	Lists []ListResponse `json:"lists" doc:"Lists with item counts"`
}

// ListListsOutput wraps the list response for Huma.
type ListListsOutput struct {
	Body ListListsResponse
}

// CreateListRequest is the request body for creating a list.
type CreateListRequest struct {
	Name         string `json:"name" minLength:"1" maxLength:"120" doc:"List name"`
	Icon         string `json:"icon,omitempty" maxLength:"16" doc:"Display icon"`
	PreviewImage string `json:"preview_image,omitempty" doc:"Preview image URL"`
}

// CreateListInput wraps the create list request for Huma.
type CreateListInput struct {
	Body CreateListRequest
}

// ListOutput wraps a single list response for Huma.
type ListOutput struct {
	Body ListResponse
}

// GetListInput contains parameters for getting a list.
type GetListInput struct {
	ID string `path:"id" doc:"List ID"`
}

// UpdateListRequest is the request body for updating a list.
type UpdateListRequest struct {
	Name         string `json:"name" minLength:"1" maxLength:"120" doc:"List name"`
	Icon         string `json:"icon,omitempty" maxLength:"16" doc:"Display icon"`
	PreviewImage string `json:"preview_image,omitempty" doc:"Preview image URL"`
}

// UpdateListInput wraps the update list request for Huma.
type UpdateListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body UpdateListRequest
}

// DeleteListInput contains parameters for deleting a list.
type DeleteListInput struct {
	ID string `path:"id" doc:"List ID"`
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// GetListItemsInput contains parameters for listing a list's items.
type GetListItemsInput struct {
	ID string `path:"id" doc:"List ID"`
}

// ListItemsResponse contains items in a list.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items" doc:"Items ordered by creation time"`
}

// ListItemsOutput wraps the list items response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// === Handlers ===

func (s *Server) handleListLists(ctx context.Context, input *ListListsInput) (*ListListsOutput, error) {
	lists, err := s.services.List.ListLists(ctx)
	if err != nil {
		return nil, err
	}

	// Store order is alphabetical; lastModified surfaces recently touched lists first.
	if input.Sort == "lastModified" {
		sort.Slice(lists, func(i, j int) bool {
			return lists[i].UpdatedAt.After(lists[j].UpdatedAt)
		})
	}

	resp := make([]ListResponse, len(lists))
	for i, l := range lists {
		resp[i] = listSummaryResponse(l)
	}

	return &ListListsOutput{Body: ListListsResponse{Lists: resp}}, nil
}

func (s *Server) handleCreateList(ctx context.Context, input *CreateListInput) (*ListOutput, error) {
	list, err := s.services.List.CreateList(ctx, service.CreateListRequest{
		Name:         input.Body.Name,
		Icon:         input.Body.Icon,
		PreviewImage: input.Body.PreviewImage,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: listResponse(list, 0)}, nil
}

func (s *Server) handleGetList(ctx context.Context, input *GetListInput) (*ListOutput, error) {
	summary, err := s.services.List.GetList(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: listSummaryResponse(summary)}, nil
}

func (s *Server) handleUpdateList(ctx context.Context, input *UpdateListInput) (*ListOutput, error) {
	list, err := s.services.List.UpdateList(ctx, input.ID, service.UpdateListRequest{
		Name:         input.Body.Name,
		Icon:         input.Body.Icon,
		PreviewImage: input.Body.PreviewImage,
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.services.List.GetList(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: listSummaryResponse(summary)}, nil
}

func (s *Server) handleDeleteList(ctx context.Context, input *DeleteListInput) (*MessageOutput, error) {
	if err := s.services.List.DeleteList(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "List deleted"}}, nil
}

func (s *Server) handleGetListItems(ctx context.Context, input *GetListItemsInput) (*ListItemsOutput, error) {
	items, err := s.services.Item.ListItems(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = itemResponse(item)
	}

	return &ListItemsOutput{Body: ListItemsResponse{Items: resp}}, nil
}
