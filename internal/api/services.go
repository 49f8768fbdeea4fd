package api

import (
	"github.com/linknest/linknest-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	List   *service.ListService
	Item   *service.ItemService
	Tag    *service.TagService
	Search *service.SearchService
	Import *service.ImportService
}
