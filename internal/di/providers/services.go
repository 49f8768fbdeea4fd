package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/linknest/linknest-server/internal/service"
)

// ProvideListService provides the list service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewListService(storeHandle.Store, log), nil
}

// ProvideItemService provides the item service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewItemService(storeHandle.Store, log), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewTagService(storeHandle.Store, log), nil
}

// ProvideImportService provides the place import service.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	placesHandle := do.MustInvoke[*PlacesClientHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewImportService(placesHandle.Client, storeHandle.Store, log), nil
}
