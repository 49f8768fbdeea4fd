// Package di provides dependency injection configuration for the LinkNest server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/linknest/linknest-server/internal/config"
	"github.com/linknest/linknest-server/internal/di/providers"
	"github.com/linknest/linknest-server/internal/logger"
	"github.com/linknest/linknest-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Place import layer
	do.Provide(injector, providers.ProvidePlacesClient)

	// Business services
	do.Provide(injector, providers.ProvideListService)
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideImportService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*providers.PlacesClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.ListService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.ImportService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Reconcile the search index with the store if writes were missed
	providers.SyncSearchIndex(injector)

	return nil
}
