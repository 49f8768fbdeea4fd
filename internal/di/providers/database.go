package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/linknest/linknest-server/internal/config"
	"github.com/linknest/linknest-server/internal/logger"
	"github.com/linknest/linknest-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.DBPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.DBPath())

	return &StoreHandle{Store: db}, nil
}

// Bootstrap contains the starter-list bootstrap result.
type Bootstrap struct {
	Result *store.BootstrapResult
}

// ProvideBootstrap ensures the starter lists exist on first run.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	result, err := storeHandle.EnsureStarterLists(context.Background())
	if err != nil {
		return nil, err
	}

	if result.IsFirstRun {
		log.Info("First run detected, seeded starter lists", "count", len(result.Lists))
	} else {
		log.Info("Existing data found, skipping starter lists")
	}

	return &Bootstrap{Result: result}, nil
}
