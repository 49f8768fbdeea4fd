// Package main is the LinkNest server entry point.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/linknest/linknest-server/internal/di"
	"github.com/linknest/linknest-server/internal/di/providers"
	"github.com/linknest/linknest-server/internal/logger"
)

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down", "signal", sig.String())

	// The container stops registered services in reverse order. The
	// store and search index live behind handle types, so they get
	// closed explicitly after everything that writes to them is gone.
	if err := injector.Shutdown(); err != nil {
		log.Error("Container shutdown error", "error", err)
	}

	closeHandle(log, "database", func() (shutdowner, error) {
		return do.Invoke[*providers.StoreHandle](injector)
	})
	closeHandle(log, "search index", func() (shutdowner, error) {
		return do.Invoke[*providers.SearchIndexHandle](injector)
	})

	log.Info("Goodbye")
}

type shutdowner interface {
	Shutdown() error
}

func closeHandle(log *logger.Logger, name string, invoke func() (shutdowner, error)) {
	handle, err := invoke()
	if err != nil {
		return
	}
	if err := handle.Shutdown(); err != nil {
		log.Error("Close failed", "component", name, "error", err)
		return
	}
	log.Info("Closed", "component", name)
}
