package providers

import (
	"github.com/samber/do/v2"

	"github.com/linknest/linknest-server/internal/config"
	"github.com/linknest/linknest-server/internal/logger"
	"github.com/linknest/linknest-server/internal/places"
)

// PlacesClientHandle wraps the places client with shutdown capability.
type PlacesClientHandle struct {
	*places.Client
}

// Shutdown implements do.Shutdownable.
func (h *PlacesClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvidePlacesClient provides the Google Maps place lookup client.
func ProvidePlacesClient(i do.Injector) (*PlacesClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := places.New(cfg.Places, log.Logger)
	if client.Enabled() {
		log.Info("Places API lookups enabled")
	} else {
		log.Info("No Places API key configured, place import runs in URL-only mode")
	}

	return &PlacesClientHandle{Client: client}, nil
}
