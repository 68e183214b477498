package handler

import (
	"github.com/deppfellow/frases/internal/server"
	"github.com/deppfellow/frases/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler
	Phrase  *PhraseHandler
	Catalog *CatalogHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Phrase:  NewPhraseHandler(s, services.Phrases),
		Catalog: NewCatalogHandler(s, services.Catalog),
	}
}
