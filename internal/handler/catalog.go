package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/repository"
	"github.com/deppfellow/frases/internal/server"
	"github.com/deppfellow/frases/internal/service"
)

const (
	MessageCharactersFailed = "Error al obtener los personajes"
	MessageChaptersFailed   = "Error al obtener los capítulos"
)

// CatalogRequest carries nothing; both catalog routes read a whole table.
type CatalogRequest struct{}

func (r *CatalogRequest) Validate() error {
	return nil
}

type CharactersEnvelope struct {
	Success    bool                `json:"success"`
	Personajes []repository.Record `json:"personajes"`
}

type ChaptersEnvelope struct {
	Success   bool                `json:"success"`
	Capitulos []repository.Record `json:"capitulos"`
}

// CatalogHandler serves /personajes and /capitulos.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

// ListCharacters handles GET /personajes.
func (h *CatalogHandler) ListCharacters(c echo.Context, _ *CatalogRequest) (*CharactersEnvelope, error) {
	records, err := h.catalog.Characters(c.Request().Context())
	if err != nil {
		return nil, storeError(err, MessageCharactersFailed)
	}
	return &CharactersEnvelope{Success: true, Personajes: records}, nil
}

// ListChapters handles GET /capitulos.
func (h *CatalogHandler) ListChapters(c echo.Context, _ *CatalogRequest) (*ChaptersEnvelope, error) {
	records, err := h.catalog.Chapters(c.Request().Context())
	if err != nil {
		return nil, storeError(err, MessageChaptersFailed)
	}
	return &ChaptersEnvelope{Success: true, Capitulos: records}, nil
}
