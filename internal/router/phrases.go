package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/handler"
	"github.com/deppfellow/frases/internal/middleware"
)

// readMethods are served by every GET route; HEAD gets the same status
// and headers without a body.
var readMethods = []string{http.MethodGet, http.MethodHead}

func registerPhraseRoutes(r *echo.Echo, h *handler.Handlers) {
	ph := h.Phrase
	singleSegment := middleware.SingleSegmentParams()

	frases := r.Group("/frases")

	frases.POST("", handler.Handle(ph.Handler, ph.CreatePhrase, http.StatusCreated))
	frases.Match(readMethods, "", handler.Handle(ph.Handler, ph.ListPhrases, http.StatusOK))

	// Static segments win over :id regardless of registration order.
	frases.Match(readMethods, "/personaje/:personaje_id", handler.Handle(ph.Handler, ph.ListByCharacter, http.StatusOK), singleSegment)
	frases.Match(readMethods, "/capitulo/:capitulo_id", handler.Handle(ph.Handler, ph.ListByChapter, http.StatusOK), singleSegment)

	frases.Match(readMethods, "/:id", handler.Handle(ph.Handler, ph.GetPhrase, http.StatusOK), singleSegment)
	frases.PUT("/:id", handler.Handle(ph.Handler, ph.UpdatePhrase, http.StatusOK), singleSegment)
	frases.DELETE("/:id", handler.Handle(ph.Handler, ph.DeletePhrase, http.StatusOK), singleSegment)
}

func registerCatalogRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Catalog

	r.Match(readMethods, "/personajes", handler.Handle(ch.Handler, ch.ListCharacters, http.StatusOK))
	r.Match(readMethods, "/capitulos", handler.Handle(ch.Handler, ch.ListChapters, http.StatusOK))
}
