package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/frases/internal/errs"
	"github.com/deppfellow/frases/internal/repository"
	"github.com/deppfellow/frases/internal/server"
	"github.com/deppfellow/frases/internal/service"
	"github.com/deppfellow/frases/internal/validation"
)

// Store failure messages, one per endpoint.
const (
	MessageCreateFailed = "Error al crear la frase"
	MessageListFailed   = "Error al obtener las frases"
	MessageGetFailed    = "Error al obtener la frase"
	MessageUpdateFailed = "Error al actualizar la frase"
	MessageDeleteFailed = "Error al eliminar la frase"
	MessageDeleted      = "Frase eliminada correctamente"
)

// PhraseBody is the JSON body of create and update.
type PhraseBody struct {
	Texto        string  `json:"texto" validate:"required"`
	MarcaTiempo  *string `json:"marca_tiempo"`
	Descripcion  *string `json:"descripcion"`
	PersonajesID *int64  `json:"personajes_id"`
}

func (b *PhraseBody) input() service.PhraseInput {
	return service.PhraseInput{
		Texto:        b.Texto,
		MarcaTiempo:  b.MarcaTiempo,
		Descripcion:  b.Descripcion,
		PersonajesID: b.PersonajesID,
	}
}

// CreatePhraseRequest is bound from POST /frases.
type CreatePhraseRequest struct {
	PhraseBody
}

func (r *CreatePhraseRequest) Validate() error {
	return validation.Struct(r)
}

// PhraseIDRequest is bound from routes carrying a phrase id in the path.
// The id is kept as text; one that does not parse matches no phrase.
type PhraseIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *PhraseIDRequest) Validate() error {
	return nil
}

// UpdatePhraseRequest is bound from PUT /frases/:id.
type UpdatePhraseRequest struct {
	ID string `param:"id" json:"-"`
	PhraseBody
}

func (r *UpdatePhraseRequest) Validate() error {
	return validation.Struct(r)
}

// CharacterPhrasesRequest is bound from GET /frases/personaje/:personaje_id.
type CharacterPhrasesRequest struct {
	PersonajeID string `param:"personaje_id" json:"-"`
}

func (r *CharacterPhrasesRequest) Validate() error {
	return nil
}

// ChapterPhrasesRequest is bound from GET /frases/capitulo/:capitulo_id.
type ChapterPhrasesRequest struct {
	CapituloID string `param:"capitulo_id" json:"-"`
}

func (r *ChapterPhrasesRequest) Validate() error {
	return nil
}

// ListPhrasesRequest carries nothing; it exists so GET /frases goes through
// the same pipeline as every other route.
type ListPhrasesRequest struct{}

func (r *ListPhrasesRequest) Validate() error {
	return nil
}

// PhraseResponse echoes a created or updated phrase. Optional fields the
// client left out are omitted.
type PhraseResponse struct {
	ID           int64   `json:"id"`
	Texto        string  `json:"texto"`
	MarcaTiempo  *string `json:"marca_tiempo,omitempty"`
	Descripcion  *string `json:"descripcion,omitempty"`
	PersonajesID *int64  `json:"personajes_id,omitempty"`
}

// PhraseEnvelope is the body of create and update.
type PhraseEnvelope struct {
	Success bool           `json:"success"`
	Frase   PhraseResponse `json:"frase"`
}

// MessageEnvelope is the body of delete.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Mensaje string `json:"mensaje"`
}

// PhraseListEnvelope is the body of the by-character and by-chapter listings.
type PhraseListEnvelope struct {
	Success bool                       `json:"success"`
	Frases  []repository.PhraseSummary `json:"frases"`
}

// PhraseHandler serves the /frases routes.
type PhraseHandler struct {
	Handler
	phrases *service.PhraseService
}

// NewPhraseHandler constructs a PhraseHandler.
func NewPhraseHandler(s *server.Server, phrases *service.PhraseService) *PhraseHandler {
	return &PhraseHandler{
		Handler: NewHandler(s),
		phrases: phrases,
	}
}

// CreatePhrase handles POST /frases.
func (h *PhraseHandler) CreatePhrase(c echo.Context, req *CreatePhraseRequest) (*PhraseEnvelope, error) {
	id, err := h.phrases.Create(c.Request().Context(), req.input())
	if err != nil {
		return nil, storeError(err, MessageCreateFailed)
	}

	return &PhraseEnvelope{Success: true, Frase: req.response(id)}, nil
}

// ListPhrases handles GET /frases. The body is a bare array.
func (h *PhraseHandler) ListPhrases(c echo.Context, _ *ListPhrasesRequest) ([]repository.Phrase, error) {
	phrases, err := h.phrases.List(c.Request().Context())
	if err != nil {
		return nil, storeError(err, MessageListFailed)
	}
	return phrases, nil
}

// GetPhrase handles GET /frases/:id. The body is the bare phrase.
func (h *PhraseHandler) GetPhrase(c echo.Context, req *PhraseIDRequest) (*repository.Phrase, error) {
	id, ok := parseID(req.ID)
	if !ok {
		return nil, errs.NewNotFoundError(service.MessagePhraseNotFound)
	}

	phrase, err := h.phrases.Get(c.Request().Context(), id)
	if err != nil {
		return nil, storeError(err, MessageGetFailed)
	}
	return phrase, nil
}

// UpdatePhrase handles PUT /frases/:id.
func (h *PhraseHandler) UpdatePhrase(c echo.Context, req *UpdatePhraseRequest) (*PhraseEnvelope, error) {
	id, ok := parseID(req.ID)
	if !ok {
		return nil, errs.NewNotFoundError(service.MessagePhraseNotFound)
	}

	if err := h.phrases.Update(c.Request().Context(), id, req.input()); err != nil {
		return nil, storeError(err, MessageUpdateFailed)
	}

	return &PhraseEnvelope{Success: true, Frase: req.response(id)}, nil
}

// DeletePhrase handles DELETE /frases/:id.
func (h *PhraseHandler) DeletePhrase(c echo.Context, req *PhraseIDRequest) (*MessageEnvelope, error) {
	id, ok := parseID(req.ID)
	if !ok {
		return nil, errs.NewNotFoundError(service.MessagePhraseNotFound)
	}

	if err := h.phrases.Delete(c.Request().Context(), id); err != nil {
		return nil, storeError(err, MessageDeleteFailed)
	}

	return &MessageEnvelope{Success: true, Mensaje: MessageDeleted}, nil
}

// ListByCharacter handles GET /frases/personaje/:personaje_id.
func (h *PhraseHandler) ListByCharacter(c echo.Context, req *CharacterPhrasesRequest) (*PhraseListEnvelope, error) {
	id, ok := parseID(req.PersonajeID)
	if !ok {
		return &PhraseListEnvelope{Success: true, Frases: []repository.PhraseSummary{}}, nil
	}

	phrases, err := h.phrases.ListByCharacter(c.Request().Context(), id)
	if err != nil {
		return nil, storeError(err, MessageListFailed)
	}
	return &PhraseListEnvelope{Success: true, Frases: phrases}, nil
}

// ListByChapter handles GET /frases/capitulo/:capitulo_id.
func (h *PhraseHandler) ListByChapter(c echo.Context, req *ChapterPhrasesRequest) (*PhraseListEnvelope, error) {
	id, ok := parseID(req.CapituloID)
	if !ok {
		return &PhraseListEnvelope{Success: true, Frases: []repository.PhraseSummary{}}, nil
	}

	phrases, err := h.phrases.ListByChapter(c.Request().Context(), id)
	if err != nil {
		return nil, storeError(err, MessageListFailed)
	}
	return &PhraseListEnvelope{Success: true, Frases: phrases}, nil
}

func (b *PhraseBody) response(id int64) PhraseResponse {
	return PhraseResponse{
		ID:           id,
		Texto:        b.Texto,
		MarcaTiempo:  b.MarcaTiempo,
		Descripcion:  b.Descripcion,
		PersonajesID: b.PersonajesID,
	}
}

// parseID accepts base-10 integers only.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// storeError passes HTTP errors through and turns everything else into a
// 500 with the endpoint's fixed message.
func storeError(err error, message string) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return errs.NewStoreError(message, err)
}
