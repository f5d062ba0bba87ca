package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/api/dto"
	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

// NgoHandler exposes the registry endpoints.
type NgoHandler struct {
	Repo ports.NgoRepository
	// NewID assigns ids to created NGOs. Defaults to random UUIDs.
	NewID func() string

	validator *requestValidator
}

func NewNgoHandler(repo ports.NgoRepository) *NgoHandler {
	return &NgoHandler{
		Repo:      repo,
		NewID:     uuid.NewString,
		validator: newRequestValidator(),
	}
}

func (h *NgoHandler) List(w http.ResponseWriter, r *http.Request) {
	ngos, err := h.Repo.ListNgos(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("list ngos failed")
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewNgoListResponse(ngos))
}

func (h *NgoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ngo, err := h.Repo.GetNgo(r.Context(), id)
	if errors.Is(err, domain.ErrNgoNotFound) {
		render.Render(w, r, ErrNotFound(err))
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("id", id).Msg("get ngo failed")
		render.Render(w, r, ErrInternal(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewNgoResponse(ngo))
}

func (h *NgoHandler) Create(w http.ResponseWriter, r *http.Request) {
	data := &dto.CreateNgoRequest{}
	if err := decodeJSON(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if msgs, err := h.validator.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, msgs))
		return
	}

	n := data.ToNewNgo()
	if err := n.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	rec := domain.NgoRecord{
		ID:        h.NewID(),
		Name:      n.Name,
		Address:   n.Address,
		Objective: n.Objective,
		Needs:     n.Needs,
		Location:  n.Location,
	}
	if err := h.Repo.CreateNgo(r.Context(), rec); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("create ngo failed")
		render.Render(w, r, ErrInternal(err))
		return
	}

	log.Ctx(r.Context()).Info().Str("id", rec.ID).Str("name", rec.Name).Msg("ngo registered")

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.NewNgoResponse(rec))
}
