package handlers

import (
	"net/http"

	"github.com/darwin-mfc/clinical-api/query"
	"github.com/go-chi/chi/v5"
)

// The protocol, calculator and screening catalogs share the same thin
// surface: text search plus the common sort and pagination parameters.

func (h *Handler) simpleFilter(r *http.Request) (query.SimpleFilter, error) {
	opts, err := h.listOptions(r)
	if err != nil {
		return query.SimpleFilter{}, err
	}
	search, err := h.searchParam(r)
	if err != nil {
		return query.SimpleFilter{}, err
	}
	return query.SimpleFilter{Search: search, Options: opts}, nil
}

// ListProtocols serves GET /protocols.
func (h *Handler) ListProtocols(w http.ResponseWriter, r *http.Request) {
	filter, err := h.simpleFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	items, meta, err := query.Protocols(h.store.Snapshot().Protocols.All(), filter)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondList(w, items, meta)
}

// GetProtocol serves GET /protocols/{id}.
func (h *Handler) GetProtocol(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	protocol, ok := h.store.Snapshot().Protocols.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "protocol "+id+" not found")
		return
	}
	respondOK(w, protocol)
}

// ListCalculators serves GET /calculators.
func (h *Handler) ListCalculators(w http.ResponseWriter, r *http.Request) {
	filter, err := h.simpleFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	items, meta, err := query.Calculators(h.store.Snapshot().Calculators.All(), filter)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondList(w, items, meta)
}

// GetCalculator serves GET /calculators/{id}.
func (h *Handler) GetCalculator(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	calculator, ok := h.store.Snapshot().Calculators.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "calculator "+id+" not found")
		return
	}
	respondOK(w, calculator)
}

// ListScreenings serves GET /screenings.
func (h *Handler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	filter, err := h.simpleFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	items, meta, err := query.Screenings(h.store.Snapshot().Screenings.All(), filter)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondList(w, items, meta)
}

// GetScreening serves GET /screenings/{id}.
func (h *Handler) GetScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	screening, ok := h.store.Snapshot().Screenings.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "screening "+id+" not found")
		return
	}
	respondOK(w, screening)
}
