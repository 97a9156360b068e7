package handlers

import (
	"net/http"
	"sort"

	"github.com/darwin-mfc/clinical-api/query"
	"github.com/go-chi/chi/v5"
)

// ListDiseases serves GET /diseases with the full filter set.
func (h *Handler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	opts, err := h.listOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	search, err := h.searchParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	q := r.URL.Query()
	filter := query.DiseaseFilter{
		Search:   search,
		Category: q.Get("category"),
		Cid10:    q.Get("cid10"),
		Ciap2:    q.Get("ciap2"),
		Doid:     q.Get("doid"),
		Snomed:   q.Get("snomed"),
		IDs:      idsParam(r),
		Options:  opts,
	}

	snap := h.store.Snapshot()
	items, meta, err := query.Diseases(snap.Diseases.All(), filter)
	if err != nil {
		respondQueryError(w, err)
		return
	}

	respondList(w, items, meta)
}

// GetDisease serves GET /diseases/{id}.
func (h *Handler) GetDisease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	disease, ok := h.store.Snapshot().Diseases.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "disease "+id+" not found")
		return
	}

	respondOK(w, disease)
}

// DiseaseCrossReferences serves GET /diseases/{id}/cross-references: the
// disease's linked medications partitioned by tier, plus protocols,
// calculators, screenings and the ranked combined suggestions.
func (h *Handler) DiseaseCrossReferences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	view, ok := h.store.Snapshot().CrossRefs.Resolve(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "disease "+id+" not found")
		return
	}

	// A known disease with zero links resolves to an empty view; that is a
	// normal state, not an error.
	respondOK(w, view)
}

// DiseaseCategories serves GET /diseases/categories: the distinct category
// vocabulary of the disease catalog, sorted.
func (h *Handler) DiseaseCategories(w http.ResponseWriter, r *http.Request) {
	diseases := h.store.Snapshot().Diseases.All()

	seen := make(map[string]bool)
	categories := []string{}
	for _, d := range diseases {
		if d.Categoria != "" && !seen[d.Categoria] {
			seen[d.Categoria] = true
			categories = append(categories, d.Categoria)
		}
	}
	sort.Strings(categories)

	respondOK(w, categories)
}
