package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/darwin-mfc/clinical-api/interactions"
	"github.com/darwin-mfc/clinical-api/query"
	"github.com/go-chi/chi/v5"
)

// ListMedications serves GET /medications with the full filter set.
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
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
	filter := query.MedicationFilter{
		Search:     search,
		Classe:     q.Get("classe"),
		Subclasse:  q.Get("subclasse"),
		AtcCode:    q.Get("atcCode"),
		RxNormCui:  q.Get("rxNormCui"),
		DrugBankID: q.Get("drugBankId"),
		IDs:        idsParam(r),
		Options:    opts,
	}

	snap := h.store.Snapshot()
	items, meta, err := query.Medications(snap.Medications.All(), filter)
	if err != nil {
		respondQueryError(w, err)
		return
	}

	respondList(w, items, meta)
}

// GetMedication serves GET /medications/{id}.
func (h *Handler) GetMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	med, ok := h.store.Snapshot().Medications.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "medication "+id+" not found")
		return
	}

	respondOK(w, med)
}

// medicationInteractionsPayload is the body of the per-medication and
// set-check interaction responses.
type medicationInteractionsPayload struct {
	Interacoes any                  `json:"interacoes"`
	Resumo     interactions.Summary `json:"resumo"`
}

// MedicationInteractions serves GET /medications/{id}/interactions: every
// known interaction involving the medication, with a severity summary.
func (h *Handler) MedicationInteractions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	snap := h.store.Snapshot()
	if _, ok := snap.Medications.GetByID(id); !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "medication "+id+" not found")
		return
	}

	recs := snap.Interactions.For(id)
	respondOK(w, medicationInteractionsPayload{
		Interacoes: recs,
		Resumo:     interactions.Summarize(recs),
	})
}

// MedicationDiseases serves GET /medications/{id}/diseases: the reverse
// cross-reference lookup, listing the diseases that link to the medication.
func (h *Handler) MedicationDiseases(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateEntityID(id); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
		return
	}

	snap := h.store.Snapshot()
	if _, ok := snap.Medications.GetByID(id); !ok {
		respondError(w, http.StatusNotFound, CodeNotFound, "medication "+id+" not found")
		return
	}

	ids := snap.CrossRefs.DiseasesForMedication(id)
	diseases := make([]diseaseRef, 0, len(ids))
	for _, diseaseID := range ids {
		if d, ok := snap.Diseases.GetByID(diseaseID); ok {
			diseases = append(diseases, diseaseRef{ID: d.ID, Titulo: d.Titulo, Categoria: d.Categoria})
		}
	}

	respondOK(w, diseases)
}

// diseaseRef is the compact disease reference returned by the reverse lookup.
type diseaseRef struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	Categoria string `json:"categoria,omitempty"`
}

// checkInteractionsRequest is the body of POST /medications/interactions.
type checkInteractionsRequest struct {
	MedicationIDs []string `json:"medicationIds"`
}

// CheckInteractions serves POST /medications/interactions: given a set of
// medication ids it returns every interaction among the distinct pairs of
// the set, with a severity summary. Unknown ids simply match nothing.
func (h *Handler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req checkInteractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, "request body must be JSON with a medicationIds array")
		return
	}

	if len(req.MedicationIDs) < 2 {
		respondError(w, http.StatusBadRequest, CodeInvalidArgument, "medicationIds must contain at least two ids")
		return
	}

	for _, id := range req.MedicationIDs {
		if err := h.validator.ValidateEntityID(id); err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
			return
		}
	}

	recs := h.store.Snapshot().Interactions.CheckSet(req.MedicationIDs)
	respondOK(w, medicationInteractionsPayload{
		Interacoes: recs,
		Resumo:     interactions.Summarize(recs),
	})
}

// MedicationClasses serves GET /medications/classes: the distinct therapeutic
// class vocabulary of the medication catalog, sorted.
func (h *Handler) MedicationClasses(w http.ResponseWriter, r *http.Request) {
	meds := h.store.Snapshot().Medications.All()

	seen := make(map[string]bool)
	classes := []string{}
	for _, m := range meds {
		if m.ClasseTerapeutica != "" && !seen[m.ClasseTerapeutica] {
			seen[m.ClasseTerapeutica] = true
			classes = append(classes, m.ClasseTerapeutica)
		}
	}
	sort.Strings(classes)

	respondOK(w, classes)
}
