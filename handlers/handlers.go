// Package handlers provides the HTTP request handlers for the clinical API:
// catalog queries, pairwise interaction checks, cross-reference resolution
// and health reporting, all wrapped in the uniform response envelope.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/darwin-mfc/clinical-api/data"
	"github.com/darwin-mfc/clinical-api/interfaces"
	"github.com/darwin-mfc/clinical-api/query"
)

// Compile-time check: the container satisfies the read contract handlers use.
var _ interfaces.DataStore = (*data.Container)(nil)

// Handler serves every API endpoint off the injected snapshot store.
type Handler struct {
	store           interfaces.DataStore
	validator       interfaces.DataValidator
	defaultPageSize int
	maxPageSize     int
}

// NewHandler creates a handler with injected dependencies.
func NewHandler(store interfaces.DataStore, validator interfaces.DataValidator, defaultPageSize, maxPageSize int) *Handler {
	return &Handler{
		store:           store,
		validator:       validator,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// listOptions parses the shared sort and pagination query parameters.
// Missing values get defaults; malformed values are rejected here, before
// any filtering work runs.
func (h *Handler) listOptions(r *http.Request) (query.Options, error) {
	opts := query.Options{
		SortBy:      r.URL.Query().Get("sortBy"),
		SortOrder:   query.Order(r.URL.Query().Get("sortOrder")),
		Page:        1,
		PageSize:    h.defaultPageSize,
		MaxPageSize: h.maxPageSize,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query.Options{}, fmt.Errorf("page must be an integer, got %q", raw)
		}
		opts.Page = page
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return query.Options{}, fmt.Errorf("pageSize must be an integer, got %q", raw)
		}
		opts.PageSize = size
	}

	return opts, nil
}

// searchParam validates the optional search query parameter.
func (h *Handler) searchParam(r *http.Request) (string, error) {
	term := r.URL.Query().Get("search")
	if term == "" {
		return "", nil
	}
	if err := h.validator.ValidateSearchTerm(term); err != nil {
		return "", err
	}
	return term, nil
}

// idsParam parses the comma-separated explicit id allow-list.
func idsParam(r *http.Request) []string {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
