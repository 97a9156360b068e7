// Package query implements the generic filter, sort and pagination pipeline
// shared by every catalog kind. Active filter options combine conjunctively;
// the search option alone is an OR across an entity's normalized fields.
// The pipeline never mutates the input slice, so it can run against the
// shared snapshot from any number of goroutines.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/darwin-mfc/clinical-api/textnorm"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Pagination is the metadata attached to every paged result.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Options carries the caller-supplied sort and pagination choices.
// MaxPageSize bounds PageSize against unbounded allocation; zero disables
// the cap.
type Options struct {
	SortBy      string
	SortOrder   Order
	Page        int
	PageSize    int
	MaxPageSize int
}

// InvalidArgumentError reports malformed caller input. It is always produced
// before any filtering or sorting work begins.
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.msg
}

func invalidArgf(format string, args ...any) error {
	return &InvalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

// Predicate decides whether one entity survives filtering. A nil predicate
// contributes no constraint.
type Predicate[T any] func(T) bool

// SearchPredicate matches an entity when the normalized term is a substring
// of any of the fields returned by fields (an OR across fields). The term is
// folded with the same normalization applied at index time.
func SearchPredicate[T any](term string, fields func(T) []string) Predicate[T] {
	normalized := textnorm.Normalize(term)
	return func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(field, normalized) {
				return true
			}
		}
		return false
	}
}

// Run executes the full pipeline: validate options, apply predicates
// conjunctively, sort and paginate. sortKeys maps the recognized sortBy names
// to key extractors; an unrecognized name is an InvalidArgumentError rather
// than a silent no-op.
func Run[T any](items []T, opts Options, preds []Predicate[T], sortKeys map[string]func(T) string) ([]T, Pagination, error) {
	key, err := validate[T](opts, sortKeys)
	if err != nil {
		return nil, Pagination{}, err
	}

	filtered := apply(items, preds)

	if key != nil {
		sortStable(filtered, key, opts.SortOrder)
	}

	return paginate(filtered, opts.Page, opts.PageSize)
}

// validate rejects malformed options before any filtering runs (fail fast).
func validate[T any](opts Options, sortKeys map[string]func(T) string) (func(T) string, error) {
	if opts.Page <= 0 {
		return nil, invalidArgf("page must be a positive integer, got %d", opts.Page)
	}
	if opts.PageSize <= 0 {
		return nil, invalidArgf("pageSize must be a positive integer, got %d", opts.PageSize)
	}
	if opts.MaxPageSize > 0 && opts.PageSize > opts.MaxPageSize {
		return nil, invalidArgf("pageSize %d exceeds the maximum of %d", opts.PageSize, opts.MaxPageSize)
	}

	switch opts.SortOrder {
	case "", Asc, Desc:
	default:
		return nil, invalidArgf("sortOrder must be %q or %q, got %q", Asc, Desc, opts.SortOrder)
	}

	if opts.SortBy == "" {
		return nil, nil
	}
	key, ok := sortKeys[opts.SortBy]
	if !ok {
		return nil, invalidArgf("unknown sortBy field %q", opts.SortBy)
	}
	return key, nil
}

// apply returns the entities surviving every non-nil predicate. The result
// is always a fresh slice; the snapshot data is never reordered or trimmed
// in place.
func apply[T any](items []T, preds []Predicate[T]) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// sortStable sorts items by key with pt-BR collation. Equal keys keep their
// original relative order, in both directions, so results are reproducible
// for tests and caches.
func sortStable[T any](items []T, key func(T) string, order Order) {
	// Collators carry an internal buffer and are not safe to share across
	// goroutines, so each sort gets its own.
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(items, func(i, j int) bool {
		cmp := c.CompareString(key(items[i]), key(items[j]))
		if order == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// paginate slices out the 1-indexed page. A page beyond the last yields an
// empty item list with hasNext=false and hasPrev computed from the requested
// page; this convention is uniform across every catalog kind.
func paginate[T any](items []T, page, pageSize int) ([]T, Pagination, error) {
	total := len(items)

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	if start < 0 || start > total {
		// start < 0 only on int overflow from an absurdly large page.
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	meta := Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return pageItems, meta, nil
}
