package query

import (
	"strings"

	"github.com/darwin-mfc/clinical-api/catalog/entities"
)

// DiseaseFilter is the recognized filter specification for the disease
// catalog. Every present option contributes one predicate; absent options
// contribute no constraint.
type DiseaseFilter struct {
	Search   string
	Category string
	Cid10    string
	Ciap2    string
	Doid     string
	Snomed   string
	IDs      []string
	Options
}

// diseaseSortKeys are the sortable disease fields.
var diseaseSortKeys = map[string]func(entities.Disease) string{
	"titulo":    func(d entities.Disease) string { return d.Titulo },
	"id":        func(d entities.Disease) string { return d.ID },
	"categoria": func(d entities.Disease) string { return d.Categoria },
}

// Diseases filters, sorts and paginates the disease catalog.
func Diseases(items []entities.Disease, f DiseaseFilter) ([]entities.Disease, Pagination, error) {
	return Run(items, f.Options, f.predicates(), diseaseSortKeys)
}

func (f DiseaseFilter) predicates() []Predicate[entities.Disease] {
	var preds []Predicate[entities.Disease]

	if f.Search != "" {
		preds = append(preds, SearchPredicate(f.Search, func(d entities.Disease) []string {
			return d.SearchIndex
		}))
	}
	if f.Category != "" {
		preds = append(preds, func(d entities.Disease) bool {
			return d.Categoria == f.Category
		})
	}
	if f.Cid10 != "" {
		preds = append(preds, func(d entities.Disease) bool {
			return codeListContains(d.Cid10, f.Cid10)
		})
	}
	if f.Ciap2 != "" {
		preds = append(preds, func(d entities.Disease) bool {
			return codeListContains(d.Ciap2, f.Ciap2)
		})
	}
	if f.Doid != "" {
		preds = append(preds, func(d entities.Disease) bool {
			return strings.Contains(d.Doid, f.Doid)
		})
	}
	if f.Snomed != "" {
		preds = append(preds, func(d entities.Disease) bool {
			return strings.Contains(d.SnomedCT, f.Snomed)
		})
	}
	if len(f.IDs) > 0 {
		allowed := idSet(f.IDs)
		preds = append(preds, func(d entities.Disease) bool {
			return allowed[d.ID]
		})
	}

	return preds
}

// codeListContains reports whether any classification code in codes contains
// the wanted fragment, so a partial code like "I1" matches "I10".
func codeListContains(codes []string, wanted string) bool {
	for _, code := range codes {
		if strings.Contains(code, wanted) {
			return true
		}
	}
	return false
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
