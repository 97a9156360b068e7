package query

import "github.com/darwin-mfc/clinical-api/catalog/entities"

// SimpleFilter is the filter specification shared by the catalog kinds that
// only support text search: protocols, calculators and screenings.
type SimpleFilter struct {
	Search string
	Options
}

var protocolSortKeys = map[string]func(entities.Protocol) string{
	"titulo": func(p entities.Protocol) string { return p.Titulo },
	"id":     func(p entities.Protocol) string { return p.ID },
}

var calculatorSortKeys = map[string]func(entities.Calculator) string{
	"nome": func(c entities.Calculator) string { return c.Nome },
	"id":   func(c entities.Calculator) string { return c.ID },
}

var screeningSortKeys = map[string]func(entities.Screening) string{
	"titulo": func(s entities.Screening) string { return s.Titulo },
	"id":     func(s entities.Screening) string { return s.ID },
}

// Protocols filters, sorts and paginates the protocol catalog.
func Protocols(items []entities.Protocol, f SimpleFilter) ([]entities.Protocol, Pagination, error) {
	var preds []Predicate[entities.Protocol]
	if f.Search != "" {
		preds = append(preds, SearchPredicate(f.Search, func(p entities.Protocol) []string {
			return p.SearchIndex
		}))
	}
	return Run(items, f.Options, preds, protocolSortKeys)
}

// Calculators filters, sorts and paginates the calculator catalog.
func Calculators(items []entities.Calculator, f SimpleFilter) ([]entities.Calculator, Pagination, error) {
	var preds []Predicate[entities.Calculator]
	if f.Search != "" {
		preds = append(preds, SearchPredicate(f.Search, func(c entities.Calculator) []string {
			return c.SearchIndex
		}))
	}
	return Run(items, f.Options, preds, calculatorSortKeys)
}

// Screenings filters, sorts and paginates the screening catalog.
func Screenings(items []entities.Screening, f SimpleFilter) ([]entities.Screening, Pagination, error) {
	var preds []Predicate[entities.Screening]
	if f.Search != "" {
		preds = append(preds, SearchPredicate(f.Search, func(s entities.Screening) []string {
			return s.SearchIndex
		}))
	}
	return Run(items, f.Options, preds, screeningSortKeys)
}
