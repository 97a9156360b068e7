package query

import (
	"strings"

	"github.com/darwin-mfc/clinical-api/catalog/entities"
)

// MedicationFilter is the recognized filter specification for the medication
// catalog.
type MedicationFilter struct {
	Search     string
	Classe     string
	Subclasse  string
	AtcCode    string
	RxNormCui  string
	DrugBankID string
	IDs        []string
	Options
}

var medicationSortKeys = map[string]func(entities.Medication) string{
	"nomeGenerico": func(m entities.Medication) string { return m.NomeGenerico },
	"id":           func(m entities.Medication) string { return m.ID },
	"classe":       func(m entities.Medication) string { return m.ClasseTerapeutica },
}

// Medications filters, sorts and paginates the medication catalog.
func Medications(items []entities.Medication, f MedicationFilter) ([]entities.Medication, Pagination, error) {
	return Run(items, f.Options, f.predicates(), medicationSortKeys)
}

func (f MedicationFilter) predicates() []Predicate[entities.Medication] {
	var preds []Predicate[entities.Medication]

	if f.Search != "" {
		preds = append(preds, SearchPredicate(f.Search, func(m entities.Medication) []string {
			return m.SearchIndex
		}))
	}
	if f.Classe != "" {
		preds = append(preds, func(m entities.Medication) bool {
			return m.ClasseTerapeutica == f.Classe
		})
	}
	if f.Subclasse != "" {
		preds = append(preds, func(m entities.Medication) bool {
			return m.Subclasse == f.Subclasse
		})
	}
	if f.AtcCode != "" {
		preds = append(preds, func(m entities.Medication) bool {
			return strings.Contains(m.AtcCode, f.AtcCode)
		})
	}
	if f.RxNormCui != "" {
		preds = append(preds, func(m entities.Medication) bool {
			return strings.Contains(m.RxNormCui, f.RxNormCui)
		})
	}
	if f.DrugBankID != "" {
		preds = append(preds, func(m entities.Medication) bool {
			return strings.Contains(m.DrugBankID, f.DrugBankID)
		})
	}
	if len(f.IDs) > 0 {
		allowed := idSet(f.IDs)
		preds = append(preds, func(m entities.Medication) bool {
			return allowed[m.ID]
		})
	}

	return preds
}
