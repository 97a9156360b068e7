package entities

import (
	"strings"

	"github.com/darwin-mfc/clinical-api/textnorm"
)

// Medication is one entry of the medication catalog.
type Medication struct {
	ID                string   `json:"id"`
	NomeGenerico      string   `json:"nomeGenerico"`
	NomesComerciais   []string `json:"nomesComerciais,omitempty"`
	ClasseTerapeutica string   `json:"classeTerapeutica,omitempty"`
	Subclasse         string   `json:"subclasse,omitempty"`
	AtcCode           string   `json:"atcCode,omitempty"`
	RxNormCui         string   `json:"rxNormCui,omitempty"`
	DrugBankID        string   `json:"drugBankId,omitempty"`
	DisponivelSUS     bool     `json:"disponivelSUS"`

	// Interacoes carries interaction records authored inline on the
	// medication. Source files often repeat the same record on both
	// medications of a pair; the interaction graph deduplicates them by
	// canonical pair key, so the redundancy is harmless.
	Interacoes []Interaction `json:"interacoes,omitempty"`

	// SearchIndex holds the pre-computed normalized searchable fields:
	// nomeGenerico, joined nomesComerciais, classeTerapeutica, subclasse, id.
	SearchIndex []string `json:"-"`
}

// Key returns the stable catalog id.
func (m Medication) Key() string { return m.ID }

// Reindex recomputes the normalized search fields.
func (m *Medication) Reindex() {
	m.SearchIndex = []string{
		textnorm.Normalize(m.NomeGenerico),
		strings.Join(textnorm.NormalizeAll(m.NomesComerciais), " "),
		textnorm.Normalize(m.ClasseTerapeutica),
		textnorm.Normalize(m.Subclasse),
		textnorm.Normalize(m.ID),
	}
}
