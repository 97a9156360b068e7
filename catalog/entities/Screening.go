package entities

import "github.com/darwin-mfc/clinical-api/textnorm"

// Screening is one entry of the screening programme catalog.
type Screening struct {
	ID            string `json:"id"`
	Titulo        string `json:"titulo"`
	PopulacaoAlvo string `json:"populacaoAlvo,omitempty"`
	Descricao     string `json:"descricao,omitempty"`

	SearchIndex []string `json:"-"`
}

// Key returns the stable catalog id.
func (s Screening) Key() string { return s.ID }

// Reindex recomputes the normalized search fields.
func (s *Screening) Reindex() {
	s.SearchIndex = []string{
		textnorm.Normalize(s.Titulo),
		textnorm.Normalize(s.PopulacaoAlvo),
		textnorm.Normalize(s.Descricao),
		textnorm.Normalize(s.ID),
	}
}
