package entities

import "github.com/darwin-mfc/clinical-api/textnorm"

// Calculator is one entry of the clinical calculator catalog.
type Calculator struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	Categoria string `json:"categoria,omitempty"`

	SearchIndex []string `json:"-"`
}

// Key returns the stable catalog id.
func (c Calculator) Key() string { return c.ID }

// Reindex recomputes the normalized search fields.
func (c *Calculator) Reindex() {
	c.SearchIndex = []string{
		textnorm.Normalize(c.Nome),
		textnorm.Normalize(c.Descricao),
		textnorm.Normalize(c.ID),
	}
}
