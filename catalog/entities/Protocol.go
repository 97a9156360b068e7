package entities

import "github.com/darwin-mfc/clinical-api/textnorm"

// Protocol is one entry of the clinical protocol catalog.
type Protocol struct {
	ID            string `json:"id"`
	Titulo        string `json:"titulo"`
	TipoProtocolo string `json:"tipoProtocolo,omitempty"`
	Descricao     string `json:"descricao,omitempty"`
	Categoria     string `json:"categoria,omitempty"`

	SearchIndex []string `json:"-"`
}

// Key returns the stable catalog id.
func (p Protocol) Key() string { return p.ID }

// Reindex recomputes the normalized search fields.
func (p *Protocol) Reindex() {
	p.SearchIndex = []string{
		textnorm.Normalize(p.Titulo),
		textnorm.Normalize(p.Descricao),
		textnorm.Normalize(p.ID),
	}
}
