package entities

import (
	"strings"

	"github.com/darwin-mfc/clinical-api/textnorm"
)

// Disease is one entry of the disease catalog. Classification codes are
// independent optional fields; a disease may carry any subset of them.
type Disease struct {
	ID        string   `json:"id"`
	Titulo    string   `json:"titulo"`
	Sinonimos []string `json:"sinonimos,omitempty"`
	Definicao string   `json:"definicao,omitempty"`
	Categoria string   `json:"categoria,omitempty"`
	Cid10     []string `json:"cid10,omitempty"`
	Ciap2     []string `json:"ciap2,omitempty"`
	Doid      string   `json:"doid,omitempty"`
	SnomedCT  string   `json:"snomedCT,omitempty"`

	// SearchIndex holds the pre-computed normalized searchable fields:
	// titulo, joined sinonimos, definicao, id. Populated by Reindex.
	SearchIndex []string `json:"-"`
}

// Key returns the stable catalog id.
func (d Disease) Key() string { return d.ID }

// Reindex recomputes the normalized search fields. The loader calls it once
// per record; the fields are never touched again after the snapshot is built.
func (d *Disease) Reindex() {
	d.SearchIndex = []string{
		textnorm.Normalize(d.Titulo),
		strings.Join(textnorm.NormalizeAll(d.Sinonimos), " "),
		textnorm.Normalize(d.Definicao),
		textnorm.Normalize(d.ID),
	}
}
