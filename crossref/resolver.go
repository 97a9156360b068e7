// Package crossref consolidates the disease-to-entity relation table into a
// single pure resolver. Presentation layers consume the fully-formed view it
// returns and never re-implement the filtering or ranking themselves.
package crossref

import (
	"sort"

	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/logging"
)

// Catalog is the slice of the entity indexes the resolver needs: existence
// checks for every target kind and display names for the view model.
type Catalog interface {
	HasDisease(id string) bool
	MedicationName(id string) (string, bool)
	ProtocolTitle(id string) (string, bool)
	CalculatorName(id string) (string, bool)
	ScreeningTitle(id string) (string, bool)
}

// Reference is one resolved link inside a view, enriched with the target's
// display name so callers need no second lookup.
type Reference struct {
	ID            string             `json:"id"`
	Nome          string             `json:"nome"`
	TipoUso       entities.UsageTier `json:"tipoUso,omitempty"`
	Posologia     string             `json:"posologiaResumida,omitempty"`
	Indicacao     string             `json:"indicacaoEspecifica,omitempty"`
	Nota          string             `json:"nota,omitempty"`
	DisponivelSUS bool               `json:"disponivelSUS,omitempty"`
}

// Suggestion is one entry of the combined cross-kind suggestion list.
type Suggestion struct {
	Tipo entities.TargetType `json:"tipo"`
	ID   string              `json:"id"`
	Nome string              `json:"nome"`
	Nota string              `json:"nota,omitempty"`
}

// MedicationRefs partitions a disease's medication links by usage tier:
// the first-line bucket against everything else.
type MedicationRefs struct {
	PrimeiraLinha []Reference `json:"primeiraLinha"`
	Demais        []Reference `json:"demais"`
}

// View is the complete cross-reference view model for one disease.
type View struct {
	DoencaID      string         `json:"doencaId"`
	Medicamentos  MedicationRefs `json:"medicamentos"`
	Protocolos    []Reference    `json:"protocolos"`
	Calculadoras  []Reference    `json:"calculadoras"`
	Rastreamentos []Reference    `json:"rastreamentos"`
	Sugestoes     []Suggestion   `json:"sugestoes"`
}

// resolved is a cross-reference that survived target resolution, carrying the
// display name and its declaration position for deterministic tie-breaking.
type resolved struct {
	entry entities.CrossReference
	name  string
	pos   int
}

// Resolver answers cross-reference queries for diseases. Built once per
// snapshot; immutable afterwards.
type Resolver struct {
	byDisease    map[string][]resolved
	byMedication map[string][]string
	cat          Catalog
}

// NewResolver groups entries by source disease. A dangling target id is a
// data-authoring defect, not a query-time error: the entry is logged and
// skipped here so queries degrade gracefully.
func NewResolver(entries []entities.CrossReference, cat Catalog) *Resolver {
	r := &Resolver{
		byDisease:    make(map[string][]resolved),
		byMedication: make(map[string][]string),
		cat:          cat,
	}

	for i, entry := range entries {
		name, ok := r.targetName(entry.Tipo, entry.AlvoID)
		if !ok {
			logging.Warn("Cross-reference with dangling target skipped",
				"doenca_id", entry.DoencaID, "tipo", string(entry.Tipo), "alvo_id", entry.AlvoID)
			continue
		}
		r.byDisease[entry.DoencaID] = append(r.byDisease[entry.DoencaID], resolved{
			entry: entry,
			name:  name,
			pos:   i,
		})
		if entry.Tipo == entities.TargetMedication {
			r.byMedication[entry.AlvoID] = appendUnique(r.byMedication[entry.AlvoID], entry.DoencaID)
		}
	}

	return r
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func (r *Resolver) targetName(tipo entities.TargetType, id string) (string, bool) {
	switch tipo {
	case entities.TargetMedication:
		return r.cat.MedicationName(id)
	case entities.TargetProtocol:
		return r.cat.ProtocolTitle(id)
	case entities.TargetCalculator:
		return r.cat.CalculatorName(id)
	case entities.TargetScreening:
		return r.cat.ScreeningTitle(id)
	}
	return "", false
}

// Resolve returns the cross-reference view for diseaseID. An unknown disease
// id yields ok=false; a known disease with zero links yields an empty view,
// which is a normal, common state and not an error.
func (r *Resolver) Resolve(diseaseID string) (View, bool) {
	if !r.cat.HasDisease(diseaseID) {
		return View{}, false
	}

	view := View{
		DoencaID: diseaseID,
		Medicamentos: MedicationRefs{
			PrimeiraLinha: []Reference{},
			Demais:        []Reference{},
		},
		Protocolos:    []Reference{},
		Calculadoras:  []Reference{},
		Rastreamentos: []Reference{},
		Sugestoes:     []Suggestion{},
	}

	links := r.byDisease[diseaseID]
	for _, link := range links {
		ref := Reference{
			ID:            link.entry.AlvoID,
			Nome:          link.name,
			TipoUso:       link.entry.TipoUso,
			Posologia:     link.entry.Posologia,
			Indicacao:     link.entry.Indicacao,
			Nota:          link.entry.Nota,
			DisponivelSUS: link.entry.DisponivelSUS,
		}

		switch link.entry.Tipo {
		case entities.TargetMedication:
			if link.entry.TipoUso == entities.TierFirstLine {
				view.Medicamentos.PrimeiraLinha = append(view.Medicamentos.PrimeiraLinha, ref)
			} else {
				view.Medicamentos.Demais = append(view.Medicamentos.Demais, ref)
			}
		case entities.TargetProtocol:
			view.Protocolos = append(view.Protocolos, ref)
		case entities.TargetCalculator:
			view.Calculadoras = append(view.Calculadoras, ref)
		case entities.TargetScreening:
			view.Rastreamentos = append(view.Rastreamentos, ref)
		}
	}

	view.Sugestoes = r.suggestions(links)

	return view, true
}

// suggestions ranks all links of one disease into a combined cross-kind list.
// An explicit Prioridade wins (1 is highest, unset sorts last); declaration
// order breaks ties, so identical input data always ranks identically.
func (r *Resolver) suggestions(links []resolved) []Suggestion {
	ranked := make([]resolved, len(links))
	copy(ranked, links)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].entry.Prioridade, ranked[j].entry.Prioridade
		if pi == pj {
			return ranked[i].pos < ranked[j].pos
		}
		if pi == 0 {
			return false
		}
		if pj == 0 {
			return true
		}
		return pi < pj
	})

	out := make([]Suggestion, 0, len(ranked))
	for _, link := range ranked {
		out = append(out, Suggestion{
			Tipo: link.entry.Tipo,
			ID:   link.entry.AlvoID,
			Nome: link.name,
			Nota: link.entry.Nota,
		})
	}
	return out
}

// DiseasesForMedication returns the ids of every disease whose
// cross-references include medicationID, in declaration order.
func (r *Resolver) DiseasesForMedication(medicationID string) []string {
	ids := r.byMedication[medicationID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// LinkCount returns the number of resolved entries for diseaseID.
func (r *Resolver) LinkCount(diseaseID string) int {
	return len(r.byDisease[diseaseID])
}
