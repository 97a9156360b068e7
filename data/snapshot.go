package data

import (
	"time"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/crossref"
	"github.com/darwin-mfc/clinical-api/interactions"
)

// Snapshot is one complete, immutable generation of the clinical knowledge
// base: the five entity indexes, the interaction graph and the cross-reference
// resolver. A reload builds an entirely new snapshot off to the side and swaps
// the container's single reference, never mutating a live one.
type Snapshot struct {
	Diseases     *Index[entities.Disease]
	Medications  *Index[entities.Medication]
	Protocols    *Index[entities.Protocol]
	Calculators  *Index[entities.Calculator]
	Screenings   *Index[entities.Screening]
	Interactions *interactions.Graph
	CrossRefs    *crossref.Resolver
	BuiltAt      time.Time
}

// NewSnapshot builds all indexes and derived structures from a loaded
// dataset.
func NewSnapshot(ds *catalog.Dataset) *Snapshot {
	s := &Snapshot{
		Diseases:     NewIndex(ds.Diseases),
		Medications:  NewIndex(ds.Medications),
		Protocols:    NewIndex(ds.Protocols),
		Calculators:  NewIndex(ds.Calculators),
		Screenings:   NewIndex(ds.Screenings),
		Interactions: interactions.NewGraph(ds.Interactions),
		BuiltAt:      time.Now(),
	}
	// The resolver checks target existence against the freshly built
	// indexes, so it is constructed last.
	s.CrossRefs = crossref.NewResolver(ds.CrossReferences, s)
	return s
}

// emptySnapshot backs the container before the first load so every getter
// stays total. Its zero BuiltAt distinguishes "never loaded" from a
// legitimately empty catalog.
func emptySnapshot() *Snapshot {
	s := NewSnapshot(&catalog.Dataset{})
	s.BuiltAt = time.Time{}
	return s
}

// Compile-time check: the snapshot serves as the resolver's catalog view.
var _ crossref.Catalog = (*Snapshot)(nil)

// HasDisease reports whether id resolves in the disease index.
func (s *Snapshot) HasDisease(id string) bool {
	return s.Diseases.Has(id)
}

// MedicationName returns the generic name for a medication id.
func (s *Snapshot) MedicationName(id string) (string, bool) {
	m, ok := s.Medications.GetByID(id)
	return m.NomeGenerico, ok
}

// ProtocolTitle returns the title for a protocol id.
func (s *Snapshot) ProtocolTitle(id string) (string, bool) {
	p, ok := s.Protocols.GetByID(id)
	return p.Titulo, ok
}

// CalculatorName returns the display name for a calculator id.
func (s *Snapshot) CalculatorName(id string) (string, bool) {
	c, ok := s.Calculators.GetByID(id)
	return c.Nome, ok
}

// ScreeningTitle returns the title for a screening id.
func (s *Snapshot) ScreeningTitle(id string) (string, bool) {
	sc, ok := s.Screenings.GetByID(id)
	return sc.Titulo, ok
}
