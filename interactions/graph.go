// Package interactions stores the symmetric drug-interaction relation and
// answers pairwise and multi-drug queries against it. Records live in a flat
// slice; a canonical-pair key index built once at load time keeps unordered
// pair lookups O(1) average, so a multi-drug check over n medications costs
// O(n²) probes instead of O(n²) scans of the whole table.
package interactions

import (
	"strings"

	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/logging"
)

// PairKey returns the order-independent key for the medication pair {a, b}:
// the two ids sorted and joined. PairKey(a, b) == PairKey(b, a) always holds.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}

// Graph is the immutable interaction store. Built once per snapshot; safe for
// unlimited concurrent readers.
type Graph struct {
	records []entities.Interaction
	byPair  map[string]int
	byMed   map[string][]int
}

// NewGraph builds a graph over records, in declaration order. Records whose
// pair repeats an earlier one (the source data often authors the same
// interaction on both medications) are dropped; the first declaration wins.
// Self-pairs are authoring defects and are logged and skipped.
func NewGraph(records []entities.Interaction) *Graph {
	g := &Graph{
		records: make([]entities.Interaction, 0, len(records)),
		byPair:  make(map[string]int, len(records)),
		byMed:   make(map[string][]int),
	}

	for _, rec := range records {
		if rec.Medicamento1 == "" || rec.Medicamento2 == "" {
			logging.Warn("Interaction with missing medication id skipped", "interaction_id", rec.ID)
			continue
		}
		if rec.Medicamento1 == rec.Medicamento2 {
			logging.Warn("Interaction pairing a medication with itself skipped",
				"interaction_id", rec.ID, "medication_id", rec.Medicamento1)
			continue
		}

		key := PairKey(rec.Medicamento1, rec.Medicamento2)
		if _, exists := g.byPair[key]; exists {
			continue
		}

		idx := len(g.records)
		g.records = append(g.records, rec)
		g.byPair[key] = idx
		g.byMed[rec.Medicamento1] = append(g.byMed[rec.Medicamento1], idx)
		g.byMed[rec.Medicamento2] = append(g.byMed[rec.Medicamento2], idx)
	}

	return g
}

// Len returns the number of distinct interaction records.
func (g *Graph) Len() int {
	return len(g.records)
}

// All returns every record in construction order. Read-only.
func (g *Graph) All() []entities.Interaction {
	return g.records
}

// For returns all records whose pair contains medicationID, in construction
// order. An unknown id yields an empty slice.
func (g *Graph) For(medicationID string) []entities.Interaction {
	idxs := g.byMed[medicationID]
	if len(idxs) == 0 {
		return []entities.Interaction{}
	}
	out := make([]entities.Interaction, len(idxs))
	for i, idx := range idxs {
		out[i] = g.records[idx]
	}
	return out
}

// Pair returns the single record for the unordered pair {a, b}.
// Pair(a, b) and Pair(b, a) always agree.
func (g *Graph) Pair(a, b string) (entities.Interaction, bool) {
	if idx, ok := g.byPair[PairKey(a, b)]; ok {
		return g.records[idx], true
	}
	return entities.Interaction{}, false
}

// CheckSet probes every unordered pair drawn from ids and collects the hits.
// No transitive inference happens: {A,B} and {B,C} say nothing about {A,C}.
// Fewer than two ids yield an empty result. Duplicate ids are collapsed so a
// repeated id cannot produce the same record twice.
func (g *Graph) CheckSet(ids []string) []entities.Interaction {
	found := []entities.Interaction{}
	if len(ids) < 2 {
		return found
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			if rec, ok := g.Pair(unique[i], unique[j]); ok {
				found = append(found, rec)
			}
		}
	}

	return found
}

// Summary aggregates a set of interaction records for presentation: counts
// per severity and the single worst severity found.
type Summary struct {
	Total      int                       `json:"total"`
	BySeverity map[entities.Severity]int `json:"porGravidade"`
	Worst      entities.Severity         `json:"pior,omitempty"`
	HasSevere  bool                      `json:"temGrave"`
}

// Summarize builds a Summary over recs. The worst severity follows the
// clinical rank order, never the alphabetical one.
func Summarize(recs []entities.Interaction) Summary {
	s := Summary{
		Total:      len(recs),
		BySeverity: make(map[entities.Severity]int, 4),
	}
	for _, sev := range entities.AllSeverities() {
		s.BySeverity[sev] = 0
	}
	for _, rec := range recs {
		s.BySeverity[rec.Gravidade]++
		if rec.Gravidade.Rank() > s.Worst.Rank() {
			s.Worst = rec.Gravidade
		}
	}
	s.HasSevere = s.Worst.Rank() >= entities.SeveritySevere.Rank()
	return s
}
