// Package catalog loads the authored clinical content into typed entity
// collections. The authoring step itself is external; this loader's only
// contract is to hand well-typed records to the in-memory indexes at boot
// and on scheduled reloads.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/logging"
)

// Content file names expected under the data directory.
const (
	diseasesFile     = "diseases.json"
	medicationsFile  = "medications.json"
	protocolsFile    = "protocols.json"
	calculatorsFile  = "calculators.json"
	screeningsFile   = "screenings.json"
	interactionsFile = "interactions.json"
	crossRefsFile    = "cross-references.json"
)

// Dataset is the loader's output: every collection the snapshot builder
// consumes. Slices preserve authoring order.
type Dataset struct {
	Diseases        []entities.Disease
	Medications     []entities.Medication
	Protocols       []entities.Protocol
	Calculators     []entities.Calculator
	Screenings      []entities.Screening
	Interactions    []entities.Interaction
	CrossReferences []entities.CrossReference
}

// Loader reads the content files of one data directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given content directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads and decodes all content files concurrently, validates each
// record and computes the normalized search fields. Diseases and medications
// are required; the remaining files may be absent, which leaves their
// collections empty.
func (l *Loader) Load() (*Dataset, error) {
	ds := &Dataset{}
	errs := make([]error, 7)

	var wg sync.WaitGroup
	wg.Add(7)

	go func() {
		defer wg.Done()
		ds.Diseases, errs[0] = readContent[entities.Disease](l.path(diseasesFile), true)
	}()
	go func() {
		defer wg.Done()
		ds.Medications, errs[1] = readContent[entities.Medication](l.path(medicationsFile), true)
	}()
	go func() {
		defer wg.Done()
		ds.Protocols, errs[2] = readContent[entities.Protocol](l.path(protocolsFile), false)
	}()
	go func() {
		defer wg.Done()
		ds.Calculators, errs[3] = readContent[entities.Calculator](l.path(calculatorsFile), false)
	}()
	go func() {
		defer wg.Done()
		ds.Screenings, errs[4] = readContent[entities.Screening](l.path(screeningsFile), false)
	}()
	go func() {
		defer wg.Done()
		ds.Interactions, errs[5] = readContent[entities.Interaction](l.path(interactionsFile), false)
	}()
	go func() {
		defer wg.Done()
		ds.CrossReferences, errs[6] = readContent[entities.CrossReference](l.path(crossRefsFile), false)
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	l.sanitize(ds)
	reindex(ds)

	return ds, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}

// readContent decodes one JSON array file. A missing optional file is an
// empty collection, not an error.
func readContent[T any](path string, required bool) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			logging.Info("Optional content file absent", "path", path)
			return []T{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}

// sanitize drops individually malformed records so one authoring defect
// degrades a single entry instead of failing the whole load. Every skip is
// logged with enough detail to fix the source file.
func (l *Loader) sanitize(ds *Dataset) {
	diseases := ds.Diseases[:0:0]
	for _, d := range ds.Diseases {
		if d.ID == "" || d.Titulo == "" {
			logging.Warn("Disease without id or titulo skipped", "id", d.ID)
			continue
		}
		diseases = append(diseases, d)
	}
	ds.Diseases = diseases

	medications := ds.Medications[:0:0]
	for _, m := range ds.Medications {
		if m.ID == "" || m.NomeGenerico == "" {
			logging.Warn("Medication without id or nomeGenerico skipped", "id", m.ID)
			continue
		}
		medications = append(medications, m)
	}
	ds.Medications = medications

	// Inline interaction records authored on medications join the dedicated
	// table; the graph deduplicates repeated pairs by canonical key.
	for _, m := range ds.Medications {
		ds.Interactions = append(ds.Interactions, m.Interacoes...)
	}

	interactions := ds.Interactions[:0:0]
	for _, rec := range ds.Interactions {
		if rec.Medicamento1 == "" || rec.Medicamento2 == "" {
			logging.Warn("Interaction without both medication ids skipped", "interaction_id", rec.ID)
			continue
		}
		if !rec.Gravidade.Valid() {
			logging.Warn("Interaction with unknown severity skipped",
				"interaction_id", rec.ID, "gravidade", string(rec.Gravidade))
			continue
		}
		if !rec.Mecanismo.Valid() {
			rec.Mecanismo = entities.MechanismUnknown
		}
		interactions = append(interactions, rec)
	}
	ds.Interactions = interactions

	crossRefs := ds.CrossReferences[:0:0]
	for _, ref := range ds.CrossReferences {
		if ref.DoencaID == "" || ref.AlvoID == "" || !ref.Tipo.Valid() {
			logging.Warn("Cross-reference with missing fields skipped",
				"doenca_id", ref.DoencaID, "tipo", string(ref.Tipo), "alvo_id", ref.AlvoID)
			continue
		}
		if ref.Tipo == entities.TargetMedication && ref.TipoUso != "" && !ref.TipoUso.Valid() {
			logging.Warn("Cross-reference with unknown usage tier skipped",
				"doenca_id", ref.DoencaID, "alvo_id", ref.AlvoID, "tipo_uso", string(ref.TipoUso))
			continue
		}
		crossRefs = append(crossRefs, ref)
	}
	ds.CrossReferences = crossRefs
}

// reindex precomputes the normalized search fields on every entity, so the
// normalization applied at query time matches the indexed values exactly.
func reindex(ds *Dataset) {
	for i := range ds.Diseases {
		ds.Diseases[i].Reindex()
	}
	for i := range ds.Medications {
		ds.Medications[i].Reindex()
	}
	for i := range ds.Protocols {
		ds.Protocols[i].Reindex()
	}
	for i := range ds.Calculators {
		ds.Calculators[i].Reindex()
	}
	for i := range ds.Screenings {
		ds.Screenings[i].Reindex()
	}
}
