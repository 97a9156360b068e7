// Package interfaces defines the core abstractions of the clinical API
// to keep the loader, store, scheduler and handlers independently testable.
package interfaces

import (
	"time"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/data"
)

// DataStore is the read side of the snapshot container. Every query
// operation works off the immutable snapshot it returns.
type DataStore interface {
	Snapshot() *data.Snapshot
	LastUpdated() time.Time
	IsUpdating() bool
	ServerStartTime() time.Time
}

// SnapshotStore extends DataStore with the reload coordination the
// scheduler needs.
type SnapshotStore interface {
	DataStore
	Swap(*data.Snapshot)
	BeginUpdate() bool
	EndUpdate()
}

// Loader produces a complete dataset from the authored content.
type Loader interface {
	Load() (*catalog.Dataset, error)
}

// Scheduler manages the initial load and the periodic content reloads.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports system health for the /health endpoint.
type HealthChecker interface {
	// HealthCheck returns the status string, the response payload and the
	// HTTP status code to serve it with.
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// NextReload returns the next scheduled content reload time.
	NextReload() time.Time
}

// DataQualityReport summarizes authoring defects found in a loaded dataset.
// None of them are fatal; they are logged so the content can be fixed.
type DataQualityReport struct {
	DuplicateDiseaseIDs        []string
	DuplicateMedicationIDs     []string
	DanglingCrossRefTargets    []string
	InteractionUnknownMedIDs   []string
	DiseasesWithoutCrossRefs   int
	MedicationsWithoutAnyCodes int
}

// Clean reports whether the dataset had no defects at all.
func (r *DataQualityReport) Clean() bool {
	return len(r.DuplicateDiseaseIDs) == 0 &&
		len(r.DuplicateMedicationIDs) == 0 &&
		len(r.DanglingCrossRefTargets) == 0 &&
		len(r.InteractionUnknownMedIDs) == 0
}

// DataValidator validates caller input at the HTTP boundary and audits
// loaded datasets.
type DataValidator interface {
	// ValidateSearchTerm rejects oversized or dangerous search input.
	ValidateSearchTerm(term string) error

	// ValidateEntityID rejects strings that cannot be catalog ids.
	ValidateEntityID(id string) error

	// ReportDataQuality audits a dataset for authoring defects.
	ReportDataQuality(ds *catalog.Dataset) *DataQualityReport
}
