// Package scheduler owns the content lifecycle: the initial load at startup
// and the periodic reloads that pick up edited content without a restart.
package scheduler

import (
	"fmt"
	"time"

	"github.com/darwin-mfc/clinical-api/data"
	"github.com/darwin-mfc/clinical-api/interfaces"
	"github.com/darwin-mfc/clinical-api/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check.
var _ interfaces.Scheduler = (*ContentScheduler)(nil)

// ContentScheduler reloads the catalog on a fixed schedule. Every reload
// builds a complete new snapshot off to the side and swaps it in one step,
// so requests never observe a half-loaded catalog.
type ContentScheduler struct {
	store     interfaces.SnapshotStore
	loader    interfaces.Loader
	validator interfaces.DataValidator
	scheduler *gocron.Scheduler
}

// NewContentScheduler creates a scheduler with injected dependencies.
func NewContentScheduler(store interfaces.SnapshotStore, loader interfaces.Loader, validator interfaces.DataValidator) *ContentScheduler {
	return &ContentScheduler{
		store:     store,
		loader:    loader,
		validator: validator,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial load and schedules reloads at 06:00 and 18:00
// daily. A failed initial load is fatal; a failed reload keeps the previous
// snapshot serving.
func (s *ContentScheduler) Start() error {
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial content load", "error", err)
		return fmt.Errorf("initial content load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload content, keeping previous snapshot", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule content reloads", "error", err)
		return fmt.Errorf("failed to schedule content reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitor()

	return nil
}

// Stop stops the scheduler.
func (s *ContentScheduler) Stop() {
	s.scheduler.Stop()
}

// reload loads the content directory, audits it and swaps in the new
// snapshot.
func (s *ContentScheduler) reload() error {
	if !s.store.BeginUpdate() {
		logging.Info("Content reload already in progress, skipping")
		return nil
	}
	defer s.store.EndUpdate()

	start := time.Now()

	ds, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	s.logQuality(s.validator.ReportDataQuality(ds))

	snap := data.NewSnapshot(ds)
	s.store.Swap(snap)

	logging.Info("Content reload completed",
		"duration", time.Since(start).String(),
		"diseases", snap.Diseases.Len(),
		"medications", snap.Medications.Len(),
		"interactions", snap.Interactions.Len())

	return nil
}

// logQuality reports authoring defects found in a loaded dataset. None of
// them block the swap; the log is the signal to fix the content.
func (s *ContentScheduler) logQuality(report *interfaces.DataQualityReport) {
	if report.Clean() {
		logging.Info("Content quality check passed",
			"diseases_without_cross_refs", report.DiseasesWithoutCrossRefs,
			"medications_without_codes", report.MedicationsWithoutAnyCodes)
		return
	}

	if len(report.DuplicateDiseaseIDs) > 0 {
		logging.Warn("Duplicate disease ids in content", "ids", report.DuplicateDiseaseIDs)
	}
	if len(report.DuplicateMedicationIDs) > 0 {
		logging.Warn("Duplicate medication ids in content", "ids", report.DuplicateMedicationIDs)
	}
	if len(report.DanglingCrossRefTargets) > 0 {
		logging.Warn("Cross-references with unknown targets", "targets", report.DanglingCrossRefTargets)
	}
	if len(report.InteractionUnknownMedIDs) > 0 {
		logging.Warn("Interactions referencing unknown medications", "ids", report.InteractionUnknownMedIDs)
	}
}

// startStalenessMonitor warns when the snapshot has missed both daily
// reload slots.
func (s *ContentScheduler) startStalenessMonitor() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if time.Since(s.store.LastUpdated()) > 25*time.Hour {
				logging.Warn("Catalog content has not been reloaded in over 25 hours")
			}
		}
	}()
}
