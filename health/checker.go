// Package health reports liveness of the clinical catalog: whether content
// is loaded, how stale it is relative to the reload schedule, and when the
// next reload runs.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/darwin-mfc/clinical-api/interfaces"
)

// CheckerImpl implements the interfaces.HealthChecker interface.
type CheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewChecker creates a health checker with injected dependencies.
func NewChecker(dataStore interfaces.DataStore) interfaces.HealthChecker {
	return &CheckerImpl{dataStore: dataStore}
}

// HealthCheck returns HTTP-specific health data. Content reloads twice a
// day, so a snapshot older than two missed reloads means the scheduler is
// stuck.
func (h *CheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	snap := h.dataStore.Snapshot()
	lastUpdate := h.dataStore.LastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	switch {
	case snap.Diseases.Len() == 0 || snap.Medications.Len() == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case isUpdating && dataAge > 6*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"diseases":       snap.Diseases.Len(),
		"medications":    snap.Medications.Len(),
		"protocols":      snap.Protocols.Len(),
		"calculators":    snap.Calculators.Len(),
		"screenings":     snap.Screenings.Len(),
		"interactions":   snap.Interactions.Len(),
		"is_updating":    isUpdating,
		"next_reload":    h.NextReload().Format(time.RFC3339),
		"uptime_hours":   math.Round(time.Since(h.dataStore.ServerStartTime()).Hours()*10) / 10,
	}

	return status, data, httpStatus
}

// NextReload returns the next scheduled content reload time. Reloads run
// daily at 6:00 and 18:00 local time.
func (h *CheckerImpl) NextReload() time.Time {
	now := time.Now()

	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	if now.Before(sixAM) {
		return sixAM
	}
	if now.Before(sixPM) {
		return sixPM
	}
	return sixAM.AddDate(0, 0, 1)
}
