package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/data"
)

func populatedSnapshot(age time.Duration) *data.Snapshot {
	snap := data.NewSnapshot(&catalog.Dataset{
		Diseases:    []entities.Disease{{ID: "has", Titulo: "HAS"}},
		Medications: []entities.Medication{{ID: "losartana", NomeGenerico: "Losartana"}},
	})
	snap.BuiltAt = time.Now().Add(-age)
	return snap
}

func TestHealthCheckUnhealthyWhenEmpty(t *testing.T) {
	container := data.NewContainer()
	checker := NewChecker(container)

	status, _, httpStatus := checker.HealthCheck()
	if status != "unhealthy" {
		t.Errorf("Expected unhealthy for an empty catalog, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}
}

func TestHealthCheckHealthyWithFreshData(t *testing.T) {
	container := data.NewContainer()
	container.SetServerStartTime(time.Now())
	container.Swap(populatedSnapshot(1 * time.Hour))
	checker := NewChecker(container)

	status, details, httpStatus := checker.HealthCheck()
	if status != "healthy" {
		t.Errorf("Expected healthy, got %s", status)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected 200, got %d", httpStatus)
	}
	if details["diseases"] != 1 || details["medications"] != 1 {
		t.Errorf("Expected counts in the payload, got %v", details)
	}
	if _, ok := details["next_reload"]; !ok {
		t.Error("Expected next_reload in the payload")
	}
}

func TestHealthCheckDegradedWhenStale(t *testing.T) {
	container := data.NewContainer()
	container.Swap(populatedSnapshot(30 * time.Hour))
	checker := NewChecker(container)

	status, _, httpStatus := checker.HealthCheck()
	if status != "degraded" {
		t.Errorf("Expected degraded after one missed reload day, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}
}

func TestHealthCheckUnhealthyWhenVeryStale(t *testing.T) {
	container := data.NewContainer()
	container.Swap(populatedSnapshot(50 * time.Hour))
	checker := NewChecker(container)

	if status, _, _ := checker.HealthCheck(); status != "unhealthy" {
		t.Errorf("Expected unhealthy after two missed days, got %s", status)
	}
}

func TestNextReloadIsTheNextSlot(t *testing.T) {
	checker := NewChecker(data.NewContainer())

	next := checker.NextReload()
	if !next.After(time.Now()) {
		t.Errorf("Expected a future time, got %v", next)
	}
	if next.Hour() != 6 && next.Hour() != 18 {
		t.Errorf("Expected a 06:00 or 18:00 slot, got %v", next)
	}
	if next.Minute() != 0 || next.Second() != 0 {
		t.Errorf("Expected the exact slot time, got %v", next)
	}
}
