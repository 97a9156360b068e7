package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/config"
	"github.com/darwin-mfc/clinical-api/data"
	"github.com/darwin-mfc/clinical-api/handlers"
	"github.com/darwin-mfc/clinical-api/health"
	"github.com/darwin-mfc/clinical-api/logging"
	"github.com/darwin-mfc/clinical-api/validation"
	"github.com/go-chi/chi/v5"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "8000",
		Address:         "127.0.0.1",
		Env:             "test",
		DefaultPageSize: 20,
		MaxPageSize:     100,
		MaxRequestBody:  1048576,
		MaxHeaderSize:   1048576,
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logging.InitLogger(t.TempDir())

	ds := &catalog.Dataset{
		Diseases:    []entities.Disease{{ID: "hipertensao-arterial", Titulo: "Hipertensão Arterial Sistêmica (HAS)", Categoria: "cardiovascular"}},
		Medications: []entities.Medication{{ID: "losartana", NomeGenerico: "Losartana"}},
	}
	for i := range ds.Diseases {
		ds.Diseases[i].Reindex()
	}
	for i := range ds.Medications {
		ds.Medications[i].Reindex()
	}

	container := data.NewContainer()
	container.Swap(data.NewSnapshot(ds))

	handler := handlers.NewHandler(container, validation.NewValidator(), 20, 100)
	checker := health.NewChecker(container)
	return NewServer(testConfig(), handler, checker)
}

func get(router chi.Router, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesAreWired(t *testing.T) {
	srv := testServer(t)

	routes := []string{
		"/diseases",
		"/diseases/hipertensao-arterial",
		"/diseases/hipertensao-arterial/cross-references",
		"/diseases/categories",
		"/medications",
		"/medications/losartana",
		"/medications/losartana/interactions",
		"/medications/losartana/diseases",
		"/medications/classes",
		"/protocols",
		"/calculators",
		"/screenings",
		"/health",
		"/metrics",
	}

	for _, route := range routes {
		if rec := get(srv.Router(), route); rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
			t.Errorf("Expected %s to be routed, got %d", route, rec.Code)
		}
	}
}

func TestHealthEndpointPayload(t *testing.T) {
	srv := testServer(t)

	rec := get(srv.Router(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a loaded catalog, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode health payload: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", payload["status"])
	}
	if payload["diseases"] != float64(1) {
		t.Errorf("Expected 1 disease in the payload, got %v", payload["diseases"])
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := testServer(t)

	if rec := get(srv.Router(), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown route, got %d", rec.Code)
	}
}

func TestRateLimitHeadersPresent(t *testing.T) {
	srv := testServer(t)

	rec := get(srv.Router(), "/diseases")
	if rec.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected the rate limit headers on responses")
	}
}

func TestCORSHeadersOnPreflight(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/diseases", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected CORS headers on preflight responses")
	}
}
