package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/data"
	"github.com/darwin-mfc/clinical-api/query"
	"github.com/darwin-mfc/clinical-api/validation"
	"github.com/go-chi/chi/v5"
)

func testDataset() *catalog.Dataset {
	ds := &catalog.Dataset{
		Diseases: []entities.Disease{
			{ID: "hipertensao-arterial", Titulo: "Hipertensão Arterial Sistêmica (HAS)", Sinonimos: []string{"Pressão alta"}, Categoria: "cardiovascular", Cid10: []string{"I10"}},
			{ID: "diabetes-mellitus-2", Titulo: "Diabetes Mellitus tipo 2 (DM2)", Categoria: "metabolico", Cid10: []string{"E11"}},
			{ID: "asma", Titulo: "Asma Brônquica", Categoria: "respiratorio"},
		},
		Medications: []entities.Medication{
			{ID: "losartana", NomeGenerico: "Losartana", ClasseTerapeutica: "anti_hipertensivo", DisponivelSUS: true},
			{ID: "varfarina", NomeGenerico: "Varfarina", ClasseTerapeutica: "anticoagulante", DisponivelSUS: true},
			{ID: "aas", NomeGenerico: "Ácido Acetilsalicílico", ClasseTerapeutica: "antiagregante", DisponivelSUS: true},
			{ID: "ibuprofeno", NomeGenerico: "Ibuprofeno", ClasseTerapeutica: "anti_inflamatorio", DisponivelSUS: true},
		},
		Protocols: []entities.Protocol{
			{ID: "manejo-has", Titulo: "Manejo da Hipertensão Arterial na APS"},
		},
		Interactions: []entities.Interaction{
			{ID: "varfarina-aas", Medicamento1: "varfarina", Medicamento2: "aas", Gravidade: entities.SeveritySevere, Mecanismo: entities.MechanismPDSynergism, Evidencia: entities.EvidenceHigh},
			{ID: "aas-ibuprofeno", Medicamento1: "aas", Medicamento2: "ibuprofeno", Gravidade: entities.SeverityModerate, Mecanismo: entities.MechanismPDAntagonism, Evidencia: entities.EvidenceHigh},
		},
		CrossReferences: []entities.CrossReference{
			{DoencaID: "hipertensao-arterial", Tipo: entities.TargetMedication, AlvoID: "losartana", TipoUso: entities.TierFirstLine, DisponivelSUS: true},
			{DoencaID: "hipertensao-arterial", Tipo: entities.TargetProtocol, AlvoID: "manejo-has", Prioridade: 1},
		},
	}
	for i := range ds.Diseases {
		ds.Diseases[i].Reindex()
	}
	for i := range ds.Medications {
		ds.Medications[i].Reindex()
	}
	for i := range ds.Protocols {
		ds.Protocols[i].Reindex()
	}
	return ds
}

func testRouter() chi.Router {
	container := data.NewContainer()
	container.Swap(data.NewSnapshot(testDataset()))

	h := NewHandler(container, validation.NewValidator(), 20, 100)

	r := chi.NewRouter()
	r.Route("/diseases", func(r chi.Router) {
		r.Get("/", h.ListDiseases)
		r.Get("/categories", h.DiseaseCategories)
		r.Get("/{id}", h.GetDisease)
		r.Get("/{id}/cross-references", h.DiseaseCrossReferences)
	})
	r.Route("/medications", func(r chi.Router) {
		r.Get("/", h.ListMedications)
		r.Get("/classes", h.MedicationClasses)
		r.Post("/interactions", h.CheckInteractions)
		r.Get("/{id}", h.GetMedication)
		r.Get("/{id}/interactions", h.MedicationInteractions)
		r.Get("/{id}/diseases", h.MedicationDiseases)
	})
	r.Route("/protocols", func(r chi.Router) {
		r.Get("/", h.ListProtocols)
		r.Get("/{id}", h.GetProtocol)
	})
	return r
}

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   *APIError         `json:"error"`
	Meta    *query.Pagination `json:"meta"`
}

func doRequest(t *testing.T, router chi.Router, method, target string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope from %s %s: %v (body: %s)", method, target, err, rec.Body.String())
	}
	return rec, env
}

func TestSearchDiseasesPartialAccentFree(t *testing.T) {
	router := testRouter()

	rec, env := doRequest(t, router, http.MethodGet, "/diseases?search=hiperten", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !env.Success {
		t.Fatal("Expected success=true")
	}

	var payload struct {
		Items []entities.Disease `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode list payload: %v", err)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("Expected 1 result for 'hiperten', got %d", len(payload.Items))
	}
	if payload.Items[0].Titulo != "Hipertensão Arterial Sistêmica (HAS)" {
		t.Errorf("Expected the hypertension record, got %s", payload.Items[0].Titulo)
	}
	if env.Meta == nil || env.Meta.Total != 1 || env.Meta.Page != 1 {
		t.Errorf("Expected pagination meta total=1 page=1, got %+v", env.Meta)
	}
}

func TestListDiseasesPaginationMeta(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/diseases?page=1&pageSize=2&sortBy=id", nil)
	if env.Meta.Total != 3 || env.Meta.TotalPages != 2 || !env.Meta.HasNext || env.Meta.HasPrev {
		t.Errorf("Expected total=3 totalPages=2 hasNext hasPrev=false, got %+v", env.Meta)
	}
}

func TestListDiseasesInvalidParams(t *testing.T) {
	router := testRouter()

	tests := []string{
		"/diseases?page=abc",
		"/diseases?page=0",
		"/diseases?pageSize=0",
		"/diseases?pageSize=9999",
		"/diseases?sortBy=gravidade",
		"/diseases?sortOrder=sideways",
		"/diseases?search=%3Cscript%3E",
	}
	for _, target := range tests {
		rec, env := doRequest(t, router, http.MethodGet, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", target, rec.Code)
			continue
		}
		if env.Success || env.Error == nil || env.Error.Code != CodeInvalidArgument {
			t.Errorf("Expected INVALID_ARGUMENT envelope for %s, got %+v", target, env)
		}
	}
}

func TestGetDisease(t *testing.T) {
	router := testRouter()

	rec, env := doRequest(t, router, http.MethodGet, "/diseases/asma", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("Expected 200 success, got %d", rec.Code)
	}

	rec, env = doRequest(t, router, http.MethodGet, "/diseases/nao-existe", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	if env.Success || env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("Expected NOT_FOUND envelope, got %+v", env)
	}
}

func TestDiseaseCrossReferences(t *testing.T) {
	router := testRouter()

	rec, env := doRequest(t, router, http.MethodGet, "/diseases/hipertensao-arterial/cross-references", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var view struct {
		Medicamentos struct {
			PrimeiraLinha []json.RawMessage `json:"primeiraLinha"`
			Demais        []json.RawMessage `json:"demais"`
		} `json:"medicamentos"`
		Protocolos []json.RawMessage `json:"protocolos"`
		Sugestoes  []json.RawMessage `json:"sugestoes"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("Failed to decode view: %v", err)
	}
	if len(view.Medicamentos.PrimeiraLinha) != 1 || len(view.Protocolos) != 1 {
		t.Errorf("Expected 1 first-line medication and 1 protocol, got %d/%d",
			len(view.Medicamentos.PrimeiraLinha), len(view.Protocolos))
	}
	if len(view.Sugestoes) != 2 {
		t.Errorf("Expected 2 suggestions, got %d", len(view.Sugestoes))
	}

	// A known disease without links is still a 200 with an empty view
	rec, env = doRequest(t, router, http.MethodGet, "/diseases/asma/cross-references", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("Expected 200 success for a linkless disease, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/diseases/nao-existe/cross-references", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown disease, got %d", rec.Code)
	}
}

func TestDiseaseCategories(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/diseases/categories", nil)
	var categories []string
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		t.Fatalf("Failed to decode categories: %v", err)
	}
	want := []string{"cardiovascular", "metabolico", "respiratorio"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, c := range want {
		if categories[i] != c {
			t.Errorf("Expected %s at position %d, got %s", c, i, categories[i])
		}
	}
}

func TestListMedicationsByClass(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/medications?classe=anticoagulante", nil)
	var payload struct {
		Items []entities.Medication `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode list payload: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ID != "varfarina" {
		t.Errorf("Expected only varfarina, got %v", payload.Items)
	}
}

func TestMedicationInteractions(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/medications/aas/interactions", nil)
	var payload struct {
		Interacoes []entities.Interaction `json:"interacoes"`
		Resumo     struct {
			Total int `json:"total"`
		} `json:"resumo"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if len(payload.Interacoes) != 2 || payload.Resumo.Total != 2 {
		t.Errorf("Expected 2 interactions for aas, got %d (summary %d)", len(payload.Interacoes), payload.Resumo.Total)
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/medications/nao-existe/interactions", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown medication, got %d", rec.Code)
	}
}

func TestCheckInteractions(t *testing.T) {
	router := testRouter()

	body := []byte(`{"medicationIds": ["varfarina", "aas", "losartana"]}`)
	rec, env := doRequest(t, router, http.MethodPost, "/medications/interactions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var payload struct {
		Interacoes []entities.Interaction `json:"interacoes"`
		Resumo     struct {
			Total    int    `json:"total"`
			Pior     string `json:"pior"`
			TemGrave bool   `json:"temGrave"`
		} `json:"resumo"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if len(payload.Interacoes) != 1 || payload.Interacoes[0].ID != "varfarina-aas" {
		t.Fatalf("Expected only varfarina-aas, got %v", payload.Interacoes)
	}
	if payload.Resumo.Pior != "grave" || !payload.Resumo.TemGrave {
		t.Errorf("Expected worst=grave, got %+v", payload.Resumo)
	}
}

func TestCheckInteractionsRejectsBadRequests(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `medicationIds=aas`},
		{"single id", `{"medicationIds": ["aas"]}`},
		{"empty list", `{"medicationIds": []}`},
		{"invalid id", `{"medicationIds": ["aas", "DROP TABLE"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/medications/interactions", []byte(tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			if env.Error == nil || env.Error.Code != CodeInvalidArgument {
				t.Errorf("Expected INVALID_ARGUMENT, got %+v", env.Error)
			}
		})
	}
}

func TestMedicationDiseasesReverseLookup(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/medications/losartana/diseases", nil)
	var diseases []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &diseases); err != nil {
		t.Fatalf("Failed to decode diseases: %v", err)
	}
	if len(diseases) != 1 || diseases[0].ID != "hipertensao-arterial" {
		t.Errorf("Expected hipertensao-arterial, got %v", diseases)
	}

	// A medication no disease links to yields an empty list, not an error
	rec, env := doRequest(t, router, http.MethodGet, "/medications/ibuprofeno/diseases", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &diseases); err != nil {
		t.Fatalf("Failed to decode diseases: %v", err)
	}
	if len(diseases) != 0 {
		t.Errorf("Expected no diseases, got %v", diseases)
	}
}

func TestMedicationClasses(t *testing.T) {
	router := testRouter()

	_, env := doRequest(t, router, http.MethodGet, "/medications/classes", nil)
	var classes []string
	if err := json.Unmarshal(env.Data, &classes); err != nil {
		t.Fatalf("Failed to decode classes: %v", err)
	}
	if len(classes) != 4 {
		t.Errorf("Expected 4 distinct classes, got %d: %v", len(classes), classes)
	}
}

func TestListProtocols(t *testing.T) {
	router := testRouter()

	rec, env := doRequest(t, router, http.MethodGet, "/protocols?search=manejo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var payload struct {
		Items []entities.Protocol `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ID != "manejo-has" {
		t.Errorf("Expected manejo-has, got %v", payload.Items)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/protocols/nao-existe", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
