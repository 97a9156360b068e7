package validation

import (
	"strings"
	"testing"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
)

func TestValidateSearchTermAccepts(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"hipertensão",
		"diabetes tipo 2",
		"Pressão alta",
		"dor lombar (aguda)",
		"sulfametoxazol-trimetoprima",
		"ácido acetilsalicílico",
		"I10",
	}
	for _, term := range valid {
		if err := v.ValidateSearchTerm(term); err != nil {
			t.Errorf("Expected %q to be valid, got %v", term, err)
		}
	}
}

func TestValidateSearchTermRejects(t *testing.T) {
	v := NewValidator()

	invalid := []string{
		"",
		strings.Repeat("a", 101),
		"<script>alert(1)</script>",
		"'; DROP TABLE doencas; --",
		"busca' OR '1'='1",
		"../../../etc/passwd",
		"${jndi:ldap://x}",
		"test`whoami`",
	}
	for _, term := range invalid {
		if err := v.ValidateSearchTerm(term); err == nil {
			t.Errorf("Expected %q to be rejected", term)
		}
	}
}

func TestValidateEntityID(t *testing.T) {
	v := NewValidator()

	valid := []string{"hipertensao-arterial", "diabetes-mellitus-2", "aas", "phq-9"}
	for _, id := range valid {
		if err := v.ValidateEntityID(id); err != nil {
			t.Errorf("Expected %q to be valid, got %v", id, err)
		}
	}

	invalid := []string{"", "-leading-dash", "UPPERCASE", "has space", "sql';--", strings.Repeat("a", 65)}
	for _, id := range invalid {
		if err := v.ValidateEntityID(id); err == nil {
			t.Errorf("Expected %q to be rejected", id)
		}
	}
}

func TestReportDataQualityClean(t *testing.T) {
	v := NewValidator()

	ds := &catalog.Dataset{
		Diseases:    []entities.Disease{{ID: "has", Titulo: "HAS"}},
		Medications: []entities.Medication{{ID: "losartana", NomeGenerico: "Losartana", AtcCode: "C09CA01"}},
		CrossReferences: []entities.CrossReference{
			{DoencaID: "has", Tipo: entities.TargetMedication, AlvoID: "losartana", TipoUso: entities.TierFirstLine},
		},
		Interactions: []entities.Interaction{},
	}

	report := v.ReportDataQuality(ds)
	if !report.Clean() {
		t.Errorf("Expected a clean report, got %+v", report)
	}
	if report.DiseasesWithoutCrossRefs != 0 {
		t.Errorf("Expected full cross-reference coverage, got %d uncovered", report.DiseasesWithoutCrossRefs)
	}
}

func TestReportDataQualityFindsDefects(t *testing.T) {
	v := NewValidator()

	ds := &catalog.Dataset{
		Diseases: []entities.Disease{
			{ID: "has", Titulo: "HAS"},
			{ID: "has", Titulo: "HAS duplicada"},
			{ID: "asma", Titulo: "Asma"},
		},
		Medications: []entities.Medication{
			{ID: "losartana", NomeGenerico: "Losartana", AtcCode: "C09CA01"},
			{ID: "sem-codigos", NomeGenerico: "Sem Códigos"},
		},
		CrossReferences: []entities.CrossReference{
			{DoencaID: "has", Tipo: entities.TargetMedication, AlvoID: "losartana"},
			{DoencaID: "has", Tipo: entities.TargetProtocol, AlvoID: "nao-existe"},
		},
		Interactions: []entities.Interaction{
			{ID: "x", Medicamento1: "losartana", Medicamento2: "fantasma", Gravidade: entities.SeverityMild},
			// Redundant authoring of the same pair must not double-report
			{ID: "x2", Medicamento1: "fantasma", Medicamento2: "losartana", Gravidade: entities.SeverityMild},
		},
	}

	report := v.ReportDataQuality(ds)
	if report.Clean() {
		t.Fatal("Expected defects to be reported")
	}
	if len(report.DuplicateDiseaseIDs) != 1 || report.DuplicateDiseaseIDs[0] != "has" {
		t.Errorf("Expected duplicate disease id has, got %v", report.DuplicateDiseaseIDs)
	}
	if len(report.DanglingCrossRefTargets) != 1 {
		t.Errorf("Expected 1 dangling target, got %v", report.DanglingCrossRefTargets)
	}
	if len(report.InteractionUnknownMedIDs) != 1 || report.InteractionUnknownMedIDs[0] != "fantasma" {
		t.Errorf("Expected fantasma reported once, got %v", report.InteractionUnknownMedIDs)
	}
	if report.DiseasesWithoutCrossRefs != 1 {
		t.Errorf("Expected asma uncovered, got %d", report.DiseasesWithoutCrossRefs)
	}
	if report.MedicationsWithoutAnyCodes != 1 {
		t.Errorf("Expected 1 codeless medication, got %d", report.MedicationsWithoutAnyCodes)
	}
}
