// Package validation provides input validation for the HTTP boundary and
// data-quality auditing for loaded datasets.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/catalog/entities"
	"github.com/darwin-mfc/clinical-api/interactions"
	"github.com/darwin-mfc/clinical-api/interfaces"
)

const (
	maxSearchTermLength = 100
	maxEntityIDLength   = 64
)

// Pre-compiled patterns, built once at package initialization.
var (
	// Catalog ids are lowercase slugs as authored in the content files.
	entityIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	// Search terms: word characters, Portuguese accents and safe punctuation.
	searchTermRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+'/,()]+$`)

	// Substring checks are cheaper than regex for these and catch the
	// injection attempts worth logging.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onerror=", "onload=",
		"eval(", "expression(",
		"' or ", "\" or ", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/",
		"../", "..\\", "file://",
		"${", "$(", "`",
	}
)

// Validator implements interfaces.DataValidator.
type Validator struct{}

// Compile-time check
var _ interfaces.DataValidator = (*Validator)(nil)

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSearchTerm rejects empty, oversized or dangerous search input.
func (v *Validator) ValidateSearchTerm(term string) error {
	if term == "" {
		return fmt.Errorf("search term cannot be empty")
	}
	if len(term) > maxSearchTermLength {
		return fmt.Errorf("search term too long: %d characters (max %d)", len(term), maxSearchTermLength)
	}

	lower := strings.ToLower(term)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("search term contains disallowed sequence")
		}
	}

	if !searchTermRegex.MatchString(term) {
		return fmt.Errorf("search term contains invalid characters")
	}

	return nil
}

// ValidateEntityID rejects strings that cannot be catalog ids.
func (v *Validator) ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if len(id) > maxEntityIDLength {
		return fmt.Errorf("id too long: %d characters (max %d)", len(id), maxEntityIDLength)
	}
	if !entityIDRegex.MatchString(id) {
		return fmt.Errorf("id must be a lowercase slug, got %q", id)
	}
	return nil
}

// ReportDataQuality audits a dataset for authoring defects: duplicate ids,
// cross-references whose target does not resolve, and interaction records
// naming unknown medications. Defects degrade single records at query time;
// the report exists so they get fixed at the source.
func (v *Validator) ReportDataQuality(ds *catalog.Dataset) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	diseaseIDs := make(map[string]bool, len(ds.Diseases))
	for _, d := range ds.Diseases {
		if diseaseIDs[d.ID] {
			report.DuplicateDiseaseIDs = append(report.DuplicateDiseaseIDs, d.ID)
			continue
		}
		diseaseIDs[d.ID] = true
	}

	medicationIDs := make(map[string]bool, len(ds.Medications))
	codelessCount := 0
	for _, m := range ds.Medications {
		if medicationIDs[m.ID] {
			report.DuplicateMedicationIDs = append(report.DuplicateMedicationIDs, m.ID)
			continue
		}
		medicationIDs[m.ID] = true
		if m.AtcCode == "" && m.RxNormCui == "" && m.DrugBankID == "" {
			codelessCount++
		}
	}
	report.MedicationsWithoutAnyCodes = codelessCount

	protocolIDs := idSet(len(ds.Protocols), func(i int) string { return ds.Protocols[i].ID })
	calculatorIDs := idSet(len(ds.Calculators), func(i int) string { return ds.Calculators[i].ID })
	screeningIDs := idSet(len(ds.Screenings), func(i int) string { return ds.Screenings[i].ID })

	linked := make(map[string]bool, len(ds.Diseases))
	for _, ref := range ds.CrossReferences {
		var ok bool
		switch ref.Tipo {
		case entities.TargetMedication:
			ok = medicationIDs[ref.AlvoID]
		case entities.TargetProtocol:
			ok = protocolIDs[ref.AlvoID]
		case entities.TargetCalculator:
			ok = calculatorIDs[ref.AlvoID]
		case entities.TargetScreening:
			ok = screeningIDs[ref.AlvoID]
		}
		if !ok {
			report.DanglingCrossRefTargets = append(report.DanglingCrossRefTargets,
				ref.DoencaID+" -> "+string(ref.Tipo)+":"+ref.AlvoID)
			continue
		}
		linked[ref.DoencaID] = true
	}

	for _, d := range ds.Diseases {
		if !linked[d.ID] {
			report.DiseasesWithoutCrossRefs++
		}
	}

	// Each unordered pair is reported once even when the record is authored
	// redundantly on both medications.
	seenPairs := make(map[string]bool, len(ds.Interactions))
	for _, rec := range ds.Interactions {
		key := interactions.PairKey(rec.Medicamento1, rec.Medicamento2)
		if seenPairs[key] {
			continue
		}
		seenPairs[key] = true
		for _, medID := range []string{rec.Medicamento1, rec.Medicamento2} {
			if !medicationIDs[medID] {
				report.InteractionUnknownMedIDs = append(report.InteractionUnknownMedIDs, medID)
			}
		}
	}

	return report
}

func idSet(n int, id func(int) string) map[string]bool {
	set := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		set[id(i)] = true
	}
	return set
}
