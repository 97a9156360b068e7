package entities

// Severity is the ordinal risk ranking of a drug interaction.
// The clinical order is leve < moderada < grave < contraindicada; Rank is the
// only authoritative ordering, never the alphabetical one.
type Severity string

const (
	SeverityMild            Severity = "leve"
	SeverityModerate        Severity = "moderada"
	SeveritySevere          Severity = "grave"
	SeverityContraindicated Severity = "contraindicada"
)

// Rank returns the position of s in the clinical severity order.
// Unknown values rank below every valid severity.
func (s Severity) Rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	case SeverityContraindicated:
		return 4
	default:
		return 0
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// AllSeverities lists the valid severities from least to most severe.
func AllSeverities() []Severity {
	return []Severity{SeverityMild, SeverityModerate, SeveritySevere, SeverityContraindicated}
}

// Mechanism is the closed set of interaction mechanism categories.
type Mechanism string

const (
	MechanismPKAbsorption  Mechanism = "farmacocinetico_absorcao"
	MechanismPKMetabolism  Mechanism = "farmacocinetico_metabolismo"
	MechanismPKExcretion   Mechanism = "farmacocinetico_excrecao"
	MechanismPDSynergism   Mechanism = "farmacodinamico_sinergismo"
	MechanismPDAntagonism  Mechanism = "farmacodinamico_antagonismo"
	MechanismUnknown       Mechanism = "desconhecido"
)

func (m Mechanism) Valid() bool {
	switch m {
	case MechanismPKAbsorption, MechanismPKMetabolism, MechanismPKExcretion,
		MechanismPDSynergism, MechanismPDAntagonism, MechanismUnknown:
		return true
	}
	return false
}

// Evidence is the strength of the literature backing an interaction record.
type Evidence string

const (
	EvidenceHigh     Evidence = "alta"
	EvidenceModerate Evidence = "moderada"
	EvidenceLow      Evidence = "baixa"
)

func (e Evidence) Valid() bool {
	switch e {
	case EvidenceHigh, EvidenceModerate, EvidenceLow:
		return true
	}
	return false
}

// UsageTier classifies a medication's role in treating a disease.
// It is only meaningful on cross-references whose target is a medication.
type UsageTier string

const (
	TierFirstLine   UsageTier = "primeira_linha"
	TierSecondLine  UsageTier = "segunda_linha"
	TierAlternative UsageTier = "alternativa"
	TierAdjuvant    UsageTier = "adjuvante"
)

func (t UsageTier) Valid() bool {
	switch t {
	case TierFirstLine, TierSecondLine, TierAlternative, TierAdjuvant:
		return true
	}
	return false
}

// TargetType identifies which entity kind a cross-reference points into.
type TargetType string

const (
	TargetMedication TargetType = "medicamento"
	TargetProtocol   TargetType = "protocolo"
	TargetCalculator TargetType = "calculadora"
	TargetScreening  TargetType = "rastreamento"
)

func (tt TargetType) Valid() bool {
	switch tt {
	case TargetMedication, TargetProtocol, TargetCalculator, TargetScreening:
		return true
	}
	return false
}
