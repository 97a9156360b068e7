package entities

// Interaction is a clinically significant interaction between an unordered
// pair of medications. {Medicamento1, Medicamento2} and the swapped pair
// denote the same record; identity is established through the canonical pair
// key, never through field order.
type Interaction struct {
	ID           string    `json:"id"`
	Medicamento1 string    `json:"medicamento1"`
	Medicamento2 string    `json:"medicamento2"`
	Gravidade    Severity  `json:"gravidade"`
	Mecanismo    Mechanism `json:"mecanismo"`
	Efeito       string    `json:"efeito"`
	Conduta      string    `json:"conduta"`
	Evidencia    Evidence  `json:"evidencia"`
	Fontes       []string  `json:"fontes,omitempty"`
}

// Involves reports whether the record's pair contains the given medication id.
func (i Interaction) Involves(medicationID string) bool {
	return i.Medicamento1 == medicationID || i.Medicamento2 == medicationID
}

// Other returns the pair member that is not medicationID. If medicationID is
// not part of the pair it returns the empty string.
func (i Interaction) Other(medicationID string) string {
	switch medicationID {
	case i.Medicamento1:
		return i.Medicamento2
	case i.Medicamento2:
		return i.Medicamento1
	}
	return ""
}
