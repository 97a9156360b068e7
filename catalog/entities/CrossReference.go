package entities

// CrossReference links a disease to an entity of another kind. TipoUso is
// only meaningful when Tipo is TargetMedication. Prioridade is an optional
// explicit rank (1 is highest); zero means unset, in which case declaration
// order decides.
type CrossReference struct {
	DoencaID      string     `json:"doencaId"`
	Tipo          TargetType `json:"tipo"`
	AlvoID        string     `json:"alvoId"`
	TipoUso       UsageTier  `json:"tipoUso,omitempty"`
	Posologia     string     `json:"posologiaResumida,omitempty"`
	Indicacao     string     `json:"indicacaoEspecifica,omitempty"`
	Nota          string     `json:"nota,omitempty"`
	Prioridade    int        `json:"prioridade,omitempty"`
	DisponivelSUS bool       `json:"disponivelSUS,omitempty"`
}
