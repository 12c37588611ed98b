package model

// QualityCheckResult is one entry of the append-only quality history. Only
// the latest entry drives the quality gate; earlier entries are kept for
// audit and metrics.
type QualityCheckResult struct {
	Passed             bool     `json:"passed"`
	Score              float64  `json:"score"`
	PersonaConsistency float64  `json:"persona_consistency"`
	TomatoIntegration  float64  `json:"tomato_integration"`
	RomanticElements   float64  `json:"romantic_elements"`
	Issues             []string `json:"issues"`
	Suggestions        []string `json:"suggestions"`
}
