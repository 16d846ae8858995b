package models

// Severity tags a key finding for downstream grouping. The scale is ordered:
// high_risk > moderate_risk > concern > neutral > positive.
type Severity string

const (
	SeverityHighRisk     Severity = "high_risk"
	SeverityModerateRisk Severity = "moderate_risk"
	SeverityConcern      Severity = "concern"
	SeverityNeutral      Severity = "neutral"
	SeverityPositive     Severity = "positive"
)

// Rank returns the sort rank of a severity, most severe first. Unknown
// severities rank as neutral.
func (s Severity) Rank() int {
	switch s {
	case SeverityHighRisk:
		return 0
	case SeverityModerateRisk:
		return 1
	case SeverityConcern:
		return 2
	case SeverityNeutral:
		return 3
	case SeverityPositive:
		return 4
	default:
		return 3
	}
}

// KeyFinding is one deterministic, severity-tagged observation emitted by
// the findings engine. Finding text is templated from computed values;
// the narration layer may rephrase it but never alter the numbers.
type KeyFinding struct {
	Category  string   `json:"category"`  // e.g. "Delinquency", "Utilization"
	Finding   string   `json:"finding"`   // factual observation
	Inference string   `json:"inference"` // risk or positive interpretation
	Severity  Severity `json:"severity"`
}
