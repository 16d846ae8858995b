package models

import "time"

// ReportMeta describes one report generation run.
type ReportMeta struct {
	RunID          string    `json:"run_id"`
	CustomerID     int64     `json:"customer_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	AnalysisPeriod string    `json:"analysis_period"`
	Currency       string    `json:"currency"`
	TradelineCount int       `json:"tradeline_count"`
}

// MonthlyExposure is the active sanction exposure per canonical loan type
// over a trailing calendar-month window. Months run oldest to newest; each
// series has one amount per month, keyed by the loan type short code.
type MonthlyExposure struct {
	Months []string             `json:"months"`
	Series map[string][]float64 `json:"series"`
}

// BureauReport is the structured payload handed to narration and rendering
// collaborators. Every number in it is a deterministic function of the
// bureau datasets; feature vectors are retained for auditability.
type BureauReport struct {
	Meta             ReportMeta                      `json:"meta"`
	FeatureVectors   map[LoanType]*LoanFeatureVector `json:"feature_vectors"`
	ExecutiveSummary ExecutiveSummary                `json:"executive_summary"`
	TradelineFeatures *TradelineFeatures             `json:"tradeline_features,omitempty"`
	KeyFindings      []KeyFinding                    `json:"key_findings"`
	MonthlyExposure  *MonthlyExposure                `json:"monthly_exposure,omitempty"`

	// Warnings carries validation-battery violations. The core surfaces
	// them; the caller decides whether to proceed in degraded mode.
	Warnings []string `json:"warnings,omitempty"`
}

// PresentTypes returns the loan types present in the report's feature
// vectors, in canonical order.
func (r *BureauReport) PresentTypes() []LoanType {
	var types []LoanType
	for _, lt := range CanonicalLoanTypes {
		if _, ok := r.FeatureVectors[lt]; ok {
			types = append(types, lt)
		}
	}
	return types
}
