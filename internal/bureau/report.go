package bureau

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/seenimoa/bureaulens/internal/findings"
	"github.com/seenimoa/bureaulens/pkg/models"
)

// Builder assembles the full deterministic report payload for a customer.
// Dataset failures on the tradeline source are fatal; tradeline features,
// findings, and the exposure series are fail-soft (the report degrades to a
// partial payload and the failure is logged, never masked as "no data" for
// the tradeline source itself).
type Builder struct {
	data      *Data
	extractor *Extractor
}

// NewBuilder creates a report builder over the given datasets.
func NewBuilder(data *Data) *Builder {
	return &Builder{data: data, extractor: NewExtractor(data)}
}

// Extractor exposes the builder's extractor for callers that need only the
// feature layer.
func (b *Builder) Extractor() *Extractor {
	return b.extractor
}

// Build extracts, aggregates, and evaluates findings for one customer and
// assembles the report payload. Validation warnings are attached to the
// report; whether to proceed despite them is the caller's decision.
func (b *Builder) Build(customerID int64) (*models.BureauReport, error) {
	vectors, err := b.extractor.Extract(customerID)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		log.WithField("customer_id", customerID).Warn("no bureau tradelines found")
	}

	summary := Aggregate(vectors)

	// Pre-computed features are fail-soft: a broken feature file degrades
	// the report instead of failing it.
	features, err := b.data.TradelineFeatures(customerID)
	if err != nil {
		log.WithField("customer_id", customerID).WithError(err).Warn("tradeline feature lookup failed")
		features = nil
	}

	report := &models.BureauReport{
		Meta: models.ReportMeta{
			RunID:          uuid.NewString(),
			CustomerID:     customerID,
			GeneratedAt:    b.extractor.now(),
			AnalysisPeriod: "Bureau tradeline history",
			Currency:       "INR",
			TradelineCount: summary.TotalTradelines,
		},
		FeatureVectors:    vectors,
		ExecutiveSummary:  summary,
		TradelineFeatures: features,
		KeyFindings:       findings.Generate(summary, vectors, features),
	}

	exposure, err := b.extractor.MonthlyExposure(customerID, DefaultExposureMonths)
	if err != nil {
		log.WithField("customer_id", customerID).WithError(err).Warn("monthly exposure computation failed")
	} else {
		report.MonthlyExposure = exposure
	}

	report.Warnings = Validate(report)
	for _, w := range report.Warnings {
		log.WithField("customer_id", customerID).Warnf("report validation: %s", w)
	}

	return report, nil
}

// Validate runs post-assembly sanity checks and returns the violations.
// These are ValidationError conditions, reported distinctly from "no data":
// the core surfaces them, it does not suppress the report.
func Validate(report *models.BureauReport) []string {
	var warnings []string
	summary := report.ExecutiveSummary

	if summary.LiveTradelines+summary.ClosedTradelines != summary.TotalTradelines {
		warnings = append(warnings, fmt.Sprintf(
			"tradeline count mismatch: live(%d) + closed(%d) != total(%d)",
			summary.LiveTradelines, summary.ClosedTradelines, summary.TotalTradelines))
	}

	for _, lt := range models.CanonicalLoanTypes {
		vec, ok := report.FeatureVectors[lt]
		if !ok {
			continue
		}
		if vec.UtilizationRatio != nil && lt != models.CreditCard {
			warnings = append(warnings, fmt.Sprintf("utilization ratio present for non-revolving type: %s", lt))
		}
		if vec.LiveCount+vec.ClosedCount != vec.LoanCount {
			warnings = append(warnings, fmt.Sprintf("live/closed mismatch for %s", lt))
		}
		if vec.OnUsCount+vec.OffUsCount != vec.LoanCount {
			warnings = append(warnings, fmt.Sprintf("sector split mismatch for %s", lt))
		}
		if vec.TotalSanctioned < 0 {
			warnings = append(warnings, fmt.Sprintf("negative sanctioned amount for %s", lt))
		}
		if vec.TotalOutstanding < 0 {
			warnings = append(warnings, fmt.Sprintf("negative outstanding amount for %s", lt))
		}
		if vec.OverdueAmount < 0 {
			warnings = append(warnings, fmt.Sprintf("negative overdue amount for %s", lt))
		}
	}

	return warnings
}
