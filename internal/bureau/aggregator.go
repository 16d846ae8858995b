package bureau

import "github.com/seenimoa/bureaulens/pkg/models"

// Aggregate reduces per-loan-type feature vectors into the customer-level
// executive summary. It is a pure function: re-aggregating the same map
// always yields an identical summary. An empty map yields the canonical
// "no bureau data" summary (all totals zero, no delinquency), which
// downstream consumers must treat as valid.
//
// Loan types are visited in canonical order so that tie-breaks on the
// portfolio max DPD (strictly-greater comparison, first seen wins) are
// reproducible across runs.
func Aggregate(vectors map[models.LoanType]*models.LoanFeatureVector) models.ExecutiveSummary {
	var summary models.ExecutiveSummary

	for _, lt := range models.CanonicalLoanTypes {
		vec, ok := vectors[lt]
		if !ok {
			continue
		}

		summary.TotalTradelines += vec.LoanCount
		summary.LiveTradelines += vec.LiveCount
		summary.ClosedTradelines += vec.ClosedCount

		summary.TotalSanctioned += vec.TotalSanctioned
		summary.TotalOutstanding += vec.TotalOutstanding
		summary.TotalOverdue += vec.OverdueAmount

		// Unsecured exposure: only groups with no secured raw variant.
		if !vec.Secured {
			summary.UnsecuredSanctioned += vec.TotalSanctioned
			summary.UnsecuredOutstanding += vec.TotalOutstanding
		}

		if vec.DelinquencyFlag {
			summary.HasDelinquency = true
		}

		// Portfolio max DPD, absent-safe: nil vector maxes are skipped,
		// never treated as zero.
		if vec.MaxDPD != nil {
			if summary.MaxDPD == nil || *vec.MaxDPD > *summary.MaxDPD {
				summary.MaxDPD = vec.MaxDPD
				summary.MaxDPDMonthsAgo = vec.MaxDPDMonthsAgo
				summary.MaxDPDLoanType = lt.DisplayName()
			}
		}
	}

	return summary
}
