// Package findings evaluates a fixed battery of threshold rules over the
// aggregated bureau features and emits severity-tagged key findings.
//
// Every rule is pure and independent: it examines the executive summary,
// the per-loan-type feature vectors, and the pre-computed tradeline
// features, and conditionally contributes zero or one finding. Rules run in
// a fixed order and per-type passes iterate loan types canonically, so the
// output sequence is reproducible for identical inputs — a requirement for
// report diffing. A rule whose required feature is unavailable (nil) is
// skipped; it never substitutes a numeric placeholder.
package findings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seenimoa/bureaulens/pkg/models"
	"github.com/seenimoa/bureaulens/pkg/utils"
)

// Threshold constants for the rule battery. All fixed; no rule consults an
// external service.
const (
	dpdSevere   = 90 // days past due for severe delinquency
	dpdModerate = 30

	unsecuredShareHigh     = 80.0 // % of sanction that is unsecured
	unsecuredShareElevated = 50.0

	outstandingShareHigh = 80.0 // outstanding as % of sanctioned

	productDiversityMin = 4

	utilizationHigh     = 75.0 // % CC utilization
	utilizationElevated = 50.0
	utilizationHealthy  = 30.0

	newPLTradesHigh     = 3 // new PL trades in 6 months
	newPLTradesElevated = 2

	missedPaymentsHigh = 10.0 // % missed payments in 18 months

	goodClosureStrong = 0.8
	goodClosurePoor   = 0.5
	goodClosureWeak   = 0.7

	plBalanceHigh = 80.0 // % PL balance remaining
	plBalanceLow  = 30.0

	enquiriesVeryHigh = 15 // unsecured enquiries in 12 months
	enquiriesHigh     = 10
	enquiriesLow      = 3

	conversionLow  = 20.0 // trade-to-enquiry ratio %
	conversionHigh = 50.0

	interpurchaseRapid    = 1.0 // months between PL/BL acquisitions
	interpurchaseFrequent = 2.0
	interpurchaseMeasured = 6.0
)

// Generate runs the battery and returns the findings ordered by severity,
// most severe first. The sort is stable, so within a severity tier findings
// keep battery order. Stateless across customers.
func Generate(
	summary models.ExecutiveSummary,
	vectors map[models.LoanType]*models.LoanFeatureVector,
	tf *models.TradelineFeatures,
) []models.KeyFinding {
	var out []models.KeyFinding

	out = append(out, portfolioFindings(summary, vectors)...)
	out = append(out, loanTypeFindings(vectors)...)
	if tf != nil {
		out = append(out, tradelineFindings(tf, vectors)...)
		out = append(out, compositeFindings(summary, tf, vectors)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() < out[j].Severity.Rank()
	})
	return out
}

// timelineText renders a vector's open/close range for finding text,
// e.g. "Opened: Dec 2019 – Nov 2024 | Active".
func timelineText(vec *models.LoanFeatureVector) string {
	var parts []string
	if vec.EarliestOpened != "" {
		if vec.LatestOpened != "" && vec.LatestOpened != vec.EarliestOpened {
			parts = append(parts, fmt.Sprintf("Opened: %s – %s", vec.EarliestOpened, vec.LatestOpened))
		} else {
			parts = append(parts, "Opened: "+vec.EarliestOpened)
		}
	}
	if vec.LatestClosed != "" {
		parts = append(parts, "Last Closed: "+vec.LatestClosed)
	} else if vec.LiveCount > 0 {
		parts = append(parts, "Active")
	}
	return strings.Join(parts, " | ")
}

// timelineSuffix wraps timelineText as a bracketed suffix, or "" when the
// vector has no timeline.
func timelineSuffix(vec *models.LoanFeatureVector) string {
	if text := timelineText(vec); text != "" {
		return " [" + text + "]"
	}
	return ""
}

// typeTimeline returns the timeline suffix for a loan type if its vector is
// present, else "".
func typeTimeline(vectors map[models.LoanType]*models.LoanFeatureVector, lt models.LoanType) string {
	if vec, ok := vectors[lt]; ok {
		return timelineSuffix(vec)
	}
	return ""
}

// --- Portfolio-level rules ---

func portfolioFindings(
	summary models.ExecutiveSummary,
	vectors map[models.LoanType]*models.LoanFeatureVector,
) []models.KeyFinding {
	var out []models.KeyFinding

	// Timeline of the loan type carrying the portfolio max DPD.
	dpdTimeline := ""
	if summary.MaxDPDLoanType != "" {
		for _, lt := range models.CanonicalLoanTypes {
			if lt.DisplayName() != summary.MaxDPDLoanType {
				continue
			}
			if vec, ok := vectors[lt]; ok {
				if text := timelineText(vec); text != "" {
					dpdTimeline = fmt.Sprintf(" [%s: %s]", summary.MaxDPDLoanType, text)
				}
			}
			break
		}
	}

	// Delinquency tiers.
	switch {
	case summary.HasDelinquency && summary.MaxDPD != nil && *summary.MaxDPD > dpdSevere:
		out = append(out, models.KeyFinding{
			Category:  "Delinquency",
			Finding:   fmt.Sprintf("Active delinquency detected with Max DPD of %d days%s", *summary.MaxDPD, dpdTimeline),
			Inference: "Severe delinquency indicates significant repayment stress; loan may be classified as NPA",
			Severity:  models.SeverityHighRisk,
		})
	case summary.HasDelinquency && summary.MaxDPD != nil && *summary.MaxDPD > dpdModerate:
		out = append(out, models.KeyFinding{
			Category:  "Delinquency",
			Finding:   fmt.Sprintf("Active delinquency detected with Max DPD of %d days%s", *summary.MaxDPD, dpdTimeline),
			Inference: "Significant past-due status suggests repayment difficulty; close monitoring required",
			Severity:  models.SeverityModerateRisk,
		})
	case summary.HasDelinquency && summary.MaxDPD != nil && *summary.MaxDPD > 0:
		out = append(out, models.KeyFinding{
			Category:  "Delinquency",
			Finding:   fmt.Sprintf("Minor delinquency detected with Max DPD of %d days%s", *summary.MaxDPD, dpdTimeline),
			Inference: "Early-stage past-due status; may reflect temporary cash flow mismatch",
			Severity:  models.SeverityConcern,
		})
	case !summary.HasDelinquency:
		out = append(out, models.KeyFinding{
			Category:  "Delinquency",
			Finding:   "No delinquency detected across the portfolio",
			Inference: "Clean delinquency record is a positive indicator for repayment discipline",
			Severity:  models.SeverityPositive,
		})
	}

	// Unsecured sanction proportion.
	if summary.TotalSanctioned > 0 {
		unsecuredPct := summary.UnsecuredSanctioned / summary.TotalSanctioned * 100
		finding := fmt.Sprintf("Unsecured sanction is %.0f%% of total (INR %s of INR %s)",
			unsecuredPct, utils.FormatINR(summary.UnsecuredSanctioned), utils.FormatINR(summary.TotalSanctioned))
		if unsecuredPct > unsecuredShareHigh {
			out = append(out, models.KeyFinding{
				Category:  "Portfolio",
				Finding:   finding,
				Inference: "Heavily skewed towards unsecured lending; higher risk in absence of collateral",
				Severity:  models.SeverityModerateRisk,
			})
		} else if unsecuredPct > unsecuredShareElevated {
			out = append(out, models.KeyFinding{
				Category:  "Portfolio",
				Finding:   finding,
				Inference: "Majority unsecured portfolio; monitor for over-leveraging on unsecured products",
				Severity:  models.SeverityConcern,
			})
		}
	}

	// Outstanding as share of sanctioned.
	if summary.TotalSanctioned > 0 {
		outstandingPct := summary.TotalOutstanding / summary.TotalSanctioned * 100
		if outstandingPct > outstandingShareHigh {
			out = append(out, models.KeyFinding{
				Category:  "Portfolio",
				Finding:   fmt.Sprintf("Outstanding balance is %.0f%% of total sanctioned amount", outstandingPct),
				Inference: "Most sanctioned amount still outstanding; limited repayment progress on existing obligations",
				Severity:  models.SeverityConcern,
			})
		}
	}

	// Product diversity.
	if len(vectors) >= productDiversityMin {
		var names []string
		for _, lt := range models.CanonicalLoanTypes {
			if _, ok := vectors[lt]; ok {
				names = append(names, lt.DisplayName())
			}
		}
		out = append(out, models.KeyFinding{
			Category:  "Portfolio",
			Finding:   fmt.Sprintf("Portfolio spans %d loan products (%s)", len(vectors), strings.Join(names, ", ")),
			Inference: "Diversified credit portfolio indicates established borrowing history across products",
			Severity:  models.SeverityNeutral,
		})
	}

	return out
}

// --- Per-loan-type rules ---

func loanTypeFindings(vectors map[models.LoanType]*models.LoanFeatureVector) []models.KeyFinding {
	var out []models.KeyFinding

	for _, lt := range models.CanonicalLoanTypes {
		vec, ok := vectors[lt]
		if !ok {
			continue
		}
		name := lt.DisplayName()
		suffix := timelineSuffix(vec)

		// Credit-card utilization tiers (ratio stored 0-1).
		if lt == models.CreditCard && vec.UtilizationRatio != nil {
			util := *vec.UtilizationRatio * 100
			finding := fmt.Sprintf("Credit card utilization at %.0f%%%s", util, suffix)
			switch {
			case util > utilizationHigh:
				out = append(out, models.KeyFinding{
					Category:  "Utilization",
					Finding:   finding,
					Inference: "Over-utilization of credit card limits signals high credit dependency and potential cash flow stress",
					Severity:  models.SeverityHighRisk,
				})
			case util > utilizationElevated:
				out = append(out, models.KeyFinding{
					Category:  "Utilization",
					Finding:   finding,
					Inference: "Elevated utilization; approaching high-risk threshold for revolving credit",
					Severity:  models.SeverityModerateRisk,
				})
			case util <= utilizationHealthy:
				out = append(out, models.KeyFinding{
					Category:  "Utilization",
					Finding:   finding,
					Inference: "Healthy utilization indicates disciplined credit card usage",
					Severity:  models.SeverityPositive,
				})
			}
		}

		// Per-type delinquency tiers.
		if vec.DelinquencyFlag && vec.MaxDPD != nil && *vec.MaxDPD > 0 {
			finding := fmt.Sprintf("%s: Delinquent with Max DPD of %d days%s", name, *vec.MaxDPD, suffix)
			if *vec.MaxDPD > dpdSevere {
				out = append(out, models.KeyFinding{
					Category:  "Delinquency",
					Finding:   finding,
					Inference: fmt.Sprintf("Severe delinquency on %s account; may indicate deep financial distress", name),
					Severity:  models.SeverityHighRisk,
				})
			} else if *vec.MaxDPD > dpdModerate {
				out = append(out, models.KeyFinding{
					Category:  "Delinquency",
					Finding:   finding,
					Inference: fmt.Sprintf("Significant past-due on %s; repayment discipline is compromised", name),
					Severity:  models.SeverityModerateRisk,
				})
			}
		}

		// Active overdue balance.
		if vec.OverdueAmount > 0 {
			out = append(out, models.KeyFinding{
				Category:  "Outstanding",
				Finding:   fmt.Sprintf("%s: Overdue amount of INR %s%s", name, utils.FormatINR(vec.OverdueAmount), suffix),
				Inference: fmt.Sprintf("Active overdue balance on %s indicates unresolved payment obligation", name),
				Severity:  models.SeverityConcern,
			})
		}

		// Forced events surface as high severity regardless of other signals.
		if len(vec.ForcedEventFlags) > 0 {
			out = append(out, models.KeyFinding{
				Category:  "Adverse Events",
				Finding:   fmt.Sprintf("%s: Forced events detected — %s%s", name, strings.Join(vec.ForcedEventFlags, ", "), suffix),
				Inference: fmt.Sprintf("Adverse credit events on %s are strong negative signals for creditworthiness", name),
				Severity:  models.SeverityHighRisk,
			})
		}
	}

	return out
}

// --- Pre-computed tradeline feature rules ---

func tradelineFindings(
	tf *models.TradelineFeatures,
	vectors map[models.LoanType]*models.LoanFeatureVector,
) []models.KeyFinding {
	var out []models.KeyFinding
	plTL := typeTimeline(vectors, models.PersonalLoan)

	// Loan activity.
	if tf.NewTrades6mPL != nil {
		n := *tf.NewTrades6mPL
		if n >= newPLTradesHigh {
			out = append(out, models.KeyFinding{
				Category:  "Loan Activity",
				Finding:   fmt.Sprintf("%d new personal loan trades opened in last 6 months%s", n, plTL),
				Inference: "Rapid PL acquisition suggests urgent credit need or loan stacking behavior",
				Severity:  models.SeverityHighRisk,
			})
		} else if n >= newPLTradesElevated {
			out = append(out, models.KeyFinding{
				Category:  "Loan Activity",
				Finding:   fmt.Sprintf("%d new personal loan trades opened in last 6 months%s", n, plTL),
				Inference: "Multiple recent PL acquisitions; monitor for emerging over-leverage",
				Severity:  models.SeverityModerateRisk,
			})
		}
	}

	if tf.MonthsSinceLastTradePL != nil && *tf.MonthsSinceLastTradePL < 2 {
		out = append(out, models.KeyFinding{
			Category:  "Loan Activity",
			Finding:   fmt.Sprintf("Last PL trade opened %.1f months ago%s", *tf.MonthsSinceLastTradePL, plTL),
			Inference: "Very recent PL activity indicates active credit seeking",
			Severity:  models.SeverityConcern,
		})
	}

	// DPD windows per product.
	dpdWindows := []struct {
		value *int
		label string
		lt    models.LoanType
	}{
		{tf.MaxDPD6mCC, "Credit Card (6M)", models.CreditCard},
		{tf.MaxDPD6mPL, "Personal Loan (6M)", models.PersonalLoan},
		{tf.MaxDPD9mCC, "Credit Card (9M)", models.CreditCard},
	}
	for _, w := range dpdWindows {
		if w.value == nil || *w.value <= 0 {
			continue
		}
		suffix := typeTimeline(vectors, w.lt)
		finding := fmt.Sprintf("Max DPD for %s: %d days%s", w.label, *w.value, suffix)
		switch {
		case *w.value > dpdSevere:
			out = append(out, models.KeyFinding{
				Category:  "DPD & Delinquency",
				Finding:   finding,
				Inference: fmt.Sprintf("Severe delinquency on %s — strong negative indicator", w.label),
				Severity:  models.SeverityHighRisk,
			})
		case *w.value > dpdModerate:
			out = append(out, models.KeyFinding{
				Category:  "DPD & Delinquency",
				Finding:   finding,
				Inference: fmt.Sprintf("Significant past-due on %s; repayment under stress", w.label),
				Severity:  models.SeverityModerateRisk,
			})
		default:
			out = append(out, models.KeyFinding{
				Category:  "DPD & Delinquency",
				Finding:   finding,
				Inference: fmt.Sprintf("Minor past-due on %s; may be a temporary delay", w.label),
				Severity:  models.SeverityConcern,
			})
		}
	}

	// Clean recent DPD record requires every window to be present and zero.
	if allZero(tf.MaxDPD6mCC, tf.MaxDPD6mPL, tf.MaxDPD9mCC) {
		out = append(out, models.KeyFinding{
			Category:  "DPD & Delinquency",
			Finding:   "Zero DPD across all products in recent 6-9 month windows",
			Inference: "Clean recent payment record demonstrates consistent repayment discipline",
			Severity:  models.SeverityPositive,
		})
	}

	// Payment behavior.
	if tf.PctMissedPayments18m != nil {
		missed := *tf.PctMissedPayments18m
		switch {
		case missed > missedPaymentsHigh:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   fmt.Sprintf("%.1f%% missed payments in last 18 months", missed),
				Inference: "Frequent missed payments indicate chronic repayment stress",
				Severity:  models.SeverityHighRisk,
			})
		case missed > 0:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   fmt.Sprintf("%.1f%% missed payments in last 18 months", missed),
				Inference: "Some missed payments detected; not habitual but warrants attention",
				Severity:  models.SeverityConcern,
			})
		case anyPositive(tf.MaxDPD6mCC, tf.MaxDPD6mPL, tf.MaxDPD9mCC):
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   "No formal missed payments in last 18 months, but DPD delays detected on some products",
				Inference: "Payments were eventually made but past due date; payment timing discipline is not fully clean",
				Severity:  models.SeverityConcern,
			})
		default:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   "No missed payments in last 18 months",
				Inference: "Perfect payment track record over 18 months is a strong positive",
				Severity:  models.SeverityPositive,
			})
		}
	}

	if tf.RatioGoodClosedPL != nil {
		ratio := *tf.RatioGoodClosedPL
		finding := fmt.Sprintf("Good closure ratio for PL loans: %.0f%%", ratio*100)
		switch {
		case ratio >= goodClosureStrong:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   finding,
				Inference: "Strong track record of closing personal loans in good standing",
				Severity:  models.SeverityPositive,
			})
		case ratio < goodClosurePoor:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   finding,
				Inference: "Poor PL closure history — majority of closed PLs had issues",
				Severity:  models.SeverityHighRisk,
			})
		case ratio < goodClosureWeak:
			out = append(out, models.KeyFinding{
				Category:  "Payment Behavior",
				Finding:   finding,
				Inference: "Below-average PL closure quality; some loans closed with problems",
				Severity:  models.SeverityConcern,
			})
		}
	}

	// Utilization. CC utilization is covered by the per-type pass; here only
	// the PL balance progression.
	if tf.PLBalanceRemainingPct != nil {
		bal := *tf.PLBalanceRemainingPct
		if bal > plBalanceHigh {
			out = append(out, models.KeyFinding{
				Category:  "Utilization",
				Finding:   fmt.Sprintf("PL balance remaining: %.1f%%", bal),
				Inference: "Most PL sanctioned amount still outstanding; limited principal repayment progress",
				Severity:  models.SeverityHighRisk,
			})
		} else if bal <= plBalanceLow {
			out = append(out, models.KeyFinding{
				Category:  "Utilization",
				Finding:   fmt.Sprintf("PL balance remaining: %.1f%%", bal),
				Inference: "Significant PL principal already repaid; good repayment progress",
				Severity:  models.SeverityPositive,
			})
		}
	}

	// Enquiry behavior.
	if tf.UnsecuredEnquiries12m != nil {
		n := *tf.UnsecuredEnquiries12m
		finding := fmt.Sprintf("%d unsecured enquiries in last 12 months", n)
		switch {
		case n > enquiriesVeryHigh:
			out = append(out, models.KeyFinding{
				Category:  "Enquiry Behavior",
				Finding:   finding,
				Inference: "Very high enquiry pressure suggests desperate credit seeking or multiple rejections",
				Severity:  models.SeverityHighRisk,
			})
		case n > enquiriesHigh:
			out = append(out, models.KeyFinding{
				Category:  "Enquiry Behavior",
				Finding:   finding,
				Inference: "Elevated enquiry activity; may indicate difficulty securing credit",
				Severity:  models.SeverityModerateRisk,
			})
		case n <= enquiriesLow:
			out = append(out, models.KeyFinding{
				Category:  "Enquiry Behavior",
				Finding:   finding,
				Inference: "Minimal enquiry activity indicates stable credit position",
				Severity:  models.SeverityPositive,
			})
		}
	}

	if tf.TradeToEnquiryRatioUns24m != nil {
		ratio := *tf.TradeToEnquiryRatioUns24m
		finding := fmt.Sprintf("Trade-to-enquiry ratio (unsecured, 24M): %.1f%%", ratio)
		if ratio < conversionLow {
			out = append(out, models.KeyFinding{
				Category:  "Enquiry Behavior",
				Finding:   finding,
				Inference: "Low conversion from enquiries to actual loans suggests possible rejections by lenders",
				Severity:  models.SeverityConcern,
			})
		} else if ratio > conversionHigh {
			out = append(out, models.KeyFinding{
				Category:  "Enquiry Behavior",
				Finding:   finding,
				Inference: "High conversion rate indicates strong acceptance by lenders",
				Severity:  models.SeverityPositive,
			})
		}
	}

	// Loan acquisition velocity.
	if tf.InterpurchaseTime12mPLBL != nil {
		ipt := *tf.InterpurchaseTime12mPLBL
		finding := fmt.Sprintf("Avg time between PL/BL acquisitions (12M): %.1f months", ipt)
		switch {
		case ipt < interpurchaseRapid:
			out = append(out, models.KeyFinding{
				Category:  "Loan Velocity",
				Finding:   finding,
				Inference: "Rapid loan stacking — acquiring unsecured loans faster than monthly; high risk of over-leverage",
				Severity:  models.SeverityHighRisk,
			})
		case ipt < interpurchaseFrequent:
			out = append(out, models.KeyFinding{
				Category:  "Loan Velocity",
				Finding:   finding,
				Inference: "Frequent loan acquisitions; borrower is actively accumulating unsecured debt",
				Severity:  models.SeverityConcern,
			})
		case ipt >= interpurchaseMeasured:
			out = append(out, models.KeyFinding{
				Category:  "Loan Velocity",
				Finding:   finding,
				Inference: "Measured pace of loan acquisitions indicates no urgency or stacking behavior",
				Severity:  models.SeverityPositive,
			})
		}
	}

	return out
}

// --- Composite (multi-feature) rules ---

func compositeFindings(
	summary models.ExecutiveSummary,
	tf *models.TradelineFeatures,
	vectors map[models.LoanType]*models.LoanFeatureVector,
) []models.KeyFinding {
	var out []models.KeyFinding
	plTL := typeTimeline(vectors, models.PersonalLoan)
	ccTL := typeTimeline(vectors, models.CreditCard)

	// Credit hungry combined with active stacking.
	if tf.UnsecuredEnquiries12m != nil && *tf.UnsecuredEnquiries12m > enquiriesHigh &&
		tf.NewTrades6mPL != nil && *tf.NewTrades6mPL >= newPLTradesElevated {
		out = append(out, models.KeyFinding{
			Category: "Composite Signal",
			Finding: fmt.Sprintf("High enquiry volume (%d in 12M) combined with %d new PL trades in 6M%s",
				*tf.UnsecuredEnquiries12m, *tf.NewTrades6mPL, plTL),
			Inference: "Credit hungry behavior with active loan stacking — elevated risk of debt spiral",
			Severity:  models.SeverityHighRisk,
		})
	}

	// Rapid stacking with low interpurchase time.
	if tf.InterpurchaseTime12mPLBL != nil && *tf.InterpurchaseTime12mPLBL < interpurchaseFrequent &&
		tf.NewTrades6mPL != nil && *tf.NewTrades6mPL >= newPLTradesElevated {
		out = append(out, models.KeyFinding{
			Category: "Composite Signal",
			Finding: fmt.Sprintf("Avg %.1f months between PL/BL with %d new trades in 6M%s",
				*tf.InterpurchaseTime12mPLBL, *tf.NewTrades6mPL, plTL),
			Inference: "Rapid PL stacking pattern — borrower is accumulating unsecured debt at an accelerating pace",
			Severity:  models.SeverityHighRisk,
		})
	}

	// Elevated leverage across both revolving and term products.
	if tf.CCBalanceUtilizationPct != nil && *tf.CCBalanceUtilizationPct > 50 &&
		tf.PLBalanceRemainingPct != nil && *tf.PLBalanceRemainingPct > 50 {
		out = append(out, models.KeyFinding{
			Category: "Composite Signal",
			Finding: fmt.Sprintf("CC utilization at %.1f%%%s and PL balance remaining at %.1f%%%s",
				*tf.CCBalanceUtilizationPct, ccTL, *tf.PLBalanceRemainingPct, plTL),
			Inference: "Elevated leverage across both revolving and term products; limited debt servicing headroom",
			Severity:  models.SeverityModerateRisk,
		})
	}

	// High enquiries with low conversion.
	if tf.UnsecuredEnquiries12m != nil && *tf.UnsecuredEnquiries12m > enquiriesHigh &&
		tf.TradeToEnquiryRatioUns24m != nil && *tf.TradeToEnquiryRatioUns24m < 30 {
		out = append(out, models.KeyFinding{
			Category: "Composite Signal",
			Finding: fmt.Sprintf("High enquiries (%d) but only %.1f%% trade-to-enquiry conversion",
				*tf.UnsecuredEnquiries12m, *tf.TradeToEnquiryRatioUns24m),
			Inference: "Low conversion rate despite high enquiry volume suggests multiple lender rejections",
			Severity:  models.SeverityModerateRisk,
		})
	}

	dpdClean := allZero(tf.MaxDPD6mCC, tf.MaxDPD6mPL, tf.MaxDPD9mCC)
	missedClean := tf.PctMissedPayments18m != nil && *tf.PctMissedPayments18m == 0

	// Exemplary profile.
	if dpdClean && missedClean && tf.RatioGoodClosedPL != nil && *tf.RatioGoodClosedPL >= goodClosureStrong {
		out = append(out, models.KeyFinding{
			Category: "Composite Signal",
			Finding: fmt.Sprintf("Zero DPD, no missed payments, and %.0f%% good PL closure ratio",
				*tf.RatioGoodClosedPL*100),
			Inference: "Exemplary repayment profile — strong candidate from a credit discipline standpoint",
			Severity:  models.SeverityPositive,
		})
	}

	// No formal misses but DPD present somewhere.
	portfolioDPD := summary.HasDelinquency && summary.MaxDPD != nil && *summary.MaxDPD > 0
	if missedClean && (!dpdClean || portfolioDPD) {
		var details []string
		if tf.MaxDPD6mCC != nil && *tf.MaxDPD6mCC > 0 {
			details = append(details, fmt.Sprintf("CC 6M: %d days", *tf.MaxDPD6mCC))
		}
		if tf.MaxDPD6mPL != nil && *tf.MaxDPD6mPL > 0 {
			details = append(details, fmt.Sprintf("PL 6M: %d days", *tf.MaxDPD6mPL))
		}
		if tf.MaxDPD9mCC != nil && *tf.MaxDPD9mCC > 0 {
			details = append(details, fmt.Sprintf("CC 9M: %d days", *tf.MaxDPD9mCC))
		}
		if portfolioDPD && len(details) == 0 {
			details = append(details, fmt.Sprintf("Portfolio Max DPD: %d days", *summary.MaxDPD))
		}
		if len(details) > 0 {
			out = append(out, models.KeyFinding{
				Category:  "Composite Signal",
				Finding:   fmt.Sprintf("No formal missed payments but DPD detected (%s)", strings.Join(details, ", ")),
				Inference: "Payments were made but with delays past due date; payment discipline is inconsistent despite no formal defaults",
				Severity:  models.SeverityConcern,
			})
		}
	}

	return out
}

// allZero reports whether every value is present and exactly zero. A nil
// (unavailable) value makes the answer false — it is never read as zero.
func allZero(vals ...*int) bool {
	for _, v := range vals {
		if v == nil || *v != 0 {
			return false
		}
	}
	return true
}

// anyPositive reports whether any present value is greater than zero.
func anyPositive(vals ...*int) bool {
	for _, v := range vals {
		if v != nil && *v > 0 {
			return true
		}
	}
	return false
}
