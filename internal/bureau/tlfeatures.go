package bureau

import (
	"github.com/seenimoa/bureaulens/internal/dataset"
	"github.com/seenimoa/bureaulens/pkg/models"
)

// Feature dataset columns. Like the tradeline source, columns are located
// by name; the customer key column is required at load time, the feature
// columns degrade to nil when absent.
const colFeatureCustomerID = "crn"

// TradelineFeatures looks up the customer's pre-computed feature row and
// maps it into a TradelineFeatures record. NULL and empty cells become nil
// pointers ("unavailable"), never zero. A customer with no feature row
// returns (nil, nil): the findings engine simply skips feature-based rules.
func (d *Data) TradelineFeatures(customerID int64) (*models.TradelineFeatures, error) {
	if customerID <= 0 {
		return nil, ErrBadCustomerID
	}

	t, err := d.features.Load()
	if err != nil {
		return nil, err
	}
	if err := t.Require(colFeatureCustomerID); err != nil {
		return nil, err
	}

	row := -1
	for i := 0; i < t.Len(); i++ {
		id := dataset.OptionalInt(t.Cell(i, colFeatureCustomerID))
		if id != nil && int64(*id) == customerID {
			row = i
			break
		}
	}
	if row < 0 {
		return nil, nil
	}

	f := &models.TradelineFeatures{
		MonthsSinceLastTradePL:  dataset.OptionalFloat(t.Cell(row, "monsnclasttrop_pl_onc")),
		MonthsSinceLastTradeUns: dataset.OptionalFloat(t.Cell(row, "monsnclasttrop_uns_onc")),
		NewTrades6mPL:           dataset.OptionalInt(t.Cell(row, "no_tr_open_l6m_pl_onc")),
		TotalTrades:             dataset.OptionalInt(t.Cell(row, "no_trades_all_onc")),

		MaxDPD6mCC:           dataset.OptionalInt(t.Cell(row, "max_dpd_l6m_cc_onc")),
		MaxDPD6mPL:           dataset.OptionalInt(t.Cell(row, "max_dpd_l6m_pl_onc")),
		MaxDPD9mCC:           dataset.OptionalInt(t.Cell(row, "max_dpd_l9m_cc_onc")),
		MonthsSinceLast0pUns: dataset.OptionalFloat(t.Cell(row, "mon_sin_last_0p_uns_op")),
		MonthsSinceLast0pPL:  dataset.OptionalFloat(t.Cell(row, "monsinlast_0p_pl_onc")),

		Pct0Plus24mAll:       dataset.OptionalFloat(t.Cell(row, "pct_0p_l24m_all_onc")),
		Pct0Plus24mPL:        dataset.OptionalFloat(t.Cell(row, "pct_0p_l24m_pl_onc")),
		PctMissedPayments18m: dataset.OptionalFloat(t.Cell(row, "pct_missed_pymt_last18m_all")),
		PctTrades0Plus12m:    dataset.OptionalFloat(t.Cell(row, "pct_tr_0p_l12m_all_onc")),
		RatioGoodClosedPL:    dataset.OptionalFloat(t.Cell(row, "ratio_good_closed_loans_pl")),

		CCBalanceUtilizationPct: dataset.OptionalFloat(t.Cell(row, "pct_bal_cc_lv")),
		PLBalanceRemainingPct:   dataset.OptionalFloat(t.Cell(row, "pct_bal_pl_lv")),

		UnsecuredEnquiries12m:     dataset.OptionalInt(t.Cell(row, "uns_enq_l12m")),
		TradeToEnquiryRatioUns24m: dataset.OptionalFloat(t.Cell(row, "tr_to_enq_ratio_uns_l24m")),

		InterpurchaseTime12mPLBL:  dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l12m_plbl")),
		InterpurchaseTime6mPLBL:   dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l6m_plbl")),
		InterpurchaseTime24mAll:   dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l24m_all")),
		InterpurchaseTime9mHLLAP:  dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l9m_hl_lap")),
		InterpurchaseTime24mHLLAP: dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l24m_hl_lap")),
		InterpurchaseTime24mTWL:   dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l24m_twl")),
		InterpurchaseTime12mCL:    dataset.OptionalFloat(t.Cell(row, "interpurchase_time_l12m_cl")),
	}

	reconcileFeatures(f)
	return f, nil
}

// reconcileFeatures applies cross-field consistency fixes to upstream data.
// These repair known internal inconsistencies of the feature file; they
// never invent a value where every source field is unavailable.
func reconcileFeatures(f *models.TradelineFeatures) {
	// PL is a subset of unsecured: when the unsecured 0+ recency is missing
	// but PL has one, the PL value bounds the unsecured one.
	if f.MonthsSinceLast0pUns == nil && f.MonthsSinceLast0pPL != nil {
		v := *f.MonthsSinceLast0pPL
		f.MonthsSinceLast0pUns = &v
	}

	// The 9-month CC window contains the 6-month window, so its max DPD can
	// never be smaller.
	if f.MaxDPD6mCC != nil {
		if f.MaxDPD9mCC == nil || *f.MaxDPD9mCC < *f.MaxDPD6mCC {
			v := *f.MaxDPD6mCC
			f.MaxDPD9mCC = &v
		}
	}

	// PL trades are a subset of all trades: the PL 0+ share cannot exceed
	// the overall share.
	if f.Pct0Plus24mAll != nil && f.Pct0Plus24mPL != nil && *f.Pct0Plus24mPL > *f.Pct0Plus24mAll {
		v := *f.Pct0Plus24mPL
		f.Pct0Plus24mAll = &v
	}
}
