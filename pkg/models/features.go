package models

// TradelineFeatures holds the customer-level behavioral features computed
// upstream and loaded from the pre-computed feature dataset. Nothing here is
// derived by this system. A nil pointer means the feature is unavailable for
// the customer, which is distinct from zero and must never be coerced to it.
type TradelineFeatures struct {
	// Loan activity
	MonthsSinceLastTradePL  *float64 `json:"months_since_last_trade_pl,omitempty"`
	MonthsSinceLastTradeUns *float64 `json:"months_since_last_trade_uns,omitempty"`
	NewTrades6mPL           *int     `json:"new_trades_6m_pl,omitempty"`
	TotalTrades             *int     `json:"total_trades,omitempty"`

	// DPD and delinquency
	MaxDPD6mCC          *int     `json:"max_dpd_6m_cc,omitempty"`
	MaxDPD6mPL          *int     `json:"max_dpd_6m_pl,omitempty"`
	MaxDPD9mCC          *int     `json:"max_dpd_9m_cc,omitempty"`
	MonthsSinceLast0pUns *float64 `json:"months_since_last_0p_uns,omitempty"`
	MonthsSinceLast0pPL  *float64 `json:"months_since_last_0p_pl,omitempty"`

	// Payment behavior
	Pct0Plus24mAll       *float64 `json:"pct_0plus_24m_all,omitempty"`
	Pct0Plus24mPL        *float64 `json:"pct_0plus_24m_pl,omitempty"`
	PctMissedPayments18m *float64 `json:"pct_missed_payments_18m,omitempty"`
	PctTrades0Plus12m    *float64 `json:"pct_trades_0plus_12m,omitempty"`
	RatioGoodClosedPL    *float64 `json:"ratio_good_closed_pl,omitempty"`

	// Utilization
	CCBalanceUtilizationPct *float64 `json:"cc_balance_utilization_pct,omitempty"`
	PLBalanceRemainingPct   *float64 `json:"pl_balance_remaining_pct,omitempty"`

	// Enquiry behavior
	UnsecuredEnquiries12m      *int     `json:"unsecured_enquiries_12m,omitempty"`
	TradeToEnquiryRatioUns24m  *float64 `json:"trade_to_enquiry_ratio_uns_24m,omitempty"`

	// Loan acquisition velocity
	InterpurchaseTime12mPLBL  *float64 `json:"interpurchase_time_12m_plbl,omitempty"`
	InterpurchaseTime6mPLBL   *float64 `json:"interpurchase_time_6m_plbl,omitempty"`
	InterpurchaseTime24mAll   *float64 `json:"interpurchase_time_24m_all,omitempty"`
	InterpurchaseTime9mHLLAP  *float64 `json:"interpurchase_time_9m_hl_lap,omitempty"`
	InterpurchaseTime24mHLLAP *float64 `json:"interpurchase_time_24m_hl_lap,omitempty"`
	InterpurchaseTime24mTWL   *float64 `json:"interpurchase_time_24m_twl,omitempty"`
	InterpurchaseTime12mCL    *float64 `json:"interpurchase_time_12m_cl,omitempty"`
}
