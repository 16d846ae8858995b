package models

import "time"

// RawTradeline is one credit account record reported by the bureau for a
// customer, parsed from the tab-delimited tradeline dataset. Rows are
// immutable once loaded; missing or unparsable cells are carried as zero
// values or nil pointers, never dropped.
type RawTradeline struct {
	CustomerID  int64  `json:"customer_id"`
	LoanType    string `json:"loan_type"` // raw bureau string, pre-normalization
	Status      string `json:"status"`    // "Live", "Closed", "Written-Off", ...
	Sector      string `json:"sector"`    // reporting institution sector

	SanctionAmount     float64 `json:"sanction_amount"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	OverdueAmount      float64 `json:"overdue_amount"`
	CreditLimit        float64 `json:"credit_limit"` // revolving products only

	VintageMonths float64 `json:"vintage_months"`
	DPDString     string  `json:"dpd_string"` // fixed-width per-period delinquency codes
	MaxDPD        int     `json:"max_dpd"`    // pre-computed per tradeline; 0 when absent
	MonthsSinceMaxDPD *int `json:"months_since_max_dpd,omitempty"`

	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	DateOpened      *time.Time `json:"date_opened,omitempty"`
	DateClosed      *time.Time `json:"date_closed,omitempty"`
}

// Closed reports whether the tradeline is explicitly closed. Anything not
// literally "Closed" (including written-off accounts) counts as live so that
// live + closed always equals the total.
func (t RawTradeline) Closed() bool {
	return t.Status == "Closed"
}

// Live reports whether the tradeline counts toward live tradelines.
func (t RawTradeline) Live() bool {
	return !t.Closed()
}

// LoanFeatureVector holds the computed bureau features for one canonical
// loan type across all of a customer's tradelines of that type. Built once
// per extraction and read-only thereafter.
type LoanFeatureVector struct {
	LoanType LoanType `json:"loan_type"`
	Secured  bool     `json:"secured"` // true iff ANY tradeline's raw type is secured

	LoanCount   int `json:"loan_count"`
	LiveCount   int `json:"live_count"`
	ClosedCount int `json:"closed_count"`

	TotalSanctioned  float64 `json:"total_sanctioned_amount"`
	TotalOutstanding float64 `json:"total_outstanding_amount"`
	OverdueAmount    float64 `json:"overdue_amount"`

	AvgVintageMonths       float64 `json:"avg_vintage_months"`
	MonthsSinceLastPayment *int    `json:"months_since_last_payment,omitempty"`

	DelinquencyFlag bool `json:"delinquency_flag"`
	MaxDPD          *int `json:"max_dpd,omitempty"`
	MaxDPDMonthsAgo *int `json:"max_dpd_months_ago,omitempty"`

	// UtilizationRatio is outstanding/limit for revolving products, nil for
	// everything else. Deliberately unclamped: >1.0 means over-limit.
	UtilizationRatio *float64 `json:"utilization_ratio,omitempty"`

	EarliestOpened string `json:"earliest_opened,omitempty"` // "Jan 2006" labels
	LatestOpened   string `json:"latest_opened,omitempty"`
	LatestClosed   string `json:"latest_closed,omitempty"`

	ForcedEventFlags []string `json:"forced_event_flags,omitempty"` // sorted, deduplicated
	OnUsCount        int      `json:"on_us_count"`
	OffUsCount       int      `json:"off_us_count"`
}

// ExecutiveSummary is the customer-level reduction of all per-loan-type
// feature vectors. An all-zero summary with HasDelinquency false is the
// canonical "no bureau footprint" state, not an error.
type ExecutiveSummary struct {
	TotalTradelines  int `json:"total_tradelines"`
	LiveTradelines   int `json:"live_tradelines"`
	ClosedTradelines int `json:"closed_tradelines"`

	TotalSanctioned      float64 `json:"total_sanctioned"`
	TotalOutstanding     float64 `json:"total_outstanding"`
	TotalOverdue         float64 `json:"total_overdue"`
	UnsecuredSanctioned  float64 `json:"unsecured_sanctioned"`
	UnsecuredOutstanding float64 `json:"unsecured_outstanding"`

	HasDelinquency  bool   `json:"has_delinquency"`
	MaxDPD          *int   `json:"max_dpd,omitempty"`
	MaxDPDMonthsAgo *int   `json:"max_dpd_months_ago,omitempty"`
	MaxDPDLoanType  string `json:"max_dpd_loan_type,omitempty"` // display name
}
