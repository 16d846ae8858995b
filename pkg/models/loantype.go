package models

// LoanType is a canonical loan product category. Every raw loan-type string
// reported by the bureau is normalized into exactly one of these.
type LoanType string

const (
	PersonalLoan          LoanType = "personal_loan"
	CreditCard            LoanType = "credit_card"
	HomeLoan              LoanType = "home_loan"
	AutoLoan              LoanType = "auto_loan"
	BusinessLoan          LoanType = "business_loan"
	LoanAgainstProperty   LoanType = "lap"
	LoanAgainstSecurities LoanType = "las"
	LoanAgainstDeposits   LoanType = "lad"
	GoldLoan              LoanType = "gold_loan"
	TwoWheelerLoan        LoanType = "two_wheeler_loan"
	ConsumerDurable       LoanType = "consumer_durable"
	CommercialVehicle     LoanType = "commercial_vehicle_loan"
	OtherLoan             LoanType = "other"
)

// CanonicalLoanTypes lists every loan type in display order. Iterating this
// slice instead of a map keeps report and findings output reproducible.
var CanonicalLoanTypes = []LoanType{
	PersonalLoan,
	CreditCard,
	HomeLoan,
	AutoLoan,
	BusinessLoan,
	LoanAgainstProperty,
	LoanAgainstSecurities,
	LoanAgainstDeposits,
	GoldLoan,
	TwoWheelerLoan,
	ConsumerDurable,
	CommercialVehicle,
	OtherLoan,
}

// loanTypeDisplayNames maps canonical values to human-readable report labels.
var loanTypeDisplayNames = map[LoanType]string{
	PersonalLoan:          "Personal Loan",
	CreditCard:            "Credit Card",
	HomeLoan:              "Home Loan",
	AutoLoan:              "Auto Loan",
	BusinessLoan:          "Business Loan",
	LoanAgainstProperty:   "LAP",
	LoanAgainstSecurities: "LAS",
	LoanAgainstDeposits:   "LAD",
	GoldLoan:              "Gold Loan",
	TwoWheelerLoan:        "Two Wheeler Loan",
	ConsumerDurable:       "Consumer Durable",
	CommercialVehicle:     "Commercial Vehicle Loan",
	OtherLoan:             "Other",
}

// loanTypeShortCodes maps canonical values to compact series labels.
var loanTypeShortCodes = map[LoanType]string{
	PersonalLoan:          "PL",
	CreditCard:            "CC",
	HomeLoan:              "HL",
	AutoLoan:              "AL",
	BusinessLoan:          "BL",
	LoanAgainstProperty:   "LAP",
	LoanAgainstSecurities: "LAS",
	LoanAgainstDeposits:   "LAD",
	GoldLoan:              "GL",
	TwoWheelerLoan:        "TWL",
	ConsumerDurable:       "CD",
	CommercialVehicle:     "CMVL",
	OtherLoan:             "OTHER",
}

// DisplayName returns the human-readable name for a loan type,
// e.g. "Personal Loan". Unknown values are returned as-is.
func (lt LoanType) DisplayName() string {
	if name, ok := loanTypeDisplayNames[lt]; ok {
		return name
	}
	return string(lt)
}

// ShortCode returns the compact label used in time-series keys, e.g. "PL".
func (lt LoanType) ShortCode() string {
	if code, ok := loanTypeShortCodes[lt]; ok {
		return code
	}
	return string(lt)
}

func (lt LoanType) String() string {
	return string(lt)
}
