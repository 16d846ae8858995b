// Package taxonomy defines the loan-type vocabulary used across all bureau
// logic: normalization of raw bureau loan-type strings into canonical
// models.LoanType values, the secured/unsecured classification of raw
// strings, and the on-us/off-us sector split.
//
// All three classifications are static lookup tables, so extending the
// vocabulary is a data change, not a code change.
package taxonomy

import (
	"strings"

	"github.com/seenimoa/bureaulens/pkg/models"
)

// Sector classifies which side of the book a tradeline sits on.
type Sector string

const (
	OnUs  Sector = "on_us"  // reported by this organization
	OffUs Sector = "off_us" // reported by an external institution
)

// normalizationMap maps every known raw bureau loan-type string to its
// canonical loan type. Unmapped strings fall through to OtherLoan.
var normalizationMap = map[string]models.LoanType{
	// Personal loans
	"Personal Loan":                 models.PersonalLoan,
	"Short Term Personal Loan":      models.PersonalLoan,
	"Microfinance - Personal Loan":  models.PersonalLoan,
	"P2P Personal Loan":             models.PersonalLoan,
	"Loan to Professional":          models.PersonalLoan,

	// Credit cards
	"Credit Card":           models.CreditCard,
	"Secured Credit Card":   models.CreditCard,
	"Corporate Credit Card": models.CreditCard,
	"Fleet Card":            models.CreditCard,
	"Kisan Credit Card":     models.CreditCard,
	"Loan on Credit Card":   models.CreditCard,

	// Home / housing loans
	"Housing Loan":                 models.HomeLoan,
	"Home Loan":                    models.HomeLoan,
	"Microfinance - Housing Loan":  models.HomeLoan,
	"Pradhan Mantri Awas Yojana - Credit Link Subsidy Scheme MAY CLSS": models.HomeLoan,

	// Auto / vehicle loans
	"Auto Loan (Personal)": models.AutoLoan,
	"Auto Loan":            models.AutoLoan,
	"Used Car Loan":        models.AutoLoan,

	// Commercial vehicles
	"Commercial Vehicle Loan":     models.CommercialVehicle,
	"Construction Equipment Loan": models.CommercialVehicle,
	"Tractor Loan":                models.CommercialVehicle,
	"P2P Auto Loan":               models.CommercialVehicle,

	// Business loans
	"Business Loan - General":                                                 models.BusinessLoan,
	"Business Loan - Secured":                                                 models.BusinessLoan,
	"Business Loan - Unsecured":                                               models.BusinessLoan,
	"Business Loan - Priority Sector - Agriculture":                           models.BusinessLoan,
	"Business Loan - Priority Sector - Others":                                models.BusinessLoan,
	"Business Loan - Priority Sector - Small Business":                        models.BusinessLoan,
	"Business Loan Against Bank Deposits":                                     models.BusinessLoan,
	"Business Non-Funded Credit Facility - General":                           models.BusinessLoan,
	"Business Non-Funded Credit Facility - Priority Sector-Others":            models.BusinessLoan,
	"Business Non-Funded Credit Facility - Priority Sector - Agriculture":     models.BusinessLoan,
	"Business Non-Funded Credit Facility - Priority Sector - Small Business":  models.BusinessLoan,

	// Loans against property / securities / deposits
	"Loan_against_securities":       models.LoanAgainstSecurities,
	"Loan Against Shares/Securities": models.LoanAgainstSecurities,
	"Loan Against Bank Deposits":    models.LoanAgainstDeposits,
	"Property Loan":                 models.LoanAgainstProperty,

	// Gold loans
	"Gold Loan":                   models.GoldLoan,
	"Priority Sector - Gold Loan": models.GoldLoan,

	// Two-wheelers
	"Two-wheeler Loan": models.TwoWheelerLoan,

	// Consumer durables
	"Consumer Loan": models.ConsumerDurable,

	// Education and everything else
	"Education Loan":                             models.OtherLoan,
	"P2P Education Loan":                         models.OtherLoan,
	"Seller Financing":                           models.OtherLoan,
	"Temporary Overdraft":                        models.OtherLoan,
	"Overdraft":                                  models.OtherLoan,
	"Prime Minister Jaan Dhan Yojana - Overdraft": models.OtherLoan,
	"Leasing":                                    models.OtherLoan,
	"Microfinance - Other":                       models.OtherLoan,
	"Non-Funded Credit Facility":                 models.OtherLoan,
	"Microfinance - Business Loan":               models.OtherLoan,
	"Mudra Loans - Shishu / Kishor / Tarun":      models.OtherLoan,
	"GECL Loan Secured":                          models.OtherLoan,
	"GECL Loan Unsecured":                        models.OtherLoan,
	"Other":                                      models.OtherLoan,
}

// securedRawTypes holds the raw loan-type strings that are collateral-backed.
// Membership is checked at raw-string granularity because some canonical
// types (business loans, credit cards) contain both secured and unsecured
// variants; collapsing to canonical granularity would be lossy.
var securedRawTypes = map[string]struct{}{
	"Gold Loan":                           {},
	"Priority Sector - Gold Loan":         {},
	"Two-wheeler Loan":                    {},
	"Tractor Loan":                        {},
	"Loan Against Bank Deposits":          {},
	"Loan_against_securities":             {},
	"Loan Against Shares/Securities":      {},
	"Secured Credit Card":                 {},
	"Pradhan Mantri Awas Yojana - Credit Link Subsidy Scheme MAY CLSS": {},
	"GECL Loan Secured":                   {},
	"Microfinance - Housing Loan":         {},
	"Leasing":                             {},
	"P2P Auto Loan":                       {},
	"Housing Loan":                        {},
	"Home Loan":                           {},
	"Property Loan":                       {},
	"Auto Loan (Personal)":                {},
	"Auto Loan":                           {},
	"Used Car Loan":                       {},
	"Commercial Vehicle Loan":             {},
	"Construction Equipment Loan":         {},
	"Business Loan - Secured":             {},
	"Business Loan Against Bank Deposits": {},
}

// onUsSectors holds the sector names that count as on-us tradelines.
// Matching is case-sensitive and exact after whitespace trimming.
var onUsSectors = map[string]struct{}{
	"KOTAK BANK":  {},
	"KOTAK PRIME": {},
}

// Normalize maps a raw bureau loan-type string to its canonical loan type.
// The mapping is total: unknown, empty, or whitespace-only input normalizes
// to OtherLoan rather than failing.
func Normalize(raw string) models.LoanType {
	if lt, ok := normalizationMap[strings.TrimSpace(raw)]; ok {
		return lt
	}
	return models.OtherLoan
}

// IsSecured reports whether a raw loan-type string is collateral-backed.
// Unknown raw strings are treated as unsecured. This deliberately fails open
// toward "unsecured" so that unmapped products inflate, never understate,
// unsecured exposure totals.
func IsSecured(raw string) bool {
	_, ok := securedRawTypes[strings.TrimSpace(raw)]
	return ok
}

// ClassifySector splits a tradeline's reporting sector into on-us/off-us.
// Unknown sectors classify as off-us; like the unsecured fallback, this is
// the conservative default pending domain-owner confirmation.
func ClassifySector(sector string) Sector {
	if _, ok := onUsSectors[strings.TrimSpace(sector)]; ok {
		return OnUs
	}
	return OffUs
}
