package taxonomy

import (
	"testing"

	"github.com/seenimoa/bureaulens/pkg/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want models.LoanType
	}{
		{"Personal Loan", models.PersonalLoan},
		{"Short Term Personal Loan", models.PersonalLoan},
		{"Credit Card", models.CreditCard},
		{"Kisan Credit Card", models.CreditCard},
		{"Housing Loan", models.HomeLoan},
		{"Used Car Loan", models.AutoLoan},
		{"Tractor Loan", models.CommercialVehicle},
		{"Business Loan - Unsecured", models.BusinessLoan},
		{"Loan Against Bank Deposits", models.LoanAgainstDeposits},
		{"Loan_against_securities", models.LoanAgainstSecurities},
		{"Property Loan", models.LoanAgainstProperty},
		{"Gold Loan", models.GoldLoan},
		{"Two-wheeler Loan", models.TwoWheelerLoan},
		{"Consumer Loan", models.ConsumerDurable},
		{"Education Loan", models.OtherLoan},
		{"Overdraft", models.OtherLoan},

		// Whitespace is trimmed before lookup.
		{"  Gold Loan  ", models.GoldLoan},

		// Unknown, empty, and whitespace-only input all fall through.
		{"Quantum Flux Loan", models.OtherLoan},
		{"", models.OtherLoan},
		{"   ", models.OtherLoan},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestNormalizationMapTargets verifies every mapped target is a canonical
// loan type, so no raw string can normalize outside the fixed vocabulary.
func TestNormalizationMapTargets(t *testing.T) {
	canonical := make(map[models.LoanType]struct{}, len(models.CanonicalLoanTypes))
	for _, lt := range models.CanonicalLoanTypes {
		canonical[lt] = struct{}{}
	}

	for raw, lt := range normalizationMap {
		if _, ok := canonical[lt]; !ok {
			t.Errorf("normalizationMap[%q] = %q is not a canonical loan type", raw, lt)
		}
	}
}

// TestSecuredRawTypesAreMapped verifies the secured set only names raw
// strings the normalization map knows about; a typo in either table would
// silently declassify a secured product.
func TestSecuredRawTypesAreMapped(t *testing.T) {
	for raw := range securedRawTypes {
		if _, ok := normalizationMap[raw]; !ok {
			t.Errorf("secured raw type %q is absent from the normalization map", raw)
		}
	}
}

func TestIsSecured(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Gold Loan", true},
		{"Housing Loan", true},
		{"Secured Credit Card", true},
		{"Business Loan - Secured", true},
		{"Two-wheeler Loan", true},
		{" Auto Loan ", true},

		{"Credit Card", false},
		{"Personal Loan", false},
		{"Business Loan - Unsecured", false},
		{"Business Loan - General", false},

		// Unknown raw strings fail open toward unsecured.
		{"Quantum Flux Loan", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSecured(tt.raw); got != tt.want {
			t.Errorf("IsSecured(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClassifySector(t *testing.T) {
	tests := []struct {
		sector string
		want   Sector
	}{
		{"KOTAK BANK", OnUs},
		{"KOTAK PRIME", OnUs},
		{" KOTAK BANK ", OnUs},

		{"HDFC BANK", OffUs},
		{"kotak bank", OffUs}, // matching is case-sensitive
		{"", OffUs},
		{"UNKNOWN NBFC", OffUs},
	}

	for _, tt := range tests {
		if got := ClassifySector(tt.sector); got != tt.want {
			t.Errorf("ClassifySector(%q) = %q, want %q", tt.sector, got, tt.want)
		}
	}
}
