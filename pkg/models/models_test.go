package models

import (
	"encoding/json"
	"testing"
)

func TestSeverityRankOrdering(t *testing.T) {
	ordered := []Severity{
		SeverityHighRisk,
		SeverityModerateRisk,
		SeverityConcern,
		SeverityNeutral,
		SeverityPositive,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%q (%d) should rank before %q (%d)",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
	if Severity("bogus").Rank() != SeverityNeutral.Rank() {
		t.Error("unknown severity should rank as neutral")
	}
}

func TestCanonicalLoanTypesCoverEveryConstant(t *testing.T) {
	all := []LoanType{
		PersonalLoan, CreditCard, HomeLoan, AutoLoan, BusinessLoan,
		LoanAgainstProperty, LoanAgainstSecurities, LoanAgainstDeposits,
		GoldLoan, TwoWheelerLoan, ConsumerDurable, CommercialVehicle, OtherLoan,
	}
	if len(CanonicalLoanTypes) != len(all) {
		t.Fatalf("CanonicalLoanTypes has %d entries, want %d", len(CanonicalLoanTypes), len(all))
	}
	present := make(map[LoanType]struct{})
	for _, lt := range CanonicalLoanTypes {
		present[lt] = struct{}{}
	}
	for _, lt := range all {
		if _, ok := present[lt]; !ok {
			t.Errorf("%q missing from CanonicalLoanTypes", lt)
		}
	}
}

func TestLoanTypeNames(t *testing.T) {
	if got := PersonalLoan.DisplayName(); got != "Personal Loan" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := CommercialVehicle.ShortCode(); got != "CMVL" {
		t.Errorf("ShortCode = %q", got)
	}
	// Unknown values pass through unchanged.
	if got := LoanType("mystery").DisplayName(); got != "mystery" {
		t.Errorf("unknown DisplayName = %q", got)
	}
}

func TestTradelineClosedIsExactMatch(t *testing.T) {
	tests := []struct {
		status string
		closed bool
	}{
		{"Closed", true},
		{"Live", false},
		{"Written-Off", false},
		{"closed", false}, // case-sensitive
		{"", false},
	}
	for _, tt := range tests {
		tl := RawTradeline{Status: tt.status}
		if tl.Closed() != tt.closed {
			t.Errorf("Closed() for status %q = %v, want %v", tt.status, tl.Closed(), tt.closed)
		}
		if tl.Live() == tt.closed {
			t.Errorf("Live() for status %q inconsistent with Closed()", tt.status)
		}
	}
}

// Absent pointer fields must vanish from JSON instead of serializing as 0.
func TestVectorJSONOmitsAbsentValues(t *testing.T) {
	vec := LoanFeatureVector{LoanType: PersonalLoan, LoanCount: 1, LiveCount: 1}
	data, err := json.Marshal(vec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"max_dpd", "utilization_ratio", "months_since_last_payment"} {
		if jsonHasKey(t, data, field) {
			t.Errorf("absent field %q serialized", field)
		}
	}
}

func jsonHasKey(t *testing.T, data []byte, key string) bool {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_, ok := m[key]
	return ok
}

func TestPresentTypesCanonicalOrder(t *testing.T) {
	r := &BureauReport{
		FeatureVectors: map[LoanType]*LoanFeatureVector{
			OtherLoan:    {LoanType: OtherLoan},
			PersonalLoan: {LoanType: PersonalLoan},
			GoldLoan:     {LoanType: GoldLoan},
		},
	}
	got := r.PresentTypes()
	want := []LoanType{PersonalLoan, GoldLoan, OtherLoan}
	if len(got) != len(want) {
		t.Fatalf("PresentTypes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PresentTypes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
