package bureau

import (
	"reflect"
	"testing"

	"github.com/seenimoa/bureaulens/pkg/models"
)

func intPtr(n int) *int { return &n }

func TestAggregateEmptyInput(t *testing.T) {
	summary := Aggregate(map[models.LoanType]*models.LoanFeatureVector{})

	var zero models.ExecutiveSummary
	if !reflect.DeepEqual(summary, zero) {
		t.Errorf("empty input summary = %+v, want zero value", summary)
	}
}

func TestAggregateTotals(t *testing.T) {
	vectors := map[models.LoanType]*models.LoanFeatureVector{
		models.PersonalLoan: {
			LoanType: models.PersonalLoan, Secured: false,
			LoanCount: 3, LiveCount: 2, ClosedCount: 1,
			TotalSanctioned: 300000, TotalOutstanding: 150000,
			OverdueAmount: 5000,
		},
		models.HomeLoan: {
			LoanType: models.HomeLoan, Secured: true,
			LoanCount: 1, LiveCount: 1,
			TotalSanctioned: 2000000, TotalOutstanding: 1800000,
		},
	}

	summary := Aggregate(vectors)

	if summary.TotalTradelines != 4 || summary.LiveTradelines != 3 || summary.ClosedTradelines != 1 {
		t.Errorf("counts = %d/%d/%d, want 4/3/1",
			summary.TotalTradelines, summary.LiveTradelines, summary.ClosedTradelines)
	}
	if summary.TotalSanctioned != 2300000 {
		t.Errorf("TotalSanctioned = %v, want 2300000", summary.TotalSanctioned)
	}
	if summary.TotalOverdue != 5000 {
		t.Errorf("TotalOverdue = %v, want 5000", summary.TotalOverdue)
	}
	if summary.UnsecuredSanctioned != 300000 || summary.UnsecuredOutstanding != 150000 {
		t.Errorf("unsecured = %v/%v, want 300000/150000 (secured groups excluded)",
			summary.UnsecuredSanctioned, summary.UnsecuredOutstanding)
	}
	if summary.HasDelinquency {
		t.Error("no vector flagged delinquency")
	}
}

func TestAggregateMaxDPDAbsentSafe(t *testing.T) {
	vectors := map[models.LoanType]*models.LoanFeatureVector{
		models.PersonalLoan: {LoanType: models.PersonalLoan}, // no DPD reported
		models.CreditCard: {
			LoanType: models.CreditCard, DelinquencyFlag: true,
			MaxDPD: intPtr(45), MaxDPDMonthsAgo: intPtr(3),
		},
		models.GoldLoan: {
			LoanType: models.GoldLoan, Secured: true, DelinquencyFlag: true,
			MaxDPD: intPtr(120), MaxDPDMonthsAgo: intPtr(8),
		},
	}

	summary := Aggregate(vectors)

	if !summary.HasDelinquency {
		t.Error("HasDelinquency should be true")
	}
	if summary.MaxDPD == nil || *summary.MaxDPD != 120 {
		t.Fatalf("MaxDPD = %v, want 120", summary.MaxDPD)
	}
	if summary.MaxDPDLoanType != "Gold Loan" {
		t.Errorf("MaxDPDLoanType = %q, want Gold Loan", summary.MaxDPDLoanType)
	}
	if summary.MaxDPDMonthsAgo == nil || *summary.MaxDPDMonthsAgo != 8 {
		t.Errorf("MaxDPDMonthsAgo = %v, want 8", summary.MaxDPDMonthsAgo)
	}
}

// Equal max DPD values tie-break to the canonically earlier loan type, so
// repeated aggregation of the same map is reproducible.
func TestAggregateMaxDPDTieBreaksCanonically(t *testing.T) {
	vectors := map[models.LoanType]*models.LoanFeatureVector{
		models.CreditCard:   {LoanType: models.CreditCard, MaxDPD: intPtr(60)},
		models.PersonalLoan: {LoanType: models.PersonalLoan, MaxDPD: intPtr(60)},
	}

	for i := 0; i < 10; i++ {
		summary := Aggregate(vectors)
		if summary.MaxDPDLoanType != "Personal Loan" {
			t.Fatalf("run %d: MaxDPDLoanType = %q, want Personal Loan", i, summary.MaxDPDLoanType)
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	vectors := map[models.LoanType]*models.LoanFeatureVector{
		models.PersonalLoan: {
			LoanType: models.PersonalLoan, LoanCount: 2, LiveCount: 2,
			TotalSanctioned: 50000, TotalOutstanding: 20000,
			DelinquencyFlag: true, MaxDPD: intPtr(15),
		},
	}

	first := Aggregate(vectors)
	second := Aggregate(vectors)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-aggregation differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}
