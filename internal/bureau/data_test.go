package bureau

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seenimoa/bureaulens/internal/dataset"
)

func TestTradelinesParsesTypedFields(t *testing.T) {
	d := newTestData(t, []tlRow{
		{crn: "1001", loanType: "Gold Loan", status: "Closed", sanction: "25000.50",
			outstanding: "0", vintage: "18.5", maxDPD: "30", monthsSinceDPD: "4",
			lastPay: "01-02-2024", opened: "15-08-2022", closed: "01-02-2024 00:00"},
	}, "", nil)

	rows, err := d.Tradelines()
	if err != nil {
		t.Fatalf("Tradelines: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}

	row := rows[0]
	if row.CustomerID != 1001 {
		t.Errorf("CustomerID = %d", row.CustomerID)
	}
	if row.SanctionAmount != 25000.50 {
		t.Errorf("SanctionAmount = %v", row.SanctionAmount)
	}
	if row.VintageMonths != 18.5 {
		t.Errorf("VintageMonths = %v", row.VintageMonths)
	}
	if row.MaxDPD != 30 {
		t.Errorf("MaxDPD = %d", row.MaxDPD)
	}
	if row.MonthsSinceMaxDPD == nil || *row.MonthsSinceMaxDPD != 4 {
		t.Errorf("MonthsSinceMaxDPD = %v", row.MonthsSinceMaxDPD)
	}
	if !row.Closed() {
		t.Error("status Closed should report closed")
	}
	if row.DateClosed == nil || row.DateClosed.Year() != 2024 {
		t.Errorf("DateClosed = %v", row.DateClosed)
	}
}

func TestTradelinesMissingColumn(t *testing.T) {
	dir := t.TempDir()
	tlPath := filepath.Join(dir, "dpd_data.csv")
	// Header without the sector column.
	header := strings.Replace(tradelineHeader, "\tsector", "", 1)
	if err := os.WriteFile(tlPath, []byte(header+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	d := Open(tlPath, filepath.Join(dir, "features.csv"))
	if _, err := d.Tradelines(); !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}

func TestTradelinesMissingFile(t *testing.T) {
	dir := t.TempDir()
	d := Open(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "features.csv"))
	if _, err := d.Tradelines(); !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestRefreshRereadsSources(t *testing.T) {
	dir := t.TempDir()
	tlPath := filepath.Join(dir, "dpd_data.csv")
	fPath := filepath.Join(dir, "features.csv")

	write := func(rows ...tlRow) {
		lines := []string{tradelineHeader}
		for _, r := range rows {
			lines = append(lines, r.String())
		}
		if err := os.WriteFile(tlPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write(tlRow{})
	if err := os.WriteFile(fPath, []byte("crn\n"), 0o644); err != nil {
		t.Fatalf("write features: %v", err)
	}

	d := Open(tlPath, fPath)
	rows, err := d.Tradelines()
	if err != nil {
		t.Fatalf("Tradelines: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	write(tlRow{}, tlRow{crn: "2002"})

	// Cached until an explicit refresh.
	rows, _ = d.Tradelines()
	if len(rows) != 1 {
		t.Errorf("cache broken: got %d rows before Refresh", len(rows))
	}

	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	rows, _ = d.Tradelines()
	if len(rows) != 2 {
		t.Errorf("got %d rows after Refresh, want 2", len(rows))
	}
}

func TestTradelinesForFiltersAndPreservesOrder(t *testing.T) {
	d := newTestData(t, []tlRow{
		{crn: "1001", loanType: "Personal Loan"},
		{crn: "2002", loanType: "Gold Loan"},
		{crn: "1001", loanType: "Credit Card"},
	}, "", nil)

	rows, err := d.TradelinesFor(1001)
	if err != nil {
		t.Fatalf("TradelinesFor: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].LoanType != "Personal Loan" || rows[1].LoanType != "Credit Card" {
		t.Errorf("source order not preserved: %q, %q", rows[0].LoanType, rows[1].LoanType)
	}
}
