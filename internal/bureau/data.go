// Package bureau implements the deterministic core of the credit-bureau
// pipeline: tradeline loading, per-loan-type feature extraction, customer
// level aggregation, pre-computed tradeline feature lookup, and report
// assembly. Every number produced here is a pure function of the input rows.
package bureau

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/seenimoa/bureaulens/internal/dataset"
	"github.com/seenimoa/bureaulens/pkg/models"
)

// ErrBadCustomerID indicates a malformed customer identifier. Data-content
// problems never produce this; only the identifier itself can.
var ErrBadCustomerID = errors.New("bureau: invalid customer id")

// Column names in the tradeline dataset. Columns are located by name, not
// position; a missing expected column is a load-time error.
const (
	colCustomerID        = "crn"
	colLoanType          = "loan_type_new"
	colStatus            = "loan_status"
	colSanctionAmount    = "sanction_amount"
	colOutstanding       = "out_standing_balance"
	colOverdue           = "over_due_amount"
	colCreditLimit       = "creditlimit"
	colLastPaymentDate   = "last_payment_date"
	colVintage           = "tl_vin_1"
	colSector            = "sector"
	colDPDString         = "dpd_string"
	colMaxDPD            = "max_dpd"
	colMonthsSinceMaxDPD = "months_since_max_dpd"
	colDateOpened        = "date_opened"
	colDateClosed        = "date_closed"
)

// tradelineColumns is the full expected column set for the tradeline source.
var tradelineColumns = []string{
	colCustomerID, colLoanType, colStatus, colSanctionAmount,
	colOutstanding, colOverdue, colCreditLimit, colLastPaymentDate,
	colVintage, colSector, colDPDString, colMaxDPD,
	colMonthsSinceMaxDPD, colDateOpened, colDateClosed,
}

// Data owns the two bureau datasets for the process lifetime: the raw
// tradeline file and the pre-computed tradeline feature file. Both parse
// once and serve concurrent readers afterwards.
type Data struct {
	tradelines *dataset.Source
	features   *dataset.Source

	mu   sync.RWMutex
	rows []models.RawTradeline // parsed tradelines, source order
}

// Open creates a Data over the given tab-delimited files. Files are read
// lazily on first access.
func Open(tradelinePath, featuresPath string) *Data {
	return &Data{
		tradelines: dataset.NewSource(tradelinePath, '\t'),
		features:   dataset.NewSource(featuresPath, '\t'),
	}
}

// Tradelines returns every parsed tradeline row, parsing the source on
// first call.
func (d *Data) Tradelines() ([]models.RawTradeline, error) {
	d.mu.RLock()
	rows := d.rows
	d.mu.RUnlock()
	if rows != nil {
		return rows, nil
	}
	return d.reloadTradelines()
}

// TradelinesFor returns the customer's tradelines in source row order. An
// empty result is a valid state ("no bureau footprint"), not an error.
func (d *Data) TradelinesFor(customerID int64) ([]models.RawTradeline, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCustomerID, customerID)
	}
	all, err := d.Tradelines()
	if err != nil {
		return nil, err
	}
	var out []models.RawTradeline
	for _, row := range all {
		if row.CustomerID == customerID {
			out = append(out, row)
		}
	}
	return out, nil
}

// Refresh re-reads both backing files, replacing the in-memory tables.
// Used by the serve command's scheduled reload.
func (d *Data) Refresh() error {
	if _, err := d.reloadTradelines(); err != nil {
		return err
	}
	_, err := d.features.Reload()
	return err
}

func (d *Data) reloadTradelines() ([]models.RawTradeline, error) {
	t, err := d.tradelines.Reload()
	if err != nil {
		return nil, err
	}
	if err := t.Require(tradelineColumns...); err != nil {
		return nil, err
	}

	rows := make([]models.RawTradeline, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, models.RawTradeline{
			CustomerID:         int64(dataset.Int(t.Cell(i, colCustomerID), 0)),
			LoanType:           t.Cell(i, colLoanType),
			Status:             strings.TrimSpace(t.Cell(i, colStatus)),
			Sector:             t.Cell(i, colSector),
			SanctionAmount:     dataset.Float(t.Cell(i, colSanctionAmount), 0),
			OutstandingBalance: dataset.Float(t.Cell(i, colOutstanding), 0),
			OverdueAmount:      dataset.Float(t.Cell(i, colOverdue), 0),
			CreditLimit:        dataset.Float(t.Cell(i, colCreditLimit), 0),
			VintageMonths:      dataset.Float(t.Cell(i, colVintage), 0),
			DPDString:          t.Cell(i, colDPDString),
			MaxDPD:             dataset.Int(t.Cell(i, colMaxDPD), 0),
			MonthsSinceMaxDPD:  dataset.OptionalInt(t.Cell(i, colMonthsSinceMaxDPD)),
			LastPaymentDate:    dataset.Date(t.Cell(i, colLastPaymentDate)),
			DateOpened:         dataset.Date(t.Cell(i, colDateOpened)),
			DateClosed:         dataset.Date(t.Cell(i, colDateClosed)),
		})
	}

	d.mu.Lock()
	d.rows = rows
	d.mu.Unlock()
	return rows, nil
}
