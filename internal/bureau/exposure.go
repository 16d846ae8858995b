package bureau

import (
	"math"
	"time"

	"github.com/seenimoa/bureaulens/internal/taxonomy"
	"github.com/seenimoa/bureaulens/pkg/models"
	"github.com/seenimoa/bureaulens/pkg/utils"
)

// DefaultExposureMonths is the trailing window for the exposure series.
const DefaultExposureMonths = 24

// MonthlyExposure computes the active sanction exposure per canonical loan
// type for each of the past nMonths calendar months, oldest first. A
// tradeline counts toward a month when it opened on or before the month's
// last day and was not closed before the month's first day. Loan types
// whose series is all-zero are dropped.
func (e *Extractor) MonthlyExposure(customerID int64, nMonths int) (*models.MonthlyExposure, error) {
	if nMonths <= 0 {
		nMonths = DefaultExposureMonths
	}

	rows, err := e.data.TradelinesFor(customerID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	labels := make([]string, 0, nMonths)
	type window struct{ first, last time.Time }
	windows := make([]window, 0, nMonths)
	for i := nMonths - 1; i >= 0; i-- {
		first, last := utils.MonthBounds(now, i)
		labels = append(labels, utils.MonthLabel(first))
		windows = append(windows, window{first, last})
	}

	grouped := make(map[models.LoanType][]models.RawTradeline)
	for _, row := range rows {
		lt := taxonomy.Normalize(row.LoanType)
		grouped[lt] = append(grouped[lt], row)
	}

	series := make(map[string][]float64)
	for _, lt := range models.CanonicalLoanTypes {
		group, ok := grouped[lt]
		if !ok {
			continue
		}

		amounts := make([]float64, len(windows))
		nonZero := false
		for i, w := range windows {
			var total float64
			for _, tl := range group {
				if tl.DateOpened == nil {
					continue
				}
				stillOpen := tl.DateClosed == nil || !tl.DateClosed.Before(w.first)
				if !tl.DateOpened.After(w.last) && stillOpen {
					total += tl.SanctionAmount
				}
			}
			amounts[i] = math.Round(total)
			if amounts[i] > 0 {
				nonZero = true
			}
		}
		if nonZero {
			series[lt.ShortCode()] = amounts
		}
	}

	return &models.MonthlyExposure{Months: labels, Series: series}, nil
}
