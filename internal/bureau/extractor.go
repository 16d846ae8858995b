package bureau

import (
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/seenimoa/bureaulens/internal/taxonomy"
	"github.com/seenimoa/bureaulens/pkg/models"
	"github.com/seenimoa/bureaulens/pkg/utils"
)

// forcedEventPattern matches 3-letter uppercase codes embedded in the
// per-period delinquency string.
var forcedEventPattern = regexp.MustCompile(`[A-Z]{3}`)

// standardDPDMarkers are delinquency-string codes that do NOT indicate a
// forced event: STD (standard) and XXX (not reported).
var standardDPDMarkers = map[string]struct{}{"STD": {}, "XXX": {}}

// Extractor computes per-loan-type feature vectors from raw tradelines.
// It is stateless across invocations; the only shared state is the Data's
// read-only dataset cache, so concurrent extractions for different
// customers are fully independent.
type Extractor struct {
	data *Data
	now  func() time.Time
}

// NewExtractor creates an extractor over the given datasets.
func NewExtractor(data *Data) *Extractor {
	return &Extractor{data: data, now: utils.NowIST}
}

// Extract loads the customer's tradelines, groups them by canonical loan
// type, and computes one feature vector per non-empty group. A customer
// with no tradelines yields an empty map, not an error: "no bureau
// footprint" is a valid state. Only a malformed customer id errors.
func (e *Extractor) Extract(customerID int64) (map[models.LoanType]*models.LoanFeatureVector, error) {
	rows, err := e.data.TradelinesFor(customerID)
	if err != nil {
		return nil, err
	}

	vectors := make(map[models.LoanType]*models.LoanFeatureVector)
	if len(rows) == 0 {
		return vectors, nil
	}

	// Partition by canonical type. A missing or unmapped raw type
	// normalizes to OtherLoan, so every input row lands in exactly one group.
	grouped := make(map[models.LoanType][]models.RawTradeline)
	for _, row := range rows {
		lt := taxonomy.Normalize(row.LoanType)
		grouped[lt] = append(grouped[lt], row)
	}

	for lt, group := range grouped {
		vectors[lt] = buildVector(lt, group, e.now())
	}
	return vectors, nil
}

// buildVector computes the feature vector for one canonical group.
func buildVector(lt models.LoanType, group []models.RawTradeline, now time.Time) *models.LoanFeatureVector {
	loanCount := len(group)

	// Any secured raw variant makes the whole group secured.
	secured := false
	for _, tl := range group {
		if taxonomy.IsSecured(tl.LoanType) {
			secured = true
			break
		}
	}

	var sanctioned, outstanding, overdue float64
	closedCount := 0
	onUs := 0
	for _, tl := range group {
		sanctioned += tl.SanctionAmount
		outstanding += tl.OutstandingBalance
		overdue += tl.OverdueAmount
		if tl.Closed() {
			closedCount++
		}
		if taxonomy.ClassifySector(tl.Sector) == taxonomy.OnUs {
			onUs++
		}
	}

	maxDPD, maxDPDMonthsAgo := maxDPDAcross(group)

	vec := &models.LoanFeatureVector{
		LoanType:         lt,
		Secured:          secured,
		LoanCount:        loanCount,
		LiveCount:        loanCount - closedCount,
		ClosedCount:      closedCount,
		TotalSanctioned:  sanctioned,
		TotalOutstanding: outstanding,
		OverdueAmount:    overdue,
		AvgVintageMonths: avgVintage(group),
		MonthsSinceLastPayment: monthsSinceLastPayment(group, now),
		DelinquencyFlag:  maxDPD != nil && *maxDPD > 0,
		MaxDPD:           maxDPD,
		MaxDPDMonthsAgo:  maxDPDMonthsAgo,
		UtilizationRatio: utilizationRatio(lt, group),
		ForcedEventFlags: forcedEventFlags(group),
		OnUsCount:        onUs,
		OffUsCount:       loanCount - onUs,
	}
	vec.EarliestOpened, vec.LatestOpened, vec.LatestClosed = timeline(group)
	return vec
}

// maxDPDAcross folds the per-tradeline pre-computed max DPD values into the
// group maximum, carrying the months-since value of the winning tradeline.
// Absent (zero) values are excluded from the max rather than treated as 0:
// a group with no reported DPD returns (nil, nil).
func maxDPDAcross(group []models.RawTradeline) (*int, *int) {
	best := 0
	var bestMonthsAgo *int
	found := false

	for _, tl := range group {
		if tl.MaxDPD <= 0 {
			continue
		}
		found = true
		if tl.MaxDPD > best {
			best = tl.MaxDPD
			bestMonthsAgo = tl.MonthsSinceMaxDPD
		}
	}

	if !found {
		return nil, nil
	}
	return &best, bestMonthsAgo
}

// avgVintage averages the positive per-tradeline vintages, one decimal.
// Groups with no usable vintage report 0.
func avgVintage(group []models.RawTradeline) float64 {
	var sum float64
	n := 0
	for _, tl := range group {
		if tl.VintageMonths > 0 {
			sum += tl.VintageMonths
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}

// monthsSinceLastPayment returns whole months since the most recent
// last-payment date in the group, or nil when no date parses.
func monthsSinceLastPayment(group []models.RawTradeline, now time.Time) *int {
	var latest *time.Time
	for _, tl := range group {
		if tl.LastPaymentDate == nil {
			continue
		}
		if latest == nil || tl.LastPaymentDate.After(*latest) {
			latest = tl.LastPaymentDate
		}
	}
	if latest == nil {
		return nil
	}
	m := utils.MonthsBetween(*latest, now)
	return &m
}

// utilizationRatio computes outstanding/limit across LIVE revolving
// tradelines with a positive limit, rounded to 4 places. Defined only for
// the credit-card type; everything else returns nil. The ratio is not
// clamped to 1 — over-limit utilization above 100% is a meaningful signal.
func utilizationRatio(lt models.LoanType, group []models.RawTradeline) *float64 {
	if lt != models.CreditCard {
		return nil
	}

	var totalOutstanding, totalLimit float64
	for _, tl := range group {
		if !tl.Live() {
			continue
		}
		if tl.CreditLimit > 0 {
			totalLimit += tl.CreditLimit
			totalOutstanding += tl.OutstandingBalance
		}
	}
	if totalLimit <= 0 {
		return nil
	}

	ratio := math.Round(totalOutstanding/totalLimit*1e4) / 1e4
	return &ratio
}

// forcedEventFlags scans each tradeline's delinquency string for 3-letter
// codes marking non-standard events (write-off, settlement, SMA buckets and
// the like). Position within the string is not tracked; presence anywhere
// sets the flag. Returns a sorted, deduplicated list.
func forcedEventFlags(group []models.RawTradeline) []string {
	seen := make(map[string]struct{})
	for _, tl := range group {
		for _, code := range forcedEventPattern.FindAllString(tl.DPDString, -1) {
			if _, std := standardDPDMarkers[code]; !std {
				seen[code] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	flags := make([]string, 0, len(seen))
	for code := range seen {
		flags = append(flags, code)
	}
	sort.Strings(flags)
	return flags
}

// timeline derives the group's open/close month labels: earliest and latest
// opened, latest closed. Empty strings when no dates parse.
func timeline(group []models.RawTradeline) (earliestOpened, latestOpened, latestClosed string) {
	var minOpen, maxOpen, maxClose *time.Time
	for _, tl := range group {
		if tl.DateOpened != nil {
			if minOpen == nil || tl.DateOpened.Before(*minOpen) {
				minOpen = tl.DateOpened
			}
			if maxOpen == nil || tl.DateOpened.After(*maxOpen) {
				maxOpen = tl.DateOpened
			}
		}
		if tl.DateClosed != nil {
			if maxClose == nil || tl.DateClosed.After(*maxClose) {
				maxClose = tl.DateClosed
			}
		}
	}

	if minOpen != nil {
		earliestOpened = utils.MonthLabel(*minOpen)
		latestOpened = utils.MonthLabel(*maxOpen)
	}
	if maxClose != nil {
		latestClosed = utils.MonthLabel(*maxClose)
	}
	return earliestOpened, latestOpened, latestClosed
}
