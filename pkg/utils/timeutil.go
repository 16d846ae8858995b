package utils

import "time"

// IST is the Indian Standard Time location (UTC+5:30). Bureau dates carry no
// zone, so all calendar arithmetic is anchored here.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback when the tz database is unavailable.
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// MonthsBetween returns the whole calendar months from `from` to `to`,
// ignoring day-of-month, floored at zero.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months
}

// MonthLabel formats a time as a report month label, e.g. "Dec 2019".
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// MonthBounds returns the first and last day of the calendar month that is
// `offset` months before the month containing ref (offset 0 = ref's month).
func MonthBounds(ref time.Time, offset int) (first, last time.Time) {
	first = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -offset, 0)
	last = first.AddDate(0, 1, -1)
	return first, last
}
