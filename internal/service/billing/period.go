package billing

import "time"

// Period is one rent cycle as a half-open interval [Start, End).
// For calendar-month periods, End == AddMonths(Start, 1); successive periods
// tile the timeline from the tenant's start date with no gaps or overlaps.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the half-open interval.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// AddMonths advances t by n calendar months, keeping the anchor day-of-month.
// When the target month is shorter than the anchor day, the result clamps to
// the last valid day of that month (Jan 31 + 1 month = Feb 28/29), instead of
// normalizing into the following month the way time.AddDate does.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + n
	targetYear := year + total/12
	targetMonth := time.Month(total%12 + 1)
	if total < 0 {
		// Go's integer division truncates toward zero; renormalize.
		targetYear = year + (total-11)/12
		targetMonth = time.Month((total%12+12)%12 + 1)
	}

	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}

	h, m, s := t.Clock()
	return time.Date(targetYear, targetMonth, day, h, m, s, t.Nanosecond(), t.Location())
}

// AddSpans advances t by n fixed-length spans of spanDays days each. No
// clamping is involved; day arithmetic is exact.
func AddSpans(t time.Time, n, spanDays int) time.Time {
	return t.AddDate(0, 0, n*spanDays)
}

// MonthlyPeriod returns the k-th calendar-month period anchored at start,
// counting from zero.
func MonthlyPeriod(start time.Time, k int) Period {
	return Period{Start: AddMonths(start, k), End: AddMonths(start, k+1)}
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
