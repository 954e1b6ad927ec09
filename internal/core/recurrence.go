package core

// DefaultHorizonDays is the forward window within which upcoming due dates
// are enumerated when the caller has no more specific requirement.
const DefaultHorizonDays = 365

// Step advances a due date by one billing cycle.
//
// Monthly steps add one calendar month and annual steps add one year, keeping
// the day-of-month. When the day does not exist in the target month (the 31st
// into a 30-day month, Feb 29 into a non-leap year) the normalized date rolls
// over into the following month: Jan 31 steps to Mar 2/3, never to Feb 28/29.
// Clamping to the month's last day would look friendlier but would not match
// the billing dates this tracker has always produced, so rollover it is.
func (c Cycle) Step(d Date) Date {
	switch c {
	case Annual:
		return Date{Time: d.Time.AddDate(1, 0, 0)}
	default:
		return Date{Time: d.Time.AddDate(0, 1, 0)}
	}
}

// NextDueDate returns the first due date of the subscription cycle that is
// not before now. A start date on or after now is returned unchanged: being
// due today counts as the next due date.
//
// The scan is linear in the number of cycles between start and now, which is
// small for real subscriptions. Stepping iterates from each previous result,
// so the day-of-month drift introduced by a rollover carries forward.
func NextDueDate(start Date, cycle Cycle, now Date) Date {
	d := start
	for d.Before(now.Time) {
		d = cycle.Step(d)
	}
	return d
}

// UpcomingDueDates enumerates every due date in [NextDueDate, now+horizonDays),
// strictly increasing. The sequence is recomputed fresh on every call; equal
// arguments always yield an equal sequence.
func UpcomingDueDates(start Date, cycle Cycle, now Date, horizonDays int) []Date {
	end := now.AddDays(horizonDays)
	var dates []Date
	for d := NextDueDate(start, cycle, now); d.Before(end.Time); d = cycle.Step(d) {
		dates = append(dates, d)
	}
	return dates
}
