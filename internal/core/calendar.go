package core

// EventsOnDay returns the subscriptions with a due date falling exactly on
// day, judged by the horizon-bounded enumeration from now. A day outside
// [now, now+horizonDays) therefore always yields an empty result; that is the
// defined boundary behavior, not an error.
func EventsOnDay(subs []Subscription, day Date, now Date, horizonDays int) []Subscription {
	var out []Subscription
	for _, s := range subs {
		for _, d := range UpcomingDueDates(s.StartDate, s.Cycle, now, horizonDays) {
			if d.Equal(day.Time) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// DayIndex maps ISO dates to the subscriptions due on them. Build it once per
// (now, horizon) pair and reuse it across queries instead of re-enumerating
// every subscription per day.
type DayIndex struct {
	now         Date
	horizonDays int
	byDay       map[string][]Subscription
}

// BuildDayIndex enumerates every subscription's upcoming due dates once and
// groups them by day.
func BuildDayIndex(subs []Subscription, now Date, horizonDays int) *DayIndex {
	idx := &DayIndex{
		now:         now,
		horizonDays: horizonDays,
		byDay:       make(map[string][]Subscription),
	}
	for _, s := range subs {
		for _, d := range UpcomingDueDates(s.StartDate, s.Cycle, now, horizonDays) {
			key := d.ISO()
			idx.byDay[key] = append(idx.byDay[key], s)
		}
	}
	return idx
}

// On returns the subscriptions due on day, in collection order.
func (idx *DayIndex) On(day Date) []Subscription {
	subs := idx.byDay[day.ISO()]
	out := make([]Subscription, len(subs))
	copy(out, subs)
	return out
}

// Days returns the number of distinct days carrying at least one due date.
func (idx *DayIndex) Days() int {
	return len(idx.byDay)
}
