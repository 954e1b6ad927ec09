package core

// Summary is the portfolio-wide cost view derived from a set of
// subscriptions. Amounts across different currencies are summed as raw
// numbers; conversion is deliberately not performed.
type Summary struct {
	Count   int
	Monthly Money
	Annual  Money
}

// MonthlyEquivalent sums every subscription normalized to a monthly basis:
// monthly cost as-is, annual cost divided by 12 (integer cents, truncated).
// now is accepted for symmetry with the other derived views but takes no part
// in the result; the pro-rating is flat, not calendar-accurate.
func MonthlyEquivalent(subs []Subscription, now Date) Money {
	_ = now
	var cents int64
	for _, s := range subs {
		switch s.Cycle {
		case Annual:
			cents += s.Amount.Cents / 12
		default:
			cents += s.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// AnnualEquivalent sums every subscription normalized to a yearly basis:
// monthly cost times 12, annual cost as-is. now is unused, as with
// MonthlyEquivalent.
func AnnualEquivalent(subs []Subscription, now Date) Money {
	_ = now
	var cents int64
	for _, s := range subs {
		switch s.Cycle {
		case Annual:
			cents += s.Amount.Cents
		default:
			cents += s.Amount.Cents * 12
		}
	}
	return Money{Cents: cents}
}

// Summarize bundles both equivalents for a collection snapshot.
func Summarize(subs []Subscription, now Date) Summary {
	return Summary{
		Count:   len(subs),
		Monthly: MonthlyEquivalent(subs, now),
		Annual:  AnnualEquivalent(subs, now),
	}
}
