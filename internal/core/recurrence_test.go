package core

import (
	"testing"
)

func TestNextDueDate_StartNotBeforeNow(t *testing.T) {
	now := NewDate(2024, 6, 15)

	tests := []struct {
		name  string
		start Date
		cycle Cycle
	}{
		{"start in the future - monthly", NewDate(2024, 7, 1), Monthly},
		{"start in the future - annual", NewDate(2025, 1, 1), Annual},
		{"start is today", NewDate(2024, 6, 15), Monthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.start, tt.cycle, now)
			if !got.Equal(tt.start.Time) {
				t.Errorf("NextDueDate() = %s, want start date %s unchanged", got.ISO(), tt.start.ISO())
			}
		})
	}
}

func TestNextDueDate_AdvancesPastNow(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		cycle Cycle
		now   Date
		want  Date
	}{
		{
			name:  "monthly advances by whole months",
			start: NewDate(2024, 1, 10),
			cycle: Monthly,
			now:   NewDate(2024, 3, 15),
			want:  NewDate(2024, 4, 10),
		},
		{
			name:  "monthly lands exactly on now",
			start: NewDate(2024, 1, 10),
			cycle: Monthly,
			now:   NewDate(2024, 4, 10),
			want:  NewDate(2024, 4, 10),
		},
		{
			name:  "annual advances by whole years",
			start: NewDate(2020, 5, 20),
			cycle: Annual,
			now:   NewDate(2024, 6, 1),
			want:  NewDate(2025, 5, 20),
		},
		{
			name:  "annual due later this year",
			start: NewDate(2020, 9, 1),
			cycle: Annual,
			now:   NewDate(2024, 6, 1),
			want:  NewDate(2024, 9, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.start, tt.cycle, tt.now)
			if !got.Equal(tt.want.Time) {
				t.Errorf("NextDueDate() = %s, want %s", got.ISO(), tt.want.ISO())
			}
			if got.Before(tt.now.Time) {
				t.Errorf("NextDueDate() = %s is before now %s", got.ISO(), tt.now.ISO())
			}
		})
	}
}

func TestStep_MonthlyRollover(t *testing.T) {
	// Jan 31 2024 + one month: February has no 31st, so the date rolls over
	// into March (not a clamp to Feb 29).
	got := Monthly.Step(NewDate(2024, 1, 31))
	if got.Month() != 3 || got.Year() != 2024 {
		t.Fatalf("Step(Jan 31 2024) = %s, want a date in March 2024", got.ISO())
	}
	if got.Equal(NewDate(2024, 2, 29).Time) || got.Equal(NewDate(2024, 2, 28).Time) {
		t.Fatalf("Step(Jan 31 2024) clamped to %s, want rollover into March", got.ISO())
	}
}

func TestStep_AnnualLeapDayRollover(t *testing.T) {
	// Feb 29 2024 + one year: 2025 is not a leap year, so the date rolls over
	// to Mar 1 2025.
	got := Annual.Step(NewDate(2024, 2, 29))
	if want := NewDate(2025, 3, 1); !got.Equal(want.Time) {
		t.Fatalf("Step(Feb 29 2024) = %s, want %s", got.ISO(), want.ISO())
	}
}

func TestNextDueDate_LeapDayAfterFebruary(t *testing.T) {
	start := NewDate(2024, 2, 29)
	now := NewDate(2025, 3, 1)
	got := NextDueDate(start, Annual, now)
	if want := NewDate(2025, 3, 1); !got.Equal(want.Time) {
		t.Fatalf("NextDueDate() = %s, want %s", got.ISO(), want.ISO())
	}
}

func TestUpcomingDueDates_StrictlyIncreasingWithinHorizon(t *testing.T) {
	now := NewDate(2024, 6, 1)
	const horizon = 365

	tests := []struct {
		name      string
		start     Date
		cycle     Cycle
		wantCount int
	}{
		{"monthly past start", NewDate(2024, 1, 5), Monthly, 12},
		{"annual past start", NewDate(2023, 8, 15), Annual, 1},
		{"future start inside horizon", NewDate(2024, 12, 1), Monthly, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := UpcomingDueDates(tt.start, tt.cycle, now, horizon)
			if len(dates) != tt.wantCount {
				t.Errorf("UpcomingDueDates() returned %d dates, want %d", len(dates), tt.wantCount)
			}
			end := now.AddDays(horizon)
			for i, d := range dates {
				if d.Before(now.Time) || !d.Before(end.Time) {
					t.Errorf("date %s outside [%s, %s)", d.ISO(), now.ISO(), end.ISO())
				}
				if i > 0 && !dates[i-1].Before(d.Time) {
					t.Errorf("sequence not strictly increasing at %d: %s -> %s", i, dates[i-1].ISO(), d.ISO())
				}
			}
		})
	}
}

func TestUpcomingDueDates_Idempotent(t *testing.T) {
	start := NewDate(2024, 1, 31)
	now := NewDate(2024, 6, 1)

	a := UpcomingDueDates(start, Monthly, now, DefaultHorizonDays)
	b := UpcomingDueDates(start, Monthly, now, DefaultHorizonDays)
	if len(a) != len(b) {
		t.Fatalf("repeat call length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i].Time) {
			t.Errorf("repeat call element %d mismatch: %s vs %s", i, a[i].ISO(), b[i].ISO())
		}
	}
}

func TestUpcomingDueDates_StartBeyondHorizon(t *testing.T) {
	now := NewDate(2024, 6, 1)
	dates := UpcomingDueDates(NewDate(2026, 1, 1), Monthly, now, 365)
	if len(dates) != 0 {
		t.Errorf("UpcomingDueDates() = %d dates for a start beyond the horizon, want 0", len(dates))
	}
}
