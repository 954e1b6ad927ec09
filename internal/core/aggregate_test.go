package core

import "testing"

func TestMonthlyEquivalent(t *testing.T) {
	now := NewDate(2024, 6, 1)

	tests := []struct {
		name string
		subs []Subscription
		want int64
	}{
		{
			name: "empty collection",
			subs: nil,
			want: 0,
		},
		{
			name: "mixed cycles",
			subs: []Subscription{
				{Amount: Money{Cents: 33000}, Cycle: Monthly},
				{Amount: Money{Cents: 330000}, Cycle: Annual},
			},
			want: 60500, // 330 + 3300/12 = 605
		},
		{
			name: "annual only",
			subs: []Subscription{
				{Amount: Money{Cents: 120000}, Cycle: Annual},
			},
			want: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalent(tt.subs, now)
			if got.Cents != tt.want {
				t.Errorf("MonthlyEquivalent() = %d cents, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestAnnualEquivalent(t *testing.T) {
	now := NewDate(2024, 6, 1)

	tests := []struct {
		name string
		subs []Subscription
		want int64
	}{
		{
			name: "empty collection",
			subs: nil,
			want: 0,
		},
		{
			name: "mixed cycles",
			subs: []Subscription{
				{Amount: Money{Cents: 33000}, Cycle: Monthly},
				{Amount: Money{Cents: 330000}, Cycle: Annual},
			},
			want: 726000, // 330*12 + 3300 = 7260
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualEquivalent(tt.subs, now)
			if got.Cents != tt.want {
				t.Errorf("AnnualEquivalent() = %d cents, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestAggregates_OrderIndependent(t *testing.T) {
	now := NewDate(2024, 6, 1)
	a := Subscription{Amount: Money{Cents: 999}, Cycle: Monthly}
	b := Subscription{Amount: Money{Cents: 4800}, Cycle: Annual}
	c := Subscription{Amount: Money{Cents: 1500}, Cycle: Monthly}

	fwd := MonthlyEquivalent([]Subscription{a, b, c}, now)
	rev := MonthlyEquivalent([]Subscription{c, b, a}, now)
	if fwd.Cents != rev.Cents {
		t.Errorf("MonthlyEquivalent order-dependent: %d vs %d", fwd.Cents, rev.Cents)
	}
}

func TestSummarize(t *testing.T) {
	now := NewDate(2024, 6, 1)
	subs := []Subscription{
		{Amount: Money{Cents: 33000}, Cycle: Monthly},
		{Amount: Money{Cents: 330000}, Cycle: Annual},
	}
	sum := Summarize(subs, now)
	if sum.Count != 2 {
		t.Errorf("Summarize().Count = %d, want 2", sum.Count)
	}
	if sum.Monthly.Cents != 60500 || sum.Annual.Cents != 726000 {
		t.Errorf("Summarize() = %d/%d cents, want 60500/726000", sum.Monthly.Cents, sum.Annual.Cents)
	}
}
