package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Monthly Cycle = "monthly"
	Annual  Cycle = "annual"
)

type (
	// Cycle is the fixed billing period of a subscription.
	Cycle string

	// Date is a calendar date pinned to UTC midnight. Time-of-day and
	// timezone carry no meaning anywhere in this package.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Subscription is an immutable record; edits are modeled as
	// remove+insert by the caller.
	Subscription struct {
		ID        string
		Name      string
		Amount    Money
		Currency  string // free-form code, never converted or validated
		Cycle     Cycle
		StartDate Date
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyCurrency = errors.New("empty currency")
	ErrInvalidCycle  = errors.New("invalid cycle")
	ErrInvalidDate   = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day. Out-of-range components are
// normalized by the calendar (day 32 of January becomes February 1), which is
// the rollover behavior the recurrence stepper relies on.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.UTC().Year(), int(t.UTC().Month()), t.UTC().Day())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Format renders the date for display, e.g. "2024/01/31".
func (d Date) Format() string {
	return d.Time.Format("2006/01/02")
}

// ISO renders the date as "2006-01-02", the storage and wire form.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Cycle) Validate() error {
	switch c {
	case Monthly, Annual:
		return nil
	default:
		return ErrInvalidCycle
	}
}

// NewID returns a fresh opaque subscription identifier.
func NewID() string {
	return uuid.NewString()
}

func (s Subscription) Validate() error {
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if len(s.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := s.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Currency) == "" {
		return ErrEmptyCurrency
	}
	if err := s.Cycle.Validate(); err != nil {
		return err
	}
	if err := s.StartDate.Validate(); err != nil {
		return err
	}
	return nil
}
