// Package export defines the outbound ports for the payment schedule export
// and holds its adapters (google, memory).
package export

import (
	"context"

	"subtrack/internal/core"
)

// PaymentRow is one exported schedule entry: a subscription charge landing on
// a specific day.
type PaymentRow struct {
	DueDate  core.Date
	Name     string
	Amount   core.Money
	Currency string
}

// ScheduleWriter appends payment rows to an export target.
type ScheduleWriter interface {
	// AppendPayment writes one row and returns an adapter-specific row
	// reference.
	AppendPayment(ctx context.Context, row PaymentRow) (rowRef string, err error)
}
