// Package worker holds the message-driven export pipeline: payment.due
// messages in, schedule rows out.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"subtrack/internal/amqp"
	"subtrack/internal/core"
	"subtrack/internal/export"
)

// ExportWorker appends one schedule row per payment.due message.
type ExportWorker struct {
	writer export.ScheduleWriter
}

func NewExportWorker(writer export.ScheduleWriter) *ExportWorker {
	return &ExportWorker{writer: writer}
}

// HandlePaymentDue processes a single payment.due message. An unparseable due
// date is logged and dropped rather than returned as an error: the consumer
// requeues handler errors, and a malformed date would never succeed on retry.
func (w *ExportWorker) HandlePaymentDue(ctx context.Context, msg *amqp.PaymentDueMessage) error {
	slog.InfoContext(ctx, "Processing payment due message",
		"id", msg.ID,
		"name", msg.Name,
		"due_date", msg.DueDate)

	due, err := core.ParseDate(msg.DueDate)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping message with invalid due date",
			"id", msg.ID,
			"due_date", msg.DueDate,
			"error", err)
		return nil
	}

	row := export.PaymentRow{
		DueDate:  due,
		Name:     msg.Name,
		Amount:   core.Money{Cents: msg.AmountCents},
		Currency: msg.Currency,
	}

	ref, err := w.writer.AppendPayment(ctx, row)
	if err != nil {
		return fmt.Errorf("append payment row: %w", err)
	}

	slog.InfoContext(ctx, "Payment row exported",
		"id", msg.ID,
		"row_ref", ref)

	return nil
}
