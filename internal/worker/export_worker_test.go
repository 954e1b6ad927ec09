package worker

import (
	"context"
	"errors"
	"testing"

	"subtrack/internal/amqp"
	"subtrack/internal/export"
	"subtrack/internal/export/memory"
)

type failingWriter struct{}

func (failingWriter) AppendPayment(context.Context, export.PaymentRow) (string, error) {
	return "", errors.New("sheet unavailable")
}

func TestHandlePaymentDue(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(store)

	msg := &amqp.PaymentDueMessage{
		ID:          "a",
		Name:        "music",
		AmountCents: 999,
		Currency:    "EUR",
		DueDate:     "2024-06-10",
	}
	if err := w.HandlePaymentDue(context.Background(), msg); err != nil {
		t.Fatalf("HandlePaymentDue() error: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("exported %d rows, want 1", len(rows))
	}
	if rows[0].Name != "music" || rows[0].Amount.Cents != 999 || rows[0].DueDate.ISO() != "2024-06-10" {
		t.Errorf("exported row = %+v", rows[0])
	}
}

func TestHandlePaymentDue_BadDueDateIsDropped(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(store)

	msg := &amqp.PaymentDueMessage{ID: "a", Name: "music", DueDate: "10/06/2024"}
	if err := w.HandlePaymentDue(context.Background(), msg); err != nil {
		t.Errorf("HandlePaymentDue() = %v, want nil so the message is not requeued", err)
	}
	if len(store.Rows()) != 0 {
		t.Error("row was exported despite bad due date")
	}
}

func TestHandlePaymentDue_WriterFailure(t *testing.T) {
	w := NewExportWorker(failingWriter{})

	msg := &amqp.PaymentDueMessage{ID: "a", Name: "music", AmountCents: 999, Currency: "EUR", DueDate: "2024-06-10"}
	if err := w.HandlePaymentDue(context.Background(), msg); err == nil {
		t.Error("HandlePaymentDue() = nil, want error so the message is requeued")
	}
}
