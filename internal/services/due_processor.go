package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"subtrack/internal/amqp"
	"subtrack/internal/core"
	"subtrack/internal/storage"
)

// ReminderStore is the persistence port the due processor reads and marks
// through.
type ReminderStore interface {
	ListForReminder(ctx context.Context) ([]storage.ReminderCandidate, error)
	MarkNotified(ctx context.Context, id string, day core.Date) error
}

// DuePublisher publishes payment-due reminders.
type DuePublisher interface {
	PublishPaymentDue(ctx context.Context, msg *amqp.PaymentDueMessage) error
}

// DueProcessor finds the subscriptions whose payment falls on the given day
// and publishes one reminder per subscription, deduplicated by the last
// notified day stored alongside each record.
type DueProcessor struct {
	store       ReminderStore
	publisher   DuePublisher
	concurrency int
}

func NewDueProcessor(store ReminderStore, publisher DuePublisher, concurrency int) *DueProcessor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DueProcessor{
		store:       store,
		publisher:   publisher,
		concurrency: concurrency,
	}
}

// ProcessDay publishes a reminder for every subscription due on day. A single
// day value is used for the whole batch so a run crossing midnight stays
// consistent. Returns the number of reminders published.
func (p *DueProcessor) ProcessDay(ctx context.Context, day core.Date) (int, error) {
	if p.store == nil || p.publisher == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	candidates, err := p.store.ListForReminder(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reminder candidates: %w", err)
	}

	slog.InfoContext(ctx, "Scanning subscriptions for due payments",
		"total", len(candidates),
		"day", day.ISO())

	var published atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, cand := range candidates {
		// Already notified for this day?
		if !cand.LastNotified.IsZero() && !cand.LastNotified.Before(day.Time) {
			continue
		}

		next := core.NextDueDate(cand.Subscription.StartDate, cand.Subscription.Cycle, day)
		if !next.Equal(day.Time) {
			continue
		}

		sub := cand.Subscription
		g.Go(func() error {
			msg := &amqp.PaymentDueMessage{
				ID:          sub.ID,
				Name:        sub.Name,
				AmountCents: sub.Amount.Cents,
				Currency:    sub.Currency,
				DueDate:     day.ISO(),
				Timestamp:   time.Now(),
			}
			if err := p.publisher.PublishPaymentDue(gctx, msg); err != nil {
				slog.ErrorContext(gctx, "Failed to publish due reminder",
					"id", sub.ID, "error", err)
				// Skip MarkNotified so the next run retries this one.
				return nil
			}

			if err := p.store.MarkNotified(gctx, sub.ID, day); err != nil {
				slog.ErrorContext(gctx, "Failed to mark subscription notified",
					"id", sub.ID, "error", err)
				// Reminder went out; worst case the next run repeats it.
			}

			published.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(published.Load()), err
	}

	slog.InfoContext(ctx, "Due payment scan complete",
		"published", published.Load(),
		"total_checked", len(candidates))

	return int(published.Load()), nil
}
