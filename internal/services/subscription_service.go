// Package services provides business logic and orchestration on top of the
// core domain: persisting subscriptions, publishing change notifications, and
// the daily payment-due scan.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"subtrack/internal/core"
)

// SubscriptionStore is the persistence port the service writes through.
type SubscriptionStore interface {
	Create(ctx context.Context, s core.Subscription) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context) ([]core.Subscription, error)
	Close() error
}

// ChangePublisher announces collection mutations to downstream consumers.
type ChangePublisher interface {
	PublishSubscriptionChanged(ctx context.Context, id, change string) error
	Close() error
}

// SubscriptionService orchestrates subscription operations across the store
// and the message broker. The store is authoritative; publishing is
// best-effort and never fails the request.
type SubscriptionService struct {
	store     SubscriptionStore
	publisher ChangePublisher
}

func NewSubscriptionService(store SubscriptionStore, publisher ChangePublisher) *SubscriptionService {
	return &SubscriptionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and persists a subscription, then publishes a change
// notification.
func (s *SubscriptionService) Create(ctx context.Context, sub core.Subscription) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validate subscription: %w", err)
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}

	if err := s.publishChange(ctx, sub.ID, "created"); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"id", sub.ID, "error", err)
		// Don't fail the request - the subscription is saved locally
	}

	return nil
}

// Remove soft deletes a subscription and publishes a change notification.
// Removing an unknown id succeeds as a no-op.
func (s *SubscriptionService) Remove(ctx context.Context, id string) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}

	if err := s.publishChange(ctx, id, "removed"); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"id", id, "error", err)
	}

	return nil
}

// List returns the live subscriptions sorted ascending by next due date
// computed against now, ties keeping store order.
func (s *SubscriptionService) List(ctx context.Context, now core.Date) ([]core.Subscription, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	coll := core.NewCollection(subs...)
	coll.Sort(now)
	return coll.Items(), nil
}

// Summary returns the portfolio cost totals for the current collection.
func (s *SubscriptionService) Summary(ctx context.Context, now core.Date) (core.Summary, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list subscriptions: %w", err)
	}
	return core.Summarize(subs, now), nil
}

// EventsOnDay returns the subscriptions with a payment falling on day within
// the horizon from now, grouped through the day index.
func (s *SubscriptionService) EventsOnDay(ctx context.Context, day, now core.Date, horizonDays int) ([]core.Subscription, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return core.BuildDayIndex(subs, now, horizonDays).On(day), nil
}

func (s *SubscriptionService) publishChange(ctx context.Context, id, change string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping change message")
		return nil
	}
	return s.publisher.PublishSubscriptionChanged(ctx, id, change)
}

// Close closes both the store and the broker connection.
func (s *SubscriptionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close subscription service: %v", errs)
	}

	return nil
}
