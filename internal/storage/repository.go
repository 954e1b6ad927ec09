package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"subtrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the canonical subscription store. Removal is a soft
// delete; reads only ever return live rows.
type SQLiteRepository struct {
	db *sql.DB
}

// ReminderCandidate pairs a subscription with the last day a payment-due
// reminder was published for it (zero Date when never notified).
type ReminderCandidate struct {
	Subscription core.Subscription
	LastNotified core.Date
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(dbPath, migrationsFS, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create inserts a subscription. The record is immutable once stored; edits
// are modeled as remove+insert by the caller.
func (r *SQLiteRepository) Create(ctx context.Context, s core.Subscription) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate subscription: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, name, amount_cents, currency, cycle, start_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Amount.Cents, s.Currency, string(s.Cycle), s.StartDate.ISO())
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}

	slog.InfoContext(ctx, "Subscription saved",
		"id", s.ID,
		"name", s.Name,
		"amount_cents", s.Amount.Cents,
		"cycle", s.Cycle,
		"start_date", s.StartDate.ISO())

	return nil
}

// SoftDelete marks a subscription deleted. An unknown id is a no-op, not an
// error.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete subscription: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Soft delete matched no subscription", "id", id)
		return nil
	}

	slog.InfoContext(ctx, "Subscription removed", "id", id)
	return nil
}

// List returns every live subscription in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, currency, cycle, start_date
		 FROM subscriptions WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []core.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}

// Get returns a single live subscription by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount_cents, currency, cycle, start_date
		 FROM subscriptions WHERE id = ? AND deleted_at IS NULL`, id)
	return scanSubscription(row)
}

// ListForReminder returns live subscriptions with their last notification day
// so the reminder worker can skip already-notified items.
func (r *SQLiteRepository) ListForReminder(ctx context.Context) ([]ReminderCandidate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, currency, cycle, start_date, last_notified_date
		 FROM subscriptions WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}
	defer rows.Close()

	var out []ReminderCandidate
	for rows.Next() {
		var (
			c            ReminderCandidate
			cents        int64
			cycle        string
			startDate    string
			lastNotified sql.NullString
		)
		if err := rows.Scan(&c.Subscription.ID, &c.Subscription.Name, &cents,
			&c.Subscription.Currency, &cycle, &startDate, &lastNotified); err != nil {
			return nil, fmt.Errorf("scan reminder candidate: %w", err)
		}
		c.Subscription.Amount = core.Money{Cents: cents}
		c.Subscription.Cycle = core.Cycle(cycle)
		if c.Subscription.StartDate, err = core.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("parse start date %q: %w", startDate, err)
		}
		if lastNotified.Valid && lastNotified.String != "" {
			if c.LastNotified, err = core.ParseDate(lastNotified.String); err != nil {
				return nil, fmt.Errorf("parse last notified date %q: %w", lastNotified.String, err)
			}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder candidates: %w", err)
	}
	return out, nil
}

// MarkNotified records the day a payment-due reminder was published.
func (r *SQLiteRepository) MarkNotified(ctx context.Context, id string, day core.Date) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET last_notified_date = ? WHERE id = ?`,
		day.ISO(), id)
	if err != nil {
		return fmt.Errorf("mark subscription notified: %w", err)
	}

	slog.InfoContext(ctx, "Subscription marked notified", "id", id, "day", day.ISO())
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (core.Subscription, error) {
	var (
		s         core.Subscription
		cents     int64
		cycle     string
		startDate string
	)
	if err := row.Scan(&s.ID, &s.Name, &cents, &s.Currency, &cycle, &startDate); err != nil {
		return core.Subscription{}, fmt.Errorf("scan subscription: %w", err)
	}
	s.Amount = core.Money{Cents: cents}
	s.Cycle = core.Cycle(cycle)

	d, err := core.ParseDate(startDate)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	s.StartDate = d
	return s, nil
}
