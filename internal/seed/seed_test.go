package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"subtrack/internal/core"
	"subtrack/internal/services"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSeedFile(t, `subscriptions:
  - name: music
    amount: "9.99"
    currency: EUR
    cycle: monthly
    start_date: 2024-01-10
  - name: domain
    amount: "12,00"
    currency: USD
    cycle: annual
    start_date: 2024-03-01
`)

	subs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("Load() = %d subscriptions, want 2", len(subs))
	}
	if subs[0].Amount.Cents != 999 || subs[0].Cycle != core.Monthly {
		t.Errorf("first entry = %+v", subs[0])
	}
	if subs[1].Amount.Cents != 1200 || subs[1].Cycle != core.Annual {
		t.Errorf("second entry = %+v", subs[1])
	}
	if subs[0].ID == "" || subs[0].ID == subs[1].ID {
		t.Error("entries did not get distinct fresh IDs")
	}
}

func TestLoad_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "bad cycle",
			content: `subscriptions:
  - {name: x, amount: "1.00", currency: EUR, cycle: weekly, start_date: 2024-01-10}
`,
			wantErr: core.ErrInvalidCycle,
		},
		{
			name: "bad date",
			content: `subscriptions:
  - {name: x, amount: "1.00", currency: EUR, cycle: monthly, start_date: 10/01/2024}
`,
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSeedFile(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded on a missing file")
	}
}

type seedStore struct {
	mu   sync.Mutex
	subs []core.Subscription
}

func (s *seedStore) Create(_ context.Context, sub core.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	return nil
}

func (s *seedStore) SoftDelete(context.Context, string) error { return nil }

func (s *seedStore) List(context.Context) ([]core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Subscription, len(s.subs))
	copy(out, s.subs)
	return out, nil
}

func (s *seedStore) Close() error { return nil }

func TestApply_IsIdempotentByName(t *testing.T) {
	store := &seedStore{}
	svc := services.NewSubscriptionService(store, nil)
	subs := []core.Subscription{
		{ID: core.NewID(), Name: "music", Amount: core.Money{Cents: 999}, Currency: "EUR", Cycle: core.Monthly, StartDate: core.NewDate(2024, 1, 10)},
		{ID: core.NewID(), Name: "domain", Amount: core.Money{Cents: 1200}, Currency: "EUR", Cycle: core.Annual, StartDate: core.NewDate(2024, 3, 1)},
	}

	created, err := Apply(context.Background(), svc, subs)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if created != 2 {
		t.Errorf("Apply() created %d, want 2", created)
	}

	created, err = Apply(context.Background(), svc, subs)
	if err != nil {
		t.Fatalf("Apply() second run error: %v", err)
	}
	if created != 0 {
		t.Errorf("Apply() second run created %d, want 0", created)
	}
	if len(store.subs) != 2 {
		t.Errorf("store has %d subscriptions after reseeding, want 2", len(store.subs))
	}
}
