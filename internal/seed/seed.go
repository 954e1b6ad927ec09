// Package seed loads an optional YAML file of subscriptions at startup so a
// fresh database starts with a known portfolio.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"subtrack/internal/core"
	"subtrack/internal/services"
)

var nowFunc = time.Now

type file struct {
	Subscriptions []entry `yaml:"subscriptions"`
}

type entry struct {
	Name      string `yaml:"name"`
	Amount    string `yaml:"amount"`
	Currency  string `yaml:"currency"`
	Cycle     string `yaml:"cycle"`
	StartDate string `yaml:"start_date"`
}

// Load parses the seed file into validated subscriptions with fresh IDs.
func Load(path string) ([]core.Subscription, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	subs := make([]core.Subscription, 0, len(f.Subscriptions))
	for i, e := range f.Subscriptions {
		cents, err := core.ParseDecimalToCents(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d (%q): amount: %w", i, e.Name, err)
		}
		start, err := core.ParseDate(e.StartDate)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d (%q): start_date: %w", i, e.Name, err)
		}

		sub := core.Subscription{
			ID:        core.NewID(),
			Name:      e.Name,
			Amount:    core.Money{Cents: cents},
			Currency:  e.Currency,
			Cycle:     core.Cycle(e.Cycle),
			StartDate: start,
		}
		if err := sub.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d (%q): %w", i, e.Name, err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// Apply creates the seed subscriptions that are not already present, matched
// by name. Re-running against a seeded database is a no-op.
func Apply(ctx context.Context, svc *services.SubscriptionService, subs []core.Subscription) (int, error) {
	existing, err := svc.List(ctx, core.DateOf(nowFunc()))
	if err != nil {
		return 0, fmt.Errorf("list existing subscriptions: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.Name] = true
	}

	created := 0
	for _, sub := range subs {
		if known[sub.Name] {
			continue
		}
		if err := svc.Create(ctx, sub); err != nil {
			return created, fmt.Errorf("seed %q: %w", sub.Name, err)
		}
		created++
	}

	return created, nil
}
