package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"subtrack/internal/export"
)

// Store is an in-memory schedule export used in development and tests.
type Store struct {
	mu   sync.Mutex
	rows []export.PaymentRow
}

func New() *Store {
	return &Store{}
}

// AppendPayment stores the row and returns a synthetic row reference.
func (s *Store) AppendPayment(_ context.Context, row export.PaymentRow) (string, error) {
	if row.Name == "" {
		return "", errors.New("empty payment name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []export.PaymentRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]export.PaymentRow, len(s.rows))
	copy(out, s.rows)
	return out
}
