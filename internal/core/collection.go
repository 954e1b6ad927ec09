package core

import (
	"sort"
	"sync"
)

// Collection is an ordered, mutable set of subscriptions kept sorted
// ascending by each member's computed next due date. The sort key is derived
// at sort time from the now supplied by the caller, never stored, so repeated
// sorts reorder correctly as due dates pass.
//
// Add and RemoveByID are not atomic across append-then-sort; a concurrent
// host must serialize writers. The internal mutex only keeps reads consistent.
type Collection struct {
	mu   sync.Mutex
	subs []Subscription
}

func NewCollection(seed ...Subscription) *Collection {
	c := &Collection{}
	c.subs = append(c.subs, seed...)
	return c
}

// Add appends the subscription and re-sorts by next due date computed
// against now. Ties keep relative insertion order.
func (c *Collection) Add(s Subscription, now Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, s)
	c.sortLocked(now)
}

// RemoveByID removes the matching record. Removing an unknown id is a no-op,
// not an error.
func (c *Collection) RemoveByID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.ID == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Sort recomputes the ordering against a fresh now.
func (c *Collection) Sort(now Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortLocked(now)
}

func (c *Collection) sortLocked(now Date) {
	sort.SliceStable(c.subs, func(i, j int) bool {
		di := NextDueDate(c.subs[i].StartDate, c.subs[i].Cycle, now)
		dj := NextDueDate(c.subs[j].StartDate, c.subs[j].Cycle, now)
		return di.Before(dj.Time)
	})
}

// Items returns a copy of the current ordering.
func (c *Collection) Items() []Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Subscription, len(c.subs))
	copy(out, c.subs)
	return out
}

// Len returns the number of subscriptions.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
