package core

import "testing"

func TestCollection_SortedByNextDueDate(t *testing.T) {
	now := NewDate(2024, 6, 1)

	c := NewCollection()
	// Added out of due-date order on purpose.
	c.Add(testSub("late", "a", NewDate(2024, 1, 25), Monthly), now)  // due Jun 25
	c.Add(testSub("early", "b", NewDate(2024, 1, 5), Monthly), now)  // due Jun 5
	c.Add(testSub("mid", "c", NewDate(2023, 6, 15), Annual), now)    // due Jun 15

	items := c.Items()
	for i := 1; i < len(items); i++ {
		prev := NextDueDate(items[i-1].StartDate, items[i-1].Cycle, now)
		cur := NextDueDate(items[i].StartDate, items[i].Cycle, now)
		if cur.Before(prev.Time) {
			t.Errorf("collection not non-decreasing at %d: %s after %s", i, cur.ISO(), prev.ISO())
		}
	}
	if items[0].ID != "early" || items[1].ID != "mid" || items[2].ID != "late" {
		t.Errorf("order = %s,%s,%s, want early,mid,late", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestCollection_TiesKeepInsertionOrder(t *testing.T) {
	now := NewDate(2024, 6, 1)

	c := NewCollection()
	c.Add(testSub("first", "a", NewDate(2024, 1, 10), Monthly), now)
	c.Add(testSub("second", "b", NewDate(2024, 2, 10), Monthly), now) // same next due date
	c.Add(testSub("third", "c", NewDate(2024, 3, 10), Monthly), now)  // same next due date

	items := c.Items()
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestCollection_RemoveByID(t *testing.T) {
	now := NewDate(2024, 6, 1)

	c := NewCollection()
	c.Add(testSub("a", "music", NewDate(2024, 1, 10), Monthly), now)
	c.Add(testSub("b", "cloud", NewDate(2024, 1, 20), Monthly), now)

	c.RemoveByID("a")
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after remove, want 1", c.Len())
	}
	if items := c.Items(); items[0].ID != "b" {
		t.Errorf("remaining ID = %s, want b", items[0].ID)
	}

	// Unknown id: no-op, no failure.
	c.RemoveByID("nope")
	if c.Len() != 1 {
		t.Errorf("Len() = %d after removing unknown id, want 1", c.Len())
	}
}

func TestCollection_ResortAsTimeAdvances(t *testing.T) {
	now := NewDate(2024, 6, 1)

	c := NewCollection()
	c.Add(testSub("a", "music", NewDate(2024, 1, 5), Monthly), now)  // due Jun 5
	c.Add(testSub("b", "cloud", NewDate(2024, 1, 20), Monthly), now) // due Jun 20

	// After Jun 5 passes, a's next due date jumps to Jul 5 and b comes first.
	later := NewDate(2024, 6, 10)
	c.Sort(later)
	items := c.Items()
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("order after resort = %s,%s, want b,a", items[0].ID, items[1].ID)
	}
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	now := NewDate(2024, 6, 1)
	c := NewCollection()
	c.Add(testSub("a", "music", NewDate(2024, 1, 5), Monthly), now)

	items := c.Items()
	items[0].ID = "mutated"
	if c.Items()[0].ID != "a" {
		t.Error("mutating the returned slice changed the collection")
	}
}
