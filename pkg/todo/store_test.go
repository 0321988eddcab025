package todo

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"todo/pkg/todo/date"
)

// memPersist keeps the mirrored collection in memory so store tests can
// check the write-through behaviour without touching the filesystem.
type memPersist struct {
	saved []Item
	saves int
}

func (m *memPersist) Save(items []Item) error {
	m.saved = items
	m.saves++
	return nil
}

func (m *memPersist) Load() ([]Item, error) {
	return m.saved, nil
}

func newTestStore(t *testing.T, requireDue bool) (*Store, *memPersist) {
	t.Helper()
	is := is.New(t)
	p := &memPersist{}
	s, err := NewStore(p, requireDue)
	is.NoErr(err)
	return s, p
}

func TestStore_Add(t *testing.T) {
	t.Run("assigns unique ids", func(t *testing.T) {
		is := is.New(t)
		s, p := newTestStore(t, false)
		seen := map[int64]bool{}
		for i := 0; i < 100; i++ {
			it, err := s.Add("task", date.Date{})
			is.NoErr(err)
			is.True(!seen[it.ID])
			seen[it.ID] = true
		}
		is.Equal(p.saves, 100) // every add writes through
		is.Equal(len(p.saved), 100)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		is := is.New(t)
		s, p := newTestStore(t, false)
		_, err := s.Add("", date.Date{})
		is.Equal(err, ErrEmptyText)
		_, err = s.Add("   \t ", date.Date{})
		is.Equal(err, ErrEmptyText)
		is.Equal(s.Stats().Total, 0)
		is.Equal(p.saves, 0) // nothing persisted
	})

	t.Run("trims whitespace", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, false)
		it, err := s.Add("  buy milk  ", date.Date{})
		is.NoErr(err)
		is.Equal(it.Text, "buy milk")
	})

	t.Run("requires a due date when configured", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, true)
		_, err := s.Add("task", date.Date{})
		is.Equal(err, ErrMissingDue)
		is.Equal(s.Stats().Total, 0)

		_, err = s.Add("task", date.New(2024, time.May, 1))
		is.NoErr(err)
	})

	t.Run("keeps an unset due date otherwise", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, false)
		it, err := s.Add("task", date.Date{})
		is.NoErr(err)
		is.True(it.Due.IsZero())
	})
}

func TestStore_Edit(t *testing.T) {
	may1 := date.New(2024, time.May, 1)
	may2 := date.New(2024, time.May, 2)

	t.Run("updates text and due only", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, true)
		it, err := s.Add("buy milk", may1)
		is.NoErr(err)
		is.NoErr(s.SetCompleted(it.ID, true))

		got, err := s.Edit(it.ID, "buy oat milk", may2)
		is.NoErr(err)
		is.Equal(got.ID, it.ID)
		is.Equal(got.Text, "buy oat milk")
		is.True(got.Due.Equal(may2))
		is.True(got.Completed) // completion untouched

		fresh, err := s.Get(it.ID)
		is.NoErr(err)
		is.Equal(fresh, got)
	})

	t.Run("keeps position", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, true)
		first, _ := s.Add("first", may1)
		second, _ := s.Add("second", may1)
		_, err := s.Edit(first.ID, "still first", may2)
		is.NoErr(err)
		items := s.Items()
		is.Equal(items[0].ID, first.ID)
		is.Equal(items[1].ID, second.ID)
	})

	t.Run("unknown id leaves the collection unchanged", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, true)
		s.Add("buy milk", may1)
		before := s.Query(Query{})

		_, err := s.Edit(999, "nope", may2)
		is.Equal(err, ErrNotFound)
		is.Equal(s.Query(Query{}), before)
	})

	t.Run("validation failure leaves the item unchanged", func(t *testing.T) {
		is := is.New(t)
		s, _ := newTestStore(t, true)
		it, _ := s.Add("buy milk", may1)

		_, err := s.Edit(it.ID, "  ", may2)
		is.Equal(err, ErrEmptyText)
		_, err = s.Edit(it.ID, "buy milk", date.Date{})
		is.Equal(err, ErrMissingDue)

		fresh, _ := s.Get(it.ID)
		is.Equal(fresh, it)
	})
}

func TestStore_SetCompleted(t *testing.T) {
	is := is.New(t)
	s, _ := newTestStore(t, false)
	it, _ := s.Add("task", date.Date{})

	is.Equal(s.SetCompleted(999, true), ErrNotFound)

	is.NoErr(s.SetCompleted(it.ID, true))
	once := s.Items()
	is.NoErr(s.SetCompleted(it.ID, true)) // idempotent
	is.Equal(s.Items(), once)
	is.Equal(s.Stats(), Stats{Total: 1, Completed: 1, Pending: 0})

	is.NoErr(s.SetCompleted(it.ID, false))
	is.Equal(s.Stats(), Stats{Total: 1, Completed: 0, Pending: 1})
}

func TestStore_Remove(t *testing.T) {
	is := is.New(t)
	s, _ := newTestStore(t, false)
	a, _ := s.Add("a", date.Date{})
	b, _ := s.Add("b", date.Date{})

	is.Equal(s.Remove(999), ErrNotFound)
	is.Equal(s.Stats().Total, 2)

	is.NoErr(s.Remove(a.ID))
	is.Equal(s.Stats().Total, 1)
	for _, it := range s.Query(Query{}) {
		is.True(it.ID != a.ID)
	}
	_, err := s.Get(a.ID)
	is.Equal(err, ErrNotFound)

	// removing again is an error, not a no-op
	is.Equal(s.Remove(a.ID), ErrNotFound)
	is.NoErr(s.Remove(b.ID))
	is.Equal(s.Stats(), Stats{})
}

func TestStore_RemoveAll(t *testing.T) {
	is := is.New(t)
	s, p := newTestStore(t, true)
	s.Add("a", date.New(2024, time.May, 1))
	s.Add("b", date.New(2024, time.May, 2))

	is.NoErr(s.RemoveAll())
	is.Equal(s.Stats(), Stats{})
	is.Equal(len(s.DistinctDates()), 0)
	is.Equal(len(p.saved), 0) // empty collection persisted
}

func TestStore_LoadAssignsFreshIDs(t *testing.T) {
	is := is.New(t)
	p := &memPersist{saved: []Item{
		{ID: 40, Text: "old"},
		{ID: 99, Text: "older"},
	}}
	s, err := NewStore(p, false)
	is.NoErr(err)

	it, err := s.Add("new", date.Date{})
	is.NoErr(err)
	is.True(it.ID > 99) // never reuses a loaded id
}

func TestStore_Scenario(t *testing.T) {
	is := is.New(t)
	s, _ := newTestStore(t, true)

	milk, err := s.Add("Buy milk", date.New(2024, time.May, 1))
	is.NoErr(err)
	_, err = s.Add("Call dentist", date.New(2024, time.May, 2))
	is.NoErr(err)

	dates := s.DistinctDates()
	is.Equal(len(dates), 2)
	is.Equal(dates[0].String(), "2024-05-01")
	is.Equal(dates[1].String(), "2024-05-02")
	is.Equal(s.Stats(), Stats{Total: 2, Completed: 0, Pending: 2})

	is.NoErr(s.SetCompleted(milk.ID, true))
	is.Equal(s.Stats(), Stats{Total: 2, Completed: 1, Pending: 1})
}
