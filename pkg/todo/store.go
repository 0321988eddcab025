package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"todo/pkg/todo/date"
)

var (
	ErrNotFound   = errors.New("todo not found")
	ErrEmptyText  = errors.New("todo text is empty")
	ErrMissingDue = errors.New("todo due date is missing")
)

type Manager interface {
	Add(text string, due date.Date) (Item, error)
	Edit(id int64, text string, due date.Date) (Item, error)
	SetCompleted(id int64, completed bool) error
	Remove(id int64) error
	RemoveAll() error

	Get(id int64) (Item, error)
	Items() []Item
	Query(Query) []Item
	DistinctDates() []date.Date
	Stats() Stats
}

var _ Manager = (*Store)(nil)

// Store owns the authoritative item list and its durable mirror.
// Items keep insertion order; queries sort copies, never the backing
// slice.
type Store struct {
	items      []Item
	lastID     int64
	requireDue bool
	persist    Persistor
}

// NewStore loads the collection from p. When requireDue is set, Add and
// Edit reject items without a due date; otherwise an unset date is kept
// and the display layer substitutes a placeholder.
func NewStore(p Persistor, requireDue bool) (*Store, error) {
	items, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	s := &Store{
		items:      items,
		requireDue: requireDue,
		persist:    p,
	}
	for _, it := range items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	return s, nil
}

// nextID derives ids from wall-clock milliseconds, bumped past the last
// assigned id so two adds within the same millisecond cannot collide.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) validate(text string, due date.Date) error {
	if text == "" {
		return ErrEmptyText
	}
	if s.requireDue && due.IsZero() {
		return ErrMissingDue
	}
	return nil
}

func (s *Store) Add(text string, due date.Date) (Item, error) {
	text = strings.TrimSpace(text)
	if err := s.validate(text, due); err != nil {
		return Item{}, err
	}
	it := Item{
		ID:   s.nextID(),
		Text: text,
		Due:  due,
	}
	s.items = append(s.items, it)
	return it, s.save()
}

func (s *Store) Edit(id int64, text string, due date.Date) (Item, error) {
	i := s.index(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	text = strings.TrimSpace(text)
	if err := s.validate(text, due); err != nil {
		return Item{}, err
	}
	s.items[i].Text = text
	s.items[i].Due = due
	return s.items[i], s.save()
}

func (s *Store) SetCompleted(id int64, completed bool) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i].Completed = completed
	return s.save()
}

func (s *Store) Remove(id int64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.save()
}

func (s *Store) RemoveAll() error {
	s.items = nil
	return s.save()
}

func (s *Store) Get(id int64) (Item, error) {
	i := s.index(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	return s.items[i], nil
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.items)}
	for _, it := range s.items {
		if it.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

func (s *Store) index(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	if err := s.persist.Save(s.Items()); err != nil {
		return fmt.Errorf("persist todos: %w", err)
	}
	return nil
}
