package todo

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"todo/pkg/todo/date"
)

type Sort int

const (
	SortNone Sort = iota
	SortDue
	SortText
)

type Status int

const (
	StatusAll Status = iota
	StatusPending
	StatusDone
)

// Query narrows and orders the displayed set. The stages always compose
// in the same order: filters, then text search, then sort. Filters and
// search intersect; the zero Query keeps everything in stored order.
type Query struct {
	On     date.Date
	Status Status
	Search string
	Sort   Sort
}

// collator for locale-aware text ordering
var collator = collate.New(language.Und)

func (q Query) match(it Item) bool {
	if !q.On.IsZero() && !it.Due.Equal(q.On) {
		return false
	}
	if q.Status == StatusPending && it.Completed {
		return false
	}
	if q.Status == StatusDone && !it.Completed {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(it.Text), needle) {
			return false
		}
	}
	return true
}

// Query is read-only: it filters into a fresh slice and stable-sorts
// that, leaving the stored order untouched.
func (s *Store) Query(q Query) []Item {
	out := []Item{}
	for _, it := range s.items {
		if q.match(it) {
			out = append(out, it)
		}
	}
	switch q.Sort {
	case SortDue:
		// unset dates sort after dated items
		slices.SortStableFunc(out, func(a, b Item) int {
			switch {
			case a.Due.IsZero() && b.Due.IsZero():
				return 0
			case a.Due.IsZero():
				return 1
			case b.Due.IsZero():
				return -1
			}
			return a.Due.Compare(b.Due)
		})
	case SortText:
		slices.SortStableFunc(out, func(a, b Item) int {
			return collator.CompareString(a.Text, b.Text)
		})
	}
	return out
}

// DistinctDates enumerates the unique due dates across the whole
// collection in ascending order. Unset dates are skipped.
func (s *Store) DistinctDates() []date.Date {
	seen := map[string]struct{}{}
	out := []date.Date{}
	for _, it := range s.items {
		if it.Due.IsZero() {
			continue
		}
		key := it.Due.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it.Due)
	}
	slices.SortFunc(out, date.Date.Compare)
	return out
}
