package todo

import (
	"todo/pkg/todo/date"
)

// Item is a single todo entry. IDs are assigned by the store at creation
// and never change; Text and Due are the only fields edit may touch.
type Item struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Due       date.Date `json:"due"`
	Completed bool      `json:"completed"`
}

// Stats are always computed over the full collection, never a filtered
// view.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Persistor mirrors the collection to a durable store. Every mutation
// writes the whole collection through before it is considered complete.
type Persistor interface {
	Save([]Item) error
	Load() ([]Item, error)
}
