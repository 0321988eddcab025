package todo

import (
	"todo/pkg/todo/date"
)

// Session tracks which single item, if any, is open for inline editing.
// It is view-layer state: never persisted, and at most one item is in
// edit mode at a time.
type Session struct {
	store  Manager
	id     int64
	active bool
}

func NewSession(store Manager) *Session {
	return &Session{store: store}
}

// Editing reports the id under edit, if any.
func (e *Session) Editing() (int64, bool) {
	return e.id, e.active
}

// Start opens id for editing. An already active session is replaced
// without warning, discarding its unsaved changes.
func (e *Session) Start(id int64) (Item, error) {
	it, err := e.store.Get(id)
	if err != nil {
		return Item{}, err
	}
	e.id = id
	e.active = true
	return it, nil
}

// Save commits the edit through the store and closes the session. On a
// validation error the session stays open so the caller can correct the
// input; if the item vanished underneath us the session resets.
func (e *Session) Save(text string, due date.Date) (Item, error) {
	if !e.active {
		return Item{}, ErrNotFound
	}
	it, err := e.store.Edit(e.id, text, due)
	if err != nil {
		if err == ErrNotFound {
			e.reset()
		}
		return Item{}, err
	}
	e.reset()
	return it, nil
}

// Cancel discards the session.
func (e *Session) Cancel() {
	e.reset()
}

// Removed tells the session an item was deleted by another path, e.g. a
// delete firing while its row is in edit mode. A session must not keep
// pointing at a dead id.
func (e *Session) Removed(id int64) {
	if e.active && e.id == id {
		e.reset()
	}
}

func (e *Session) reset() {
	e.id = 0
	e.active = false
}
