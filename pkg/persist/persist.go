// Package persist mirrors the todo collection to a durable local store.
// Two backends exist: a JSON file and a sqlite database. Both write the
// whole collection on every Save.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"todo/pkg/todo"
)

var _ todo.Persistor = (*JSON)(nil)

// schemaVersion is written with every save. Files predating the
// envelope hold a bare array; Load still accepts those.
const schemaVersion = 1

type envelope struct {
	Version int         `json:"version"`
	Todos   []todo.Item `json:"todos"`
}

type JSON struct {
	file string
}

func InJSON(file string) *JSON {
	return &JSON{file}
}

// Save writes the full collection to the json file.
func (j *JSON) Save(items []todo.Item) error {
	bs, err := json.Marshal(envelope{Version: schemaVersion, Todos: items})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(j.file, bs, 0o660)
}

// Load reads the collection back. A missing file is an empty
// collection, not an error.
func (j *JSON) Load() ([]todo.Item, error) {
	bs, err := os.ReadFile(j.file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 {
		return nil, nil
	}
	// legacy files hold the array itself with no version envelope
	if bs[0] == '[' {
		var items []todo.Item
		if err := json.Unmarshal(bs, &items); err != nil {
			return nil, fmt.Errorf("parse legacy todo file: %w", err)
		}
		return items, nil
	}
	var e envelope
	if err := json.Unmarshal(bs, &e); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	return e.Todos, nil
}
