package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"todo/pkg/todo"
	"todo/pkg/todo/date"
)

var _ todo.Persistor = (*SQLite)(nil)

// SQLite keeps the collection in a single todos table. Save replaces
// the table contents in one transaction, which gives it the same
// whole-collection write-through contract as the JSON backend. The
// position column preserves insertion order across reloads.
type SQLite struct {
	db *sql.DB
}

func InSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY,
	text TEXT NOT NULL,
	due TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLite) Save(items []todo.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM todos;`); err != nil {
		return err
	}
	for i, it := range items {
		done := 0
		if it.Completed {
			done = 1
		}
		_, err := tx.Exec(`INSERT INTO todos (id, text, due, completed, position) VALUES (?, ?, ?, ?, ?);`,
			it.ID, it.Text, it.Due.String(), done, i)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Load() ([]todo.Item, error) {
	rows, err := s.db.Query(`SELECT id, text, due, completed FROM todos ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []todo.Item
	for rows.Next() {
		var it todo.Item
		var dueStr string
		var done int
		if err := rows.Scan(&it.ID, &it.Text, &dueStr, &done); err != nil {
			return nil, err
		}
		it.Completed = done == 1
		if it.Due, err = date.Parse(dueStr); err != nil {
			return nil, fmt.Errorf("todo %d: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
