package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("writes defaults on first launch", func(t *testing.T) {
		is := is.New(t)
		path := filepath.Join(t.TempDir(), "todo", DefaultConfigFileName)

		cfg, err := LoadOrCreate(path)
		is.NoErr(err)
		is.Equal(cfg.Backend, "json")
		is.True(cfg.RequireDue)
		is.Equal(cfg.Keys.Add, "a")

		_, err = os.Stat(path)
		is.NoErr(err) // file was created
	})

	t.Run("reads an existing file", func(t *testing.T) {
		is := is.New(t)
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		body := "store_path = \"/tmp/mine.db\"\nbackend = \"sqlite\"\nrequire_due = false\n"
		is.NoErr(os.WriteFile(path, []byte(body), 0o644))

		cfg, err := LoadOrCreate(path)
		is.NoErr(err)
		is.Equal(cfg.StorePath, "/tmp/mine.db")
		is.Equal(cfg.Backend, "sqlite")
		is.True(!cfg.RequireDue)
	})

	t.Run("fills a missing store path", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFileName)
		is.NoErr(os.WriteFile(path, []byte("backend = \"json\"\n"), 0o644))

		cfg, err := LoadOrCreate(path)
		is.NoErr(err)
		is.Equal(cfg.StorePath, filepath.Join(dir, DefaultStoreName))
	})
}
