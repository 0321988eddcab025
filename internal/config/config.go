package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultStoreName      = "todos.json"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Clear   string `toml:"clear"`
	Edit    string `toml:"edit"`
	Search  string `toml:"search"`
	Filter  string `toml:"filter"`
	Tab     string `toml:"tab"`
	Sort    string `toml:"sort"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	// StorePath is the todo collection file. With the sqlite backend it
	// is the database file instead.
	StorePath string `toml:"store_path"`
	// Backend is "json" or "sqlite".
	Backend string `toml:"backend"`
	// RequireDue rejects todos without a due date. When false, undated
	// todos are kept and shown with a placeholder.
	RequireDue  bool   `toml:"require_due"`
	DefaultSort string `toml:"default_sort"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath puts the config under the user config dir, falling
// back to the working directory when that is unavailable.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "todo", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.StorePath == "" {
		cfg.StorePath = filepath.Join(filepath.Dir(path), DefaultStoreName)
	}
	if cfg.Backend == "" {
		cfg.Backend = "json"
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		StorePath:   filepath.Join(dir, DefaultStoreName),
		Backend:     "json",
		RequireDue:  true,
		DefaultSort: "due",
		LogLevel:    "info",
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Clear:   "D",
			Edit:    "e",
			Search:  "/",
			Filter:  "f",
			Tab:     "tab",
			Sort:    "s",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
