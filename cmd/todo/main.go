package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"todo/internal/config"
	"todo/internal/logutils"
	"todo/internal/tui"
	"todo/pkg/persist"
	"todo/pkg/todo"
)

type app struct {
	cfg   config.Config
	store *todo.Store
	log   zerolog.Logger

	closers []func()
}

func main() {
	ctx := context.Background()
	a := &app{}

	var (
		configPath string
		storePath  string
		backend    string
		logLevel   string
		logFile    string
	)

	root := &cli.Command{
		Name:  "todo",
		Usage: "Manage a local todo list",
		Description: `A small local todo list.

Run 'todo' with no arguments to open the interactive list.
Subcommands drive the same store without a terminal UI.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODO_CONFIG"),
				Value:       config.ResolveConfigPath(),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "store",
				Usage:       "path to the todo store file (overrides config)",
				Sources:     cli.EnvVars("TODO_STORE"),
				Destination: &storePath,
			},
			&cli.StringFlag{
				Name:        "backend",
				Usage:       "storage backend, json or sqlite (overrides config)",
				Destination: &backend,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("TODO_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logging is off without one)",
				Sources:     cli.EnvVars("TODO_LOG_FILE"),
				Destination: &logFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.LoadOrCreate(configPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFile != "" {
				cfg.LogFile = logFile
			}

			logger, logCloser, err := logutils.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			a.closers = append(a.closers, logCloser)

			p, storeCloser, err := openPersistor(cfg)
			if err != nil {
				return ctx, fmt.Errorf("open store: %w", err)
			}
			a.closers = append(a.closers, storeCloser)

			store, err := todo.NewStore(p, cfg.RequireDue)
			if err != nil {
				return ctx, err
			}

			a.cfg = cfg
			a.store = store
			a.log = logger
			logger.Debug().Str("backend", cfg.Backend).Str("store", cfg.StorePath).Msg("store opened")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for _, close := range a.closers {
				close()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return tui.Run(a.store, a.cfg, a.log)
		},
	}
	a.register(root)

	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openPersistor(cfg config.Config) (todo.Persistor, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case "sqlite":
		s, err := persist.InSQLite(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case "json", "":
		return persist.InJSON(cfg.StorePath), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
}
