package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"todo/pkg/todo"
	"todo/pkg/todo/date"
)

func (a *app) register(root *cli.Command) {
	root.Commands = append(root.Commands,
		a.addCmd(),
		a.listCmd(),
		a.doneCmd("done", true),
		a.doneCmd("undone", false),
		a.editCmd(),
		a.rmCmd(),
		a.clearCmd(),
		a.datesCmd(),
		a.statsCmd(),
	)
}

func (a *app) addCmd() *cli.Command {
	var due string
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a todo",
		UsageText: "todo add <text> [--due 2024-05-01]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (" + date.Layout + ")",
				Destination: &due,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("missing todo text")
			}
			d, err := date.Parse(due)
			if err != nil {
				return fmt.Errorf("due date %q: %w", due, err)
			}
			it, err := a.store.Add(c.Args().First(), d)
			if err != nil {
				return err
			}
			a.log.Info().Int64("id", it.ID).Msg("added todo")
			fmt.Fprintf(c.Root().Writer, "added %d\n", it.ID)
			return nil
		},
	}
}

func (a *app) listCmd() *cli.Command {
	var (
		on      string
		search  string
		sortKey string
		pending bool
	)
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List todos",
		UsageText: "todo list [--on DATE] [--search TEXT] [--sort due|text] [--pending]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "on",
				Usage:       "only todos due on this date",
				Destination: &on,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "only todos whose text contains this (case-insensitive)",
				Destination: &search,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort by 'due' or 'text' (default: stored order)",
				Destination: &sortKey,
			},
			&cli.BoolFlag{
				Name:        "pending",
				Usage:       "hide completed todos",
				Destination: &pending,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			q := todo.Query{Search: search}
			var err error
			if q.On, err = date.Parse(on); err != nil {
				return fmt.Errorf("filter date %q: %w", on, err)
			}
			switch sortKey {
			case "due":
				q.Sort = todo.SortDue
			case "text":
				q.Sort = todo.SortText
			case "":
			default:
				return fmt.Errorf("unknown sort %q: must be due or text", sortKey)
			}
			if pending {
				q.Status = todo.StatusPending
			}

			for _, it := range a.store.Query(q) {
				checkbox := "[ ]"
				if it.Completed {
					checkbox = "[x]"
				}
				due := it.Due.String()
				if due == "" {
					due = "no due date"
				}
				fmt.Fprintf(c.Root().Writer, "%d  %s %s (%s)\n", it.ID, checkbox, it.Text, due)
			}
			return nil
		},
	}
}

func (a *app) doneCmd(name string, completed bool) *cli.Command {
	usage := "Mark a todo as completed"
	if !completed {
		usage = "Mark a todo as pending again"
	}
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		UsageText: "todo " + name + " <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			if err := a.store.SetCompleted(id, completed); err != nil {
				return err
			}
			a.log.Info().Int64("id", id).Bool("completed", completed).Msg("toggled todo")
			return nil
		},
	}
}

func (a *app) editCmd() *cli.Command {
	var (
		text string
		due  string
	)
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a todo's text or due date",
		UsageText: "todo edit <id> [--text TEXT] [--due DATE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "text",
				Usage:       "new text (unset keeps the current one)",
				Destination: &text,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "new due date (unset keeps the current one)",
				Destination: &due,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			it, err := a.store.Get(id)
			if err != nil {
				return err
			}
			if text == "" {
				text = it.Text
			}
			d := it.Due
			if due != "" {
				if d, err = date.Parse(due); err != nil {
					return fmt.Errorf("due date %q: %w", due, err)
				}
			}
			if _, err := a.store.Edit(id, text, d); err != nil {
				return err
			}
			a.log.Info().Int64("id", id).Msg("edited todo")
			return nil
		},
	}
}

func (a *app) rmCmd() *cli.Command {
	var yes bool
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a todo",
		UsageText: "todo rm <id> [--yes]",
		Flags:     []cli.Flag{yesFlag(&yes)},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			it, err := a.store.Get(id)
			if err != nil {
				return err
			}
			ok, err := confirm(fmt.Sprintf("Delete %q?", it.Text), yes)
			if err != nil || !ok {
				return err
			}
			if err := a.store.Remove(id); err != nil {
				return err
			}
			a.log.Info().Int64("id", id).Msg("removed todo")
			return nil
		},
	}
}

func (a *app) clearCmd() *cli.Command {
	var yes bool
	return &cli.Command{
		Name:      "clear",
		Usage:     "Delete every todo",
		UsageText: "todo clear [--yes]",
		Flags:     []cli.Flag{yesFlag(&yes)},
		Action: func(ctx context.Context, c *cli.Command) error {
			total := a.store.Stats().Total
			ok, err := confirm(fmt.Sprintf("Delete all %d todos?", total), yes)
			if err != nil || !ok {
				return err
			}
			if err := a.store.RemoveAll(); err != nil {
				return err
			}
			a.log.Info().Int("count", total).Msg("cleared all todos")
			return nil
		},
	}
}

func (a *app) datesCmd() *cli.Command {
	return &cli.Command{
		Name:  "dates",
		Usage: "List the distinct due dates in use",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, d := range a.store.DistinctDates() {
				fmt.Fprintln(c.Root().Writer, d.String())
			}
			return nil
		},
	}
}

func (a *app) statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show todo counts",
		Action: func(ctx context.Context, c *cli.Command) error {
			st := a.store.Stats()
			fmt.Fprintf(c.Root().Writer, "Total: %d | Completed: %d | Pending: %d\n",
				st.Total, st.Completed, st.Pending)
			return nil
		},
	}
}

func parseID(c *cli.Command) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("missing todo id")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func yesFlag(dst *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "skip the confirmation prompt",
		Destination: dst,
	}
}

// confirm prompts before a destructive operation. The --yes flag makes
// it a no-op for scripts and other non-interactive callers.
func confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
