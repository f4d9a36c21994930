package commands

import (
	"Drawer/internal/config"
	"context"
	"fmt"
	"strconv"
)

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "List clipboard history (oldest first)" }
func (historyCmd) Usage() string       { return "history [limit]" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	limit := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return ErrUsage
		}
		limit = n
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	var entries []entryView
	if err := c.GetJSON(ctx, "/api/clipboards", &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out, "History is empty")
		return nil
	}
	// последние limit записей
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	for _, e := range entries {
		fmt.Fprintln(Out, e.line())
	}
	return nil
}

type restoreCmd struct{}

func (restoreCmd) Name() string        { return "restore" }
func (restoreCmd) Description() string { return "Copy a history entry back to the clipboard" }
func (restoreCmd) Usage() string       { return "restore <entry-id>" }

func (restoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.PostJSON(ctx, fmt.Sprintf("/api/clipboards/%d/restore", id), nil, nil); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Restored", id)
	return nil
}

func init() {
	RegisterCmd(SectionHistory, historyCmd{})
	RegisterCmd(SectionHistory, restoreCmd{})
}
