package commands

import (
	"Drawer/internal/config"
	"context"
	"fmt"
	"strings"
)

type tagsCmd struct{}

func (tagsCmd) Name() string        { return "tags" }
func (tagsCmd) Description() string { return "List tags" }
func (tagsCmd) Usage() string       { return "tags" }

func (tagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	var tags []tagView
	if err := c.GetJSON(ctx, "/api/tags", &tags); err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintln(Out, "No tags")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintf(Out, "%-6d %s\n", t.ID, t.Name)
	}
	return nil
}

type tagAddCmd struct{}

func (tagAddCmd) Name() string        { return "tag-add" }
func (tagAddCmd) Description() string { return "Create a tag" }
func (tagAddCmd) Usage() string       { return "tag-add <name>" }

func (tagAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	var tag tagView
	if err := c.PostJSON(ctx, "/api/tags", map[string]string{"name": name}, &tag); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Tag created: %d %s\n", tag.ID, tag.Name)
	return nil
}

type tagDeleteCmd struct{}

func (tagDeleteCmd) Name() string        { return "tag-delete" }
func (tagDeleteCmd) Description() string { return "Delete a tag and everything pinned to it" }
func (tagDeleteCmd) Usage() string       { return "tag-delete <tag-id>" }

func (tagDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	if err := c.Delete(ctx, fmt.Sprintf("/api/tags/%d", id)); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Tag deleted", id)
	return nil
}

type tagItemsCmd struct{}

func (tagItemsCmd) Name() string        { return "tag-items" }
func (tagItemsCmd) Description() string { return "List entries pinned to a tag" }
func (tagItemsCmd) Usage() string       { return "tag-items <tag-id>" }

func (tagItemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	var items []entryView
	if err := c.GetJSON(ctx, fmt.Sprintf("/api/tags/%d/clipboards", id), &items); err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "Nothing pinned")
		return nil
	}
	for _, it := range items {
		fmt.Fprintln(Out, it.line())
	}
	return nil
}

type pinCmd struct{}

func (pinCmd) Name() string        { return "pin" }
func (pinCmd) Description() string { return "Pin a history entry to a tag" }
func (pinCmd) Usage() string       { return "pin <entry-id> <tag-id>" }

func (pinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	entryID, err := parseID(args[0])
	if err != nil {
		return err
	}
	tagID, err := parseID(args[1])
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	var item entryView
	if err := c.PostJSON(ctx, fmt.Sprintf("/api/tags/%d/clipboards", tagID), map[string]int64{"entry_id": entryID}, &item); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Pinned as %d\n", item.ID)
	return nil
}

type unpinCmd struct{}

func (unpinCmd) Name() string        { return "unpin" }
func (unpinCmd) Description() string { return "Remove a pinned entry" }
func (unpinCmd) Usage() string       { return "unpin <pin-id>" }

func (unpinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	if err := c.Delete(ctx, fmt.Sprintf("/api/tag-clipboards/%d", id)); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Unpinned", id)
	return nil
}

func init() {
	RegisterCmd(SectionTags, tagsCmd{})
	RegisterCmd(SectionTags, tagAddCmd{})
	RegisterCmd(SectionTags, tagDeleteCmd{})
	RegisterCmd(SectionTags, tagItemsCmd{})
	RegisterCmd(SectionTags, pinCmd{})
	RegisterCmd(SectionTags, unpinCmd{})
}
