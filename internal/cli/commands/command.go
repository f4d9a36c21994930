package commands

import (
	"Drawer/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage: аргументы команды неверны, нужно показать её usage.
var ErrUsage = errors.New("usage")

// Command: подкоманда drawerctl.
type Command interface {
	// Name: имя команды в командной строке, например "history".
	Name() string
	// Description: одна строка для справки.
	Description() string
	// Usage: точная строка вызова, например "pin <entry-id> <tag-id>".
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// Section: раздел справки, в котором показывается команда.
type Section int

const (
	SectionHistory Section = iota
	SectionTags
	SectionOther
)

var sectionTitles = map[Section]string{
	SectionHistory: "History:",
	SectionTags:    "Tags:",
	SectionOther:   "Other:",
}

type registered struct {
	cmd     Command
	section Section
}

var registry = map[string]registered{}

// Out: общий writer для вывода CLI. В тестах подменяется.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду в раздел справки. Вызывается из init().
func RegisterCmd(section Section, cmd Command) {
	registry[cmd.Name()] = registered{cmd: cmd, section: section}
}

// Get ищет команду по имени.
func Get(name string) (Command, bool) {
	r, ok := registry[name]
	return r.cmd, ok
}

// List: все команды, по разделам, внутри раздела по имени.
func List() []Command {
	all := make([]registered, 0, len(registry))
	for _, r := range registry {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].section != all[j].section {
			return all[i].section < all[j].section
		}
		return all[i].cmd.Name() < all[j].cmd.Name()
	})
	list := make([]Command, len(all))
	for i, r := range all {
		list[i] = r.cmd
	}
	return list
}

// suggest возвращает команды, имя которых начинается с prefix.
func suggest(prefix string) []string {
	var names []string
	for name := range registry {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FormatGlobalUsage собирает справку по всем командам с разбивкой на разделы.
func FormatGlobalUsage() string {
	lines := []string{
		"drawerctl: control a running drawerd clipboard history daemon",
		"",
		"Usage:",
		"  drawerctl [--base-url <host:port>] [--token-file <path>] <command> [args]",
	}
	current := Section(-1)
	for _, c := range List() {
		s := registry[c.Name()].section
		if s != current {
			lines = append(lines, "", sectionTitles[s])
			current = s
		}
		lines = append(lines, fmt.Sprintf("  %-28s %s", c.Usage(), c.Description()))
	}
	lines = append(lines,
		"",
		"The daemon address and token file can also be set with BASE_URL and TOKEN_FILE.",
	)
	return strings.Join(lines, "\n") + "\n"
}
