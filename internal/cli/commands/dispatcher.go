package commands

import (
	"Drawer/internal/cli/api"
	"Drawer/internal/config"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Exit codes of drawerctl.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Dispatch запускает команду из args и возвращает код выхода процесса.
// Глобальные флаги к этому моменту уже разобраны config.NewConfig.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return ExitUsage
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		if hint := hintFor(err, cfg); hint != "" {
			fmt.Fprintln(Out, hint)
		}
		return ExitError
	}
}

// help: "drawerctl help [command]".
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(strings.ToLower(args[0]))
	if !ok {
		unknown(args[0])
		return ExitUsage
	}
	fmt.Fprintf(Out, "%s\nUsage: %s\n", c.Description(), c.Usage())
	return ExitOK
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if names := suggest(name); len(names) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(names, ", "))
		return
	}
	fmt.Fprint(Out, "\n", FormatGlobalUsage())
}

// hintFor подсказывает, что делать с типичными сбоями связи с демоном.
func hintFor(err error, cfg *config.Config) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
		return fmt.Sprintf("The token in %s was rejected; drawerd issues a new one on every start.", cfg.TokenFile)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Sprintf("drawerd is not reachable at %s.", cfg.ServerURL)
	}
	return ""
}
