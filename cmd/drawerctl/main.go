package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Drawer/internal/cli/commands"
	"Drawer/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// -h печатает список команд, а не только флаги
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprint(out, commands.FormatGlobalUsage(), "\nFlags:\n")
		flag.PrintDefaults()
	}
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Printf("drawerctl %s (built %s)\n", version, buildDate)
		return commands.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.Dispatch(ctx, cfg, flag.Args())
}
