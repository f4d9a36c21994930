package main

import (
	"Drawer/internal/classifier"
	"Drawer/internal/clipboard"
	fsrepo "Drawer/internal/cli/repo/fs"
	"Drawer/internal/config"
	"Drawer/internal/handlers"
	"Drawer/internal/middleware"
	"Drawer/internal/notify"
	"Drawer/internal/preview"
	"Drawer/internal/repo"
	"Drawer/internal/scheduler"
	"Drawer/internal/service"
	"Drawer/internal/watcher"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Printf("Drawer daemon\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	logger, err := newLogger(cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("drawerd stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(format string) (*zap.Logger, error) {
	if format == "json" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"Retention", cfg.Retention,
		"CleanupInterval", cfg.CleanupInterval,
		"ListenerPath", cfg.ListenerPath,
	)

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(gormDB); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	backend, err := clipboard.System()
	if err != nil {
		return err
	}
	host := clipboard.NewHost(backend)

	hub := notify.NewHub()
	store := service.NewClipboardStore(repo.NewClipboardRepository(gormDB), hub, sugar, time.Now, cfg.Retention)
	tags := service.NewTagIndex(repo.NewTagRepository(gormDB), sugar)

	cl := classifier.New(preview.NewGenerator(cfg.ThumbnailSize), preview.IconFor, sugar)
	w := watcher.New(host, cl, store, sugar)
	commands := service.NewCommands(tags, watcher.NewRestorer(w, host), sugar)

	// токен для drawerctl; секрет живёт не дольше процесса, если не задан явно
	token, err := middleware.IssueToken(cfg.AuthSecret, "drawerctl", 0)
	if err != nil {
		return err
	}
	tokenFile := fsrepo.TokenFile{Path: cfg.TokenFile}
	if err := tokenFile.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	defer func() { _ = tokenFile.Remove() }()

	sched := scheduler.New(sugar)
	if err := sched.Every("clear-outdated", cfg.CleanupInterval, func(ctx context.Context) error {
		_, err := store.ClearOutdated(ctx)
		return err
	}); err != nil {
		return err
	}

	var (
		ticks    <-chan clipboard.Tick
		listener *clipboard.Listener
	)
	if cfg.ListenerPath != "" {
		listener = clipboard.NewListener(sugar, cfg.ListenerPath)
		if ticks, err = listener.Start(ctx); err != nil {
			return err
		}
	} else {
		ticks = clipboard.NewPollSource(backend).Ticks(ctx)
	}

	h := handlers.NewHandler(store, commands, sugar, cfg.AuthSecret)
	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx, ticks)
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		sugar.Infow("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Infow("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Warnw("http shutdown", "error", err)
		}
		sched.Stop()
		if listener != nil {
			listener.Stop()
		}
		return nil
	})

	return g.Wait()
}
