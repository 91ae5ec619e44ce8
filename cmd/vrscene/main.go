package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	app, err := injector.InitializeApp(injector.ConfigPath(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "vrscene:", err)
		os.Exit(1)
	}
	logger := app.Logger.With(log.String("session", uuid.NewString()))
	defer func() { _ = app.Logger.Sync() }()

	if dsn := app.Config.Sentry.DSN; dsn != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: app.Config.Sentry.Environment}); err != nil {
			logger.Error("sentry init failed", log.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr := app.Config.Debug.StatsAddr; addr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		logger.Info("stats viewer listening", log.String("addr", addr))
	}

	g, ctx := errgroup.WithContext(ctx)
	if app.Config.Feed.Enabled {
		g.Go(func() error {
			defer reportPanic()
			return app.Feed.Start(ctx)
		})
	}
	g.Go(func() error {
		defer reportPanic()
		return newLoop(app, logger).run(ctx)
	})

	logger.Info("vrscene started", log.Int("objects", app.Registry.Len()))
	if err = g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("vrscene stopped", log.Error(err))
		os.Exit(1)
	}
	_ = app.Journal.Close()
	m := app.Bus.Metrics()
	logger.Info("vrscene stopped",
		log.Uint64("events", m.Published),
		log.Uint64("event_errors", m.Errors),
	)
}

// reportPanic forwards a contract violation to Sentry before crashing.
func reportPanic() {
	r := recover()
	if r == nil {
		return
	}
	sentry.CurrentHub().Recover(r)
	sentry.Flush(2 * time.Second)
	panic(r)
}
