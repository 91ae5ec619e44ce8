package main

import (
	"context"
	"errors"
	"time"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/internal/feed"
	"github.com/zeusync/vrscene/internal/injector"
)

// loop drives frames from the controller source at a fixed rate.
type loop struct {
	app      *injector.App
	log      log.Log
	source   *controller.MockSource
	trackers [2]*controller.Tracker
	interval time.Duration
}

func newLoop(app *injector.App, logger log.Log) *loop {
	cfg := app.Config
	l := &loop{
		app:      app,
		log:      logger.Named("loop"),
		interval: time.Second / 90,
	}
	if cfg.Mock.Enabled {
		l.source = controller.NewMockSource(time.Now(), cfg.Mock.Period)
		l.interval = time.Duration(float64(time.Second) / cfg.Mock.FrameRate)
	}
	for n, i := range controller.Both {
		l.trackers[n] = controller.NewTracker(i, cfg.Physics.MaxStep, logger)
	}
	return l
}

func (l *loop) sample(i controller.Index, now time.Time) controller.Sample {
	if l.source == nil {
		// No tracking layer is attached; controllers read as disconnected.
		return controller.Sample{Time: now}
	}
	return l.source.Sample(i, now)
}

func (l *loop) run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			primary := l.trackers[0].Update(l.sample(controller.Primary, now))
			secondary := l.trackers[1].Update(l.sample(controller.Secondary, now))
			reply, err := l.app.Runner.Step(ctx, primary, secondary, dt)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}

			snap := feed.Build(reply, l.app.Registry.Views())
			snap.Events = l.app.Journal.Drain()
			if !l.app.Config.Feed.Enabled {
				continue
			}
			if _, err = l.app.Feed.Publish(snap); err != nil {
				l.log.Warn("feed publish failed", log.Frame(reply.Number), log.Error(err))
			}
		}
	}
}
