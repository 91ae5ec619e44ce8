package scene

import (
	"context"
	"testing"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/events/bus"
	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/manipulate"
)

func benchRunner(b *testing.B) *frame.Runner {
	b.Helper()
	events := bus.New()
	reg := NewRegistry()
	err := PopulateDemo(reg, DemoConfig{
		Params:      manipulate.DefaultParams(),
		Restitution: 0.3,
		Speed:       1,
		Bodies:      []BodyOption{WithEventBus(events)},
	})
	if err != nil {
		b.Fatalf("populate: %v", err)
	}
	runner, err := frame.NewRunner(frame.DefaultRunnerConfig(), reg, events, nil)
	if err != nil {
		b.Fatalf("runner: %v", err)
	}
	return runner
}

func BenchmarkRunnerStep(b *testing.B) {
	runner := benchRunner(b)
	primary := controller.Idle(geom.Translation(0, 1, 0))
	secondary := controller.Idle(geom.Translation(0.6, 1.2, -0.3))
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runner.Step(ctx, primary, secondary, 0.011); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunnerStepHolding(b *testing.B) {
	runner := benchRunner(b)
	// Yank the first crate toward the primary hand and keep holding menu.
	primary := controller.Idle(geom.Translation(-0.5, 1, 0))
	primary.Menu = true
	secondary := controller.Idle(geom.Translation(5, 0, 0))
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runner.Step(ctx, primary, secondary, 0.011); err != nil {
			b.Fatal(err)
		}
	}
}
