package frame

import (
	"context"
	"fmt"
	"math"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/events"
	"github.com/zeusync/vrscene/internal/core/events/bus"
	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/internal/core/physics"
)

// DefaultMaxStep bounds a single physics step in seconds.
const DefaultMaxStep = 0.02

// Objects is the ordered set of objects a Runner drives.
type Objects interface {
	Range(fn func(name string, obj Object) bool)
	Len() int
}

type RunnerConfig struct {
	MaxStep float64
	Meta    Meta
	// NewEngine builds the world every frame's bodies are submitted to.
	NewEngine func() physics.Engine
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		MaxStep: DefaultMaxStep,
		Meta:    DefaultMeta(),
		NewEngine: func() physics.Engine {
			return physics.NewWorld(physics.DefaultWorldConfig())
		},
	}
}

// Runner drives frames over a fixed set of objects. It is not safe for
// concurrent use; one goroutine owns the frame loop.
type Runner struct {
	cfg     RunnerConfig
	objects Objects
	bus     bus.EventBus
	log     log.Log

	number uint64
	meta   Meta
}

func NewRunner(cfg RunnerConfig, objects Objects, eventBus bus.EventBus, logger log.Log) (*Runner, error) {
	if !(cfg.MaxStep > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaxStep, cfg.MaxStep)
	}
	if cfg.NewEngine == nil {
		cfg.NewEngine = DefaultRunnerConfig().NewEngine
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		objects: objects,
		bus:     eventBus,
		log:     logger.Named("frame"),
		meta:    cfg.Meta,
	}, nil
}

// Meta is the state the next frame starts with.
func (r *Runner) Meta() Meta {
	return r.meta
}

// Frames is the number of frames run so far.
func (r *Runner) Frames() uint64 {
	return r.number
}

// StepDt is the physics step used for a frame of wall time dt.
func (r *Runner) StepDt(dt float64) float64 {
	step := dt * r.meta.PhysicsSpeed
	if math.IsNaN(step) || step < 0 {
		return 0
	}
	return math.Min(step, r.cfg.MaxStep)
}

// Step runs one full frame: every object submits in registration order,
// both coordinators resolve once, then every ticket is consumed.
func (r *Runner) Step(ctx context.Context, primary, secondary controller.Snapshot, dt float64) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.number++
	f := New(r.number, primary, secondary, dt, r.cfg.NewEngine(), r.meta)

	tickets := make([]Ticket, 0, r.objects.Len())
	r.objects.Range(func(_ string, obj Object) bool {
		if t := obj.Update(f); t != nil {
			tickets = append(tickets, t)
		}
		return true
	})

	reply := f.Resolve(r.StepDt(dt))
	for _, t := range tickets {
		t.Consume(reply)
	}
	r.meta = reply.Meta

	r.log.Debug("frame resolved",
		log.Frame(reply.Number),
		log.Float64("dt", dt),
		log.Float64("step", reply.StepDt),
		log.Int("tickets", len(tickets)),
	)
	r.publish(events.NewFrameResolved(events.FrameResolved{
		Frame:    reply.Number,
		Dt:       dt,
		StepDt:   reply.StepDt,
		Objects:  r.objects.Len(),
		LaserTOI: [2]float64{reply.Interact.Primary.LaserTOI, reply.Interact.Secondary.LaserTOI},
	}))
	return reply, nil
}

func (r *Runner) publish(ev bus.Event) {
	if r.bus == nil || ev == nil {
		return
	}
	if err := r.bus.Publish(ev); err != nil {
		r.log.Warn("frame event handler failed", log.String("type", ev.Type()), log.Error(err))
	}
}
