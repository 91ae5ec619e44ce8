package scene

import (
	"github.com/zeusync/vrscene/internal/core/events"
	"github.com/zeusync/vrscene/internal/core/events/bus"
	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/manipulate"
	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/internal/core/physics"
)

// GrabbableBody is a physics body that can be grabbed or yanked. While held
// its pose and velocities follow the hand; otherwise physics drives it.
type GrabbableBody struct {
	body        physics.Body
	params      manipulate.Params
	mov         manipulate.Moveable
	releaseSpin bool
	intent      manipulate.Intention

	bus bus.EventBus
	log log.Log
}

type BodyOption func(*GrabbableBody)

func WithEventBus(b bus.EventBus) BodyOption {
	return func(g *GrabbableBody) { g.bus = b }
}

func WithLogger(l log.Log) BodyOption {
	return func(g *GrabbableBody) { g.log = l }
}

// WithReleaseSpin converts the hand's spin into free-body spin on release.
func WithReleaseSpin(enabled bool) BodyOption {
	return func(g *GrabbableBody) { g.releaseSpin = enabled }
}

func NewGrabbableBody(body physics.Body, params manipulate.Params, opts ...BodyOption) *GrabbableBody {
	g := &GrabbableBody{body: body, params: params, log: log.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(log.String("object", body.Name))
	return g
}

func (g *GrabbableBody) Body() physics.Body {
	return g.body
}

func (g *GrabbableBody) State() manipulate.State {
	return g.mov.State()
}

func (g *GrabbableBody) Intent() manipulate.Intention {
	return g.intent
}

func (g *GrabbableBody) Update(f *frame.Frame) frame.Ticket {
	handle := f.Physics().SubmitBody(g.body)
	mt := g.mov.Update(f.Interact(), g.body.Pose, g.body.Shape, g.params)
	prev := g.mov.State()

	return frame.TicketFunc(func(r *frame.Reply) {
		data := g.mov.Apply(mt, r.Interact)
		g.body = handle.Resolve(r.Physics)
		g.intent = data.Intent

		next := g.mov.State()
		switch {
		case data.Fixed != nil:
			g.body.Pose = data.Fixed.Pose
			g.body.LinVel = data.Fixed.LinVel
			g.body.AngVel = data.Fixed.AngVel
		case g.releaseSpin && prev.Kind == manipulate.KindGrabbed:
			grip := r.Interact.Controller(prev.By).Data.Origin()
			g.body.LinVel, g.body.AngVel = physics.ReleaseSpin(g.body, grip, g.body.LinVel, g.body.AngVel)
		}

		g.notify(r.Number, prev, next)
	})
}

func (g *GrabbableBody) notify(number uint64, prev, next manipulate.State) {
	ev := events.NewManipulation(events.Manipulation{
		Frame:  number,
		Object: g.body.Name,
		From:   prev,
		To:     next,
	})
	if ev == nil {
		return
	}
	g.log.Debug("manipulation changed",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.Frame(number),
	)
	if g.bus == nil {
		return
	}
	if err := g.bus.Publish(ev); err != nil {
		g.log.Warn("manipulation event handler failed", log.Error(err))
	}
}

func (g *GrabbableBody) Describe() []View {
	return []View{{
		Name:  g.body.Name,
		Kind:  "body",
		Pose:  g.body.Pose,
		State: g.mov.State().String(),
	}}
}
