package physics

import (
	"math"

	"github.com/zeusync/vrscene/internal/core/assert"
)

// Coordinator collects the bodies of one frame and steps the engine once.
type Coordinator struct {
	engine   Engine
	frame    uint64
	indices  []int
	resolved bool
}

// NewCoordinator collects bodies for frame into engine, which should be
// empty. The engine is stepped once by Resolve.
func NewCoordinator(frame uint64, engine Engine) *Coordinator {
	return &Coordinator{engine: engine, frame: frame}
}

// Frame is the number every handle of this coordinator is bound to.
func (c *Coordinator) Frame() uint64 {
	return c.frame
}

func (c *Coordinator) Resolved() bool {
	return c.resolved
}

// SubmitBody adds body to this frame's world. The handle yields the body's
// post-step state once the frame resolves.
func (c *Coordinator) SubmitBody(body Body) BodyHandle {
	assert.That(!c.resolved, ErrAlreadyResolved, "submit %q in frame %d", body.Name, c.frame)
	c.indices = append(c.indices, c.engine.AddBody(body))
	return BodyHandle{frame: c.frame, slot: len(c.indices)}
}

// Resolve steps the engine by dt and snapshots every submitted body.
func (c *Coordinator) Resolve(dt float64) *Reply {
	assert.That(!c.resolved, ErrAlreadyResolved, "frame %d", c.frame)
	assert.That(dt >= 0 && !math.IsInf(dt, 0), ErrInvalidStep, "dt %v in frame %d", dt, c.frame)
	c.resolved = true

	c.engine.Step(dt)
	bodies := make([]Body, len(c.indices))
	for i, idx := range c.indices {
		bodies[i] = c.engine.Body(idx)
	}
	return &Reply{frame: c.frame, dt: dt, bodies: bodies}
}

// Reply holds the post-step bodies of one frame in submission order.
type Reply struct {
	frame  uint64
	dt     float64
	bodies []Body
}

func (r *Reply) Frame() uint64 {
	return r.frame
}

// Dt is the duration the world was stepped by.
func (r *Reply) Dt() float64 {
	return r.dt
}

func (r *Reply) Bodies() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// BodyHandle refers to a submitted body. The zero handle is invalid.
type BodyHandle struct {
	frame uint64
	slot  int
}

func (h BodyHandle) Valid() bool {
	return h.slot > 0
}

func (h BodyHandle) Resolve(reply *Reply) Body {
	assert.That(reply != nil, ErrNotResolved, "frame %d", h.frame)
	assert.That(reply.frame == h.frame, ErrForeignReply, "handle from frame %d, reply from frame %d", h.frame, reply.frame)
	assert.That(h.slot > 0 && h.slot <= len(reply.bodies), ErrUnknownBody, "slot %d in frame %d", h.slot, h.frame)
	return reply.bodies[h.slot-1]
}
