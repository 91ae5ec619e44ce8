package interact

import (
	"github.com/zeusync/vrscene/internal/core/assert"
	"github.com/zeusync/vrscene/internal/core/controller"
)

// Coordinator owns both controllers' accumulators for one frame.
type Coordinator struct {
	primary   *Accumulator
	secondary *Accumulator
	dt        float64
	frame     uint64
	resolved  bool
}

// NewCoordinator opens frame for querying with the given controller
// snapshots. dt is handed through to the reply unchanged.
func NewCoordinator(frame uint64, primary, secondary controller.Snapshot, dt float64) *Coordinator {
	return &Coordinator{
		primary:   newAccumulator(controller.Primary, frame, primary),
		secondary: newAccumulator(controller.Secondary, frame, secondary),
		dt:        dt,
		frame:     frame,
	}
}

// Frame is the number every ticket of this coordinator is bound to.
func (c *Coordinator) Frame() uint64 {
	return c.frame
}

// Dt is the elapsed time of this frame in seconds.
func (c *Coordinator) Dt() float64 {
	return c.dt
}

// Controller returns the live accumulator for the given controller.
func (c *Coordinator) Controller(i controller.Index) *Accumulator {
	switch i {
	case controller.Primary:
		return c.primary
	case controller.Secondary:
		return c.secondary
	}
	assert.That(false, ErrUnknownIndex, "%s", i)
	return nil
}

// Primary is shorthand for Controller(controller.Primary).
func (c *Coordinator) Primary() *Accumulator {
	return c.primary
}

// Secondary is shorthand for Controller(controller.Secondary).
func (c *Coordinator) Secondary() *Accumulator {
	return c.secondary
}

// Resolved reports whether Resolve has run. No query may be submitted after.
func (c *Coordinator) Resolved() bool {
	return c.resolved
}

// Resolve completes both controllers, enabling every outstanding ticket.
func (c *Coordinator) Resolve() *Reply {
	assert.That(!c.resolved, ErrAlreadyResolved, "frame %d", c.frame)
	c.resolved = true
	return &Reply{
		Primary:   c.primary.Resolve(),
		Secondary: c.secondary.Resolve(),
		Dt:        c.dt,
		frame:     c.frame,
	}
}
