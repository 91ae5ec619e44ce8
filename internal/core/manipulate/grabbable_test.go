package manipulate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/interact"
)

func grabFrame(frame uint64, g *Grabbable, pose geom.Pose, hand controller.Snapshot) GrabState {
	ic := interact.NewCoordinator(frame, hand, idle(), 0.01)
	tk := g.Update(ic.Primary(), pose, box)
	return g.Apply(tk, ic.Resolve())
}

func TestGrabbableNeedsPressWhileTouching(t *testing.T) {
	g := NewGrabbable(DefaultGrabThreshold)

	// Trigger already down when the hand arrives: no press edge.
	hand := withTrigger(idle(), 0.9)
	hand.TriggerDelta = 0
	assert.Equal(t, GrabPointed, grabFrame(1, g, geom.Identity(), hand).Kind)

	hand = withTrigger(idle(), 0.9)
	state := grabFrame(2, g, geom.Translation(0, 0, -0.25), hand)
	assert.Equal(t, GrabHeld, state.Kind)
	assert.True(t, state.Offset.ApproxEqual(geom.Translation(0, 0, -0.25), 1e-9))
}

func TestGrabbablePointedAndFree(t *testing.T) {
	g := NewGrabbable(DefaultGrabThreshold)
	assert.Equal(t, GrabPointed, grabFrame(1, g, geom.Translation(0, 0, -3), idle()).Kind)
	assert.Equal(t, GrabFree, grabFrame(2, g, geom.Translation(3, 0, -3), idle()).Kind)
}

func TestGrabbableHoldsUntilRelease(t *testing.T) {
	g := NewGrabbable(DefaultGrabThreshold)
	grabFrame(1, g, geom.Identity(), withTrigger(idle(), 0.9))
	assert.True(t, g.State().Held())

	hand := withTrigger(idle(), 0.9)
	hand.TriggerDelta = 0
	hand.AngVel = mgl64.Vec3{0, 0, 1}
	state := grabFrame(2, g, geom.Translation(5, 5, 5), hand)
	assert.True(t, state.Held())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, state.AngVel)
	assert.True(t, state.Offset.ApproxEqual(geom.Identity(), 1e-9), "offset is kept from the grab frame")

	state = grabFrame(3, g, geom.Identity(), withTrigger(idle(), 0.1))
	assert.Equal(t, GrabFree, state.Kind, "release frame blocks pointing")
	assert.Equal(t, GrabPointed, grabFrame(4, g, geom.Identity(), idle()).Kind)
}

func TestGrabbableBlocksWhileHeld(t *testing.T) {
	g := NewGrabbable(DefaultGrabThreshold)
	grabFrame(1, g, geom.Identity(), withTrigger(idle(), 0.9))

	hand := withTrigger(idle(), 0.9)
	hand.TriggerDelta = 0
	ic := interact.NewCoordinator(2, hand, idle(), 0.01)
	tk := g.Update(ic.Primary(), geom.Identity(), box)
	behind := ic.Primary().Pointing(geom.Translation(0, 0, -4), box, false)
	reply := ic.Resolve()

	g.Apply(tk, reply)
	_, ok := behind.Resolve(reply)
	assert.False(t, ok)
	assert.InDelta(t, 0, reply.Primary.LaserTOI, 1e-9)
}
