package interact

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
)

var box = geom.NewCuboid(0.5, 0.5, 0.5)

func at(z float64) geom.Pose {
	return geom.Translation(0, 0, z)
}

func newCoordinator(frame uint64) *Coordinator {
	idle := controller.Idle(geom.Identity())
	return NewCoordinator(frame, idle, idle, 0.01)
}

// fixedShape reports a canned hit, useful for exact and NaN distances.
type fixedShape struct {
	toi    float64
	inside bool
}

func (f fixedShape) CastRay(geom.Pose, geom.Ray, bool) (geom.RayHit, bool) {
	return geom.RayHit{TOI: f.toi, Normal: mgl64.Vec3{0, 0, 1}}, true
}

func (f fixedShape) ContainsPoint(geom.Pose, mgl64.Vec3) bool {
	return f.inside
}

func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, target), "got %v", err)
	}()
	fn()
}

func TestOcclusionFollowsDistanceNotCallOrder(t *testing.T) {
	for _, nearFirst := range []bool{true, false} {
		c := newCoordinator(1)
		acc := c.Controller(controller.Primary)

		var near, far PointTicket
		if nearFirst {
			near = acc.Pointing(at(-5), box, true)
			far = acc.Pointing(at(-10), box, false)
		} else {
			far = acc.Pointing(at(-10), box, false)
			near = acc.Pointing(at(-5), box, true)
		}
		reply := c.Resolve()

		hit, ok := near.Resolve(reply)
		require.True(t, ok)
		assert.InDelta(t, 4.5, hit.TOI, 1e-4)
		hitPoint := acc.Data().Ray().At(hit.TOI)
		assert.InDelta(t, -4.5, hitPoint.Z(), 1e-4)

		_, ok = far.Resolve(reply)
		assert.False(t, ok, "far query hidden behind stopping surface (nearFirst=%v)", nearFirst)
	}
}

func TestNearestStopperVoidsEverythingBehindIt(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()

	transparentNear := acc.Pointing(at(-2), box, false)
	stopperNear := acc.Pointing(at(-4), box, true)
	transparentMid := acc.Pointing(at(-6), box, false)
	stopperFar := acc.Pointing(at(-8), box, true)
	reply := c.Resolve()

	_, ok := transparentNear.Resolve(reply)
	assert.True(t, ok)
	_, ok = stopperNear.Resolve(reply)
	assert.True(t, ok)
	_, ok = transparentMid.Resolve(reply)
	assert.False(t, ok)
	_, ok = stopperFar.Resolve(reply)
	assert.False(t, ok)
}

func TestNoStoppersKeepsEveryHit(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	var tickets []PointTicket
	for _, z := range []float64{-9, -3, -6, -12} {
		tickets = append(tickets, acc.Pointing(at(z), box, false))
	}
	miss := acc.Pointing(geom.Translation(5, 0, -3), box, false)
	reply := c.Resolve()

	for i, tk := range tickets {
		_, ok := tk.Resolve(reply)
		assert.True(t, ok, "query %d", i)
	}
	_, ok := miss.Resolve(reply)
	assert.False(t, ok)
	assert.Equal(t, 0, miss.Ordinal())
}

func TestOrdinalsStrictlyIncrease(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	a := acc.Pointing(at(-3), box, false)
	b := acc.PointingLaser(at(-4), box, false)
	assert.Equal(t, 1, a.Ordinal())
	assert.Equal(t, 2, b.Ordinal())
}

func TestEqualDistanceTieBreaksOnRegistrationOrder(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	first := acc.Pointing(geom.Identity(), fixedShape{toi: 3}, false)
	second := acc.Pointing(geom.Identity(), fixedShape{toi: 3}, true)
	third := acc.Pointing(geom.Identity(), fixedShape{toi: 3}, false)
	reply := c.Resolve()

	_, ok := first.Resolve(reply)
	assert.True(t, ok)
	_, ok = second.Resolve(reply)
	assert.True(t, ok)
	_, ok = third.Resolve(reply)
	assert.False(t, ok)
}

func TestBlockPointingVoidsPastAndFutureQueries(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	before := acc.Pointing(at(-5), box, false)
	acc.BlockPointing()
	after := acc.Pointing(at(-3), box, true)

	other := c.Secondary().Pointing(at(-5), box, false)
	reply := c.Resolve()

	_, ok := before.Resolve(reply)
	assert.False(t, ok)
	_, ok = after.Resolve(reply)
	assert.False(t, ok)
	assert.True(t, reply.Primary.PointBlocked())

	_, ok = other.Resolve(reply)
	assert.True(t, ok, "blocking is per controller")
}

func TestTouchIsGatedByLaterBlock(t *testing.T) {
	c := newCoordinator(1)
	touching := c.Primary().Touched(geom.Identity(), box)
	notTouching := c.Secondary().Touched(at(-5), box)
	c.Primary().BlockTouch()
	reply := c.Resolve()

	assert.False(t, touching.Resolve(reply))
	assert.False(t, notTouching.Resolve(reply))
	assert.False(t, reply.Primary.CanTouch())

	c2 := newCoordinator(2)
	touching = c2.Primary().Touched(geom.Identity(), box)
	assert.True(t, touching.Resolve(c2.Resolve()))
}

func TestBlockVoidsBoth(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	point := acc.Pointing(at(-5), box, false)
	touch := acc.Touched(geom.Identity(), box)
	acc.Block()
	reply := c.Resolve()

	_, ok := point.Resolve(reply)
	assert.False(t, ok)
	assert.False(t, touch.Resolve(reply))
}

func TestLaserTracksNearestSurfaceRegardlessOfOcclusion(t *testing.T) {
	c := newCoordinator(1)
	acc := c.Primary()
	assert.True(t, math.IsInf(newCoordinator(9).Resolve().Primary.LaserTOI, 1))

	acc.UpdateLaser(at(-10), box)
	acc.PointingLaser(at(-7), box, false)
	acc.BlockPointing()
	blocked := acc.PointingLaser(at(-4), box, true)
	acc.LaserTOI(-1)
	reply := c.Resolve()

	assert.InDelta(t, 3.5, reply.Primary.LaserTOI, 1e-4)
	_, ok := blocked.Resolve(reply)
	assert.False(t, ok)
	assert.True(t, math.IsInf(reply.Secondary.LaserTOI, 1))
}

func TestReplyCarriesSnapshotAndDt(t *testing.T) {
	primary := controller.Idle(geom.Translation(0, 1, 0))
	primary.Menu = true
	c := NewCoordinator(4, primary, controller.Idle(geom.Identity()), 0.02)
	reply := c.Resolve()

	assert.Equal(t, uint64(4), reply.Frame())
	assert.Equal(t, 0.02, reply.Dt)
	assert.True(t, reply.Controller(controller.Primary).Data.Menu)
	assert.Equal(t, controller.Secondary, reply.Controller(controller.Secondary).Index())
}

func TestContractViolationsAreFatal(t *testing.T) {
	t.Run("double resolve", func(t *testing.T) {
		c := newCoordinator(1)
		c.Resolve()
		requirePanicIs(t, ErrAlreadyResolved, func() { c.Resolve() })
	})
	t.Run("query after resolve", func(t *testing.T) {
		c := newCoordinator(1)
		c.Resolve()
		requirePanicIs(t, ErrAlreadyResolved, func() { c.Primary().Pointing(at(-5), box, false) })
	})
	t.Run("foreign reply", func(t *testing.T) {
		c := newCoordinator(1)
		tk := c.Primary().Pointing(at(-5), box, false)
		c.Resolve()
		other := newCoordinator(2).Resolve()
		requirePanicIs(t, ErrForeignReply, func() { tk.Resolve(other) })
	})
	t.Run("nil reply", func(t *testing.T) {
		c := newCoordinator(1)
		tk := c.Primary().Touched(geom.Identity(), box)
		requirePanicIs(t, ErrNotResolved, func() { tk.Resolve(nil) })
	})
	t.Run("NaN distance", func(t *testing.T) {
		c := newCoordinator(1)
		requirePanicIs(t, ErrNaNDistance, func() {
			c.Primary().Pointing(geom.Identity(), fixedShape{toi: math.NaN()}, false)
		})
	})
	t.Run("unknown controller", func(t *testing.T) {
		c := newCoordinator(1)
		requirePanicIs(t, ErrUnknownIndex, func() { c.Controller(controller.Index(7)) })
	})
}
