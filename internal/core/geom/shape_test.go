package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forwardRay = Ray{Origin: mgl64.Vec3{}, Dir: mgl64.Vec3{0, 0, -1}}

func TestCuboidCastRay(t *testing.T) {
	box := NewCuboid(0.5, 0.5, 0.5)

	hit, ok := box.CastRay(Translation(0, 0, -5), forwardRay, true)
	require.True(t, ok)
	assert.InDelta(t, 4.5, hit.TOI, 1e-4)
	assert.True(t, hit.Normal.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-6))

	_, ok = box.CastRay(Translation(3, 0, -5), forwardRay, true)
	assert.False(t, ok)

	_, ok = box.CastRay(Translation(0, 0, 5), forwardRay, true)
	assert.False(t, ok, "box behind the ray origin")
}

func TestCuboidCastRayRotated(t *testing.T) {
	box := NewCuboid(1, 0.1, 0.1)
	pose := NewPose(mgl64.Vec3{0, 0, -3}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))

	hit, ok := box.CastRay(pose, forwardRay, true)
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.TOI, 1e-4)
}

func TestCuboidSolidOriginInside(t *testing.T) {
	box := NewCuboid(1, 1, 1)
	hit, ok := box.CastRay(Identity(), forwardRay, true)
	require.True(t, ok)
	assert.Equal(t, 0.0, hit.TOI)
}

func TestCuboidContainsAndSupport(t *testing.T) {
	box := NewCuboid(0.5, 1, 0.5)
	pose := Translation(0, 2, 0)
	assert.True(t, box.ContainsPoint(pose, mgl64.Vec3{0.2, 2.9, -0.4}))
	assert.False(t, box.ContainsPoint(pose, mgl64.Vec3{0, 0.9, 0}))

	low := box.Support(pose, mgl64.Vec3{0, -1, 0})
	assert.InDelta(t, 1.0, low.Y(), 1e-9)
}

func TestBall(t *testing.T) {
	ball := Ball{Radius: 1}
	hit, ok := ball.CastRay(Translation(0, 0, -10), forwardRay, true)
	require.True(t, ok)
	assert.InDelta(t, 9.0, hit.TOI, 1e-9)
	assert.True(t, hit.Normal.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9))

	assert.True(t, ball.ContainsPoint(Translation(0, 0.5, 0), mgl64.Vec3{}))
	assert.InDelta(t, 0.4, ball.Inertia(1)[0], 1e-12)
}

func TestHalfSpace(t *testing.T) {
	floor := HalfSpace{Normal: mgl64.Vec3{0, 1, 0}}
	down := Ray{Origin: mgl64.Vec3{0, 2, 0}, Dir: mgl64.Vec3{0, -1, 0}}

	hit, ok := floor.CastRay(Identity(), down, true)
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.TOI, 1e-12)

	_, ok = floor.CastRay(Identity(), forwardRay.Transform(Translation(0, 1, 0)), true)
	assert.False(t, ok, "parallel ray")
	assert.True(t, floor.ContainsPoint(Identity(), mgl64.Vec3{0, -0.1, 0}))
}
