package controller

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/observability/log"
)

func TestSnapshotRay(t *testing.T) {
	s := Idle(geom.NewPose(mgl64.Vec3{1, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})))
	ray := s.Ray()
	assert.True(t, ray.Origin.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12))
	assert.True(t, ray.Dir.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9))
}

func TestSnapshotPressed(t *testing.T) {
	assert.True(t, Snapshot{Trigger: 0.7, TriggerDelta: 0.5}.Pressed(0.5))
	assert.False(t, Snapshot{Trigger: 0.7, TriggerDelta: 0.1}.Pressed(0.5), "already held")
	assert.False(t, Snapshot{Trigger: 0.3, TriggerDelta: 0.3}.Pressed(0.5))
}

func TestTrackerDerivesDeltas(t *testing.T) {
	tr := NewTracker(Primary, 0.1, nil)
	t0 := time.Unix(100, 0)

	first := tr.Update(Sample{Pose: geom.Translation(0, 1, 0), Trigger: 0.2, Connected: true, Time: t0})
	assert.Equal(t, 0.0, first.Dt)
	assert.True(t, first.PoseDelta.ApproxEqual(geom.Identity(), 1e-12))

	second := tr.Update(Sample{
		Pose:      geom.NewPose(mgl64.Vec3{0.1, 1, 0}, mgl64.QuatRotate(0.05, mgl64.Vec3{0, 0, 1})),
		Trigger:   0.9,
		Connected: true,
		Time:      t0.Add(50 * time.Millisecond),
	})
	assert.InDelta(t, 0.05, second.Dt, 1e-9)
	assert.InDelta(t, 0.7, second.TriggerDelta, 1e-12)
	assert.True(t, second.LinVel.ApproxEqualThreshold(mgl64.Vec3{2, 0, 0}, 1e-9))
	assert.True(t, second.AngVel.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9))
	assert.True(t, second.PoseDelta.Mul(first.Pose).ApproxEqual(second.Pose, 1e-9))

	third := tr.Update(Sample{Pose: second.Pose, Connected: true, Time: t0.Add(2 * time.Second)})
	assert.Equal(t, 0.1, third.Dt, "dt is clamped to the max step")
}

func TestTrackerHoldsStaleStateAndWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tr := NewTracker(Secondary, 0.1, log.Wrap(zap.New(core), log.LevelDebug))
	t0 := time.Unix(0, 0)

	live := tr.Update(Sample{Pose: geom.Translation(1, 2, 3), Trigger: 1, Connected: true, Time: t0})
	for i := 1; i <= 3; i++ {
		stale := tr.Update(Sample{Connected: false, Time: t0.Add(time.Duration(i) * time.Second)})
		assert.Equal(t, live, stale)
	}

	warnings := logs.FilterMessage("controller disconnected, holding last known state")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, "secondary", warnings.All()[0].ContextMap()["controller"])

	tr.Update(Sample{Pose: geom.Translation(1, 2, 3), Connected: true, Time: t0.Add(4 * time.Second)})
	assert.Equal(t, 1, logs.FilterMessage("controller reconnected").Len())
}

func TestMockSourceIsDeterministic(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewMockSource(start, 4*time.Second)

	early := m.Sample(Primary, start.Add(time.Second))
	late := m.Sample(Primary, start.Add(3*time.Second))
	assert.False(t, early.Menu)
	assert.True(t, late.Menu)
	again := m.Sample(Primary, start.Add(5*time.Second))
	assert.True(t, early.Pose.ApproxEqual(again.Pose, 1e-9))
	assert.Equal(t, early.Menu, again.Menu)

	reach := m.Sample(Secondary, start.Add(2*time.Second))
	assert.Equal(t, 1.0, reach.Trigger)
	assert.InDelta(t, -0.6, reach.Pose.Translation.Z(), 1e-9)
}
