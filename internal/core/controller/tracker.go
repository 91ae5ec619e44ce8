package controller

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/observability/log"
)

// Sample is a raw reading from the device tracking layer.
type Sample struct {
	Pose      geom.Pose
	Trigger   float64
	Menu      bool
	Connected bool
	Time      time.Time
}

// Tracker turns consecutive samples of one controller into frame snapshots.
// While the device is disconnected the last snapshot is returned unchanged.
type Tracker struct {
	index   Index
	maxStep float64
	logger  log.Log

	last         Snapshot
	lastTime     time.Time
	started      bool
	disconnected bool
}

func NewTracker(index Index, maxStep float64, logger log.Log) *Tracker {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Tracker{
		index:   index,
		maxStep: maxStep,
		logger:  logger.With(log.String("controller", index.String())),
		last:    Snapshot{Pose: geom.Identity(), PoseDelta: geom.Identity()},
	}
}

func (t *Tracker) Index() Index {
	return t.index
}

func (t *Tracker) Last() Snapshot {
	return t.last
}

func (t *Tracker) Update(s Sample) Snapshot {
	if !s.Connected {
		if !t.disconnected {
			t.disconnected = true
			t.logger.Warn("controller disconnected, holding last known state")
		}
		return t.last
	}
	if t.disconnected {
		t.disconnected = false
		t.logger.Info("controller reconnected")
	}

	dt := 0.0
	if t.started {
		dt = s.Time.Sub(t.lastTime).Seconds()
		if dt < 0 {
			dt = 0
		}
		if t.maxStep > 0 && dt > t.maxStep {
			dt = t.maxStep
		}
	}

	prev := t.last
	if !t.started {
		prev.Pose = s.Pose
		prev.Trigger = s.Trigger
	}

	next := Snapshot{
		Pose:         s.Pose,
		PoseDelta:    s.Pose.Mul(prev.Pose.Inverse()),
		Trigger:      s.Trigger,
		TriggerDelta: s.Trigger - prev.Trigger,
		Menu:         s.Menu,
		Dt:           dt,
		Connected:    true,
	}
	if dt > 0 {
		next.LinVel = s.Pose.Translation.Sub(prev.Pose.Translation).Mul(1 / dt)
		next.AngVel = geom.ScaledAxis(s.Pose.Rotation.Mul(prev.Pose.Rotation.Inverse())).Mul(1 / dt)
	} else {
		next.LinVel = mgl64.Vec3{}
		next.AngVel = mgl64.Vec3{}
	}

	t.last = next
	t.lastTime = s.Time
	t.started = true
	return next
}
