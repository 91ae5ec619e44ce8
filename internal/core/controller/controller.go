// Package controller describes the per-frame state of the two tracked hand
// controllers as seen by the interaction layer.
package controller

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/vrscene/internal/core/geom"
)

// Index names one of the two logical controllers.
type Index uint8

const (
	Primary Index = iota
	Secondary
)

// Both lists the controllers in evaluation order.
var Both = [2]Index{Primary, Secondary}

func (i Index) String() string {
	switch i {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("controller(%d)", uint8(i))
	}
}

func (i Index) Valid() bool {
	return i == Primary || i == Secondary
}

// Snapshot is one controller's input for a single frame. It is captured once
// by the tracking layer and never modified afterwards.
type Snapshot struct {
	Pose geom.Pose
	// PoseDelta maps last frame's pose onto this frame's pose: Pose = PoseDelta * previous.
	PoseDelta    geom.Pose
	Trigger      float64
	TriggerDelta float64
	Menu         bool
	LinVel       mgl64.Vec3
	AngVel       mgl64.Vec3
	Dt           float64
	Connected    bool
}

// Idle returns a connected controller resting at pose with nothing pressed.
func Idle(pose geom.Pose) Snapshot {
	return Snapshot{
		Pose:      pose,
		PoseDelta: geom.Identity(),
		Connected: true,
	}
}

func (s Snapshot) Origin() mgl64.Vec3 {
	return s.Pose.Translation
}

func (s Snapshot) Pointing() mgl64.Vec3 {
	return s.Pose.TransformVector(geom.Forward).Normalize()
}

func (s Snapshot) Ray() geom.Ray {
	return geom.Ray{Origin: s.Origin(), Dir: s.Pointing()}
}

// Pressed reports whether the trigger crossed threshold during this frame.
func (s Snapshot) Pressed(threshold float64) bool {
	return s.Trigger > threshold && s.Trigger-s.TriggerDelta < threshold
}
