// Package manipulate turns resolved controller interactions into pickups of
// scene objects: contact grabs and at-range yanks.
package manipulate

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
)

type Kind uint8

const (
	KindFree Kind = iota
	KindGrabbed
	KindYanked
)

func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindGrabbed:
		return "grabbed"
	case KindYanked:
		return "yanked"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// State is the manipulation state of one object. By is meaningful for
// Grabbed and Yanked, Progress only for Yanked.
type State struct {
	Kind     Kind
	By       controller.Index
	Progress float64
}

// Free is the resting state: physics owns the object.
func Free() State {
	return State{Kind: KindFree}
}

// GrabbedBy is the state of an object rigidly following controller i.
func GrabbedBy(i controller.Index) State {
	return State{Kind: KindGrabbed, By: i}
}

// YankedBy is the state of an object flying toward controller i. progress
// runs from 0 at the start of the yank to 1 on arrival.
func YankedBy(i controller.Index, progress float64) State {
	return State{Kind: KindYanked, By: i, Progress: progress}
}

func (s State) IsFree() bool {
	return s.Kind == KindFree
}

// Holder returns the controller holding the object, if any.
func (s State) Holder() (controller.Index, bool) {
	if s.Kind == KindFree {
		return 0, false
	}
	return s.By, true
}

func (s State) String() string {
	switch s.Kind {
	case KindGrabbed:
		return fmt.Sprintf("grabbed(%s)", s.By)
	case KindYanked:
		return fmt.Sprintf("yanked(%s, %.2f)", s.By, s.Progress)
	default:
		return s.Kind.String()
	}
}

// Intention tells the physics layer how an object is being driven this frame.
type Intention uint8

const (
	IntentFree Intention = iota
	// IntentMove is an object flying towards the hand.
	IntentMove
	// IntentManipulate is an object held in the hand.
	IntentManipulate
)

func (i Intention) String() string {
	switch i {
	case IntentMove:
		return "move"
	case IntentManipulate:
		return "manipulate"
	default:
		return "free"
	}
}

// Fixed is the kinematic override of a held object for one frame.
type Fixed struct {
	By   controller.Index
	Pose geom.Pose
	// InvOffset is the object pose relative to the holding controller.
	InvOffset geom.Pose
	LinVel    mgl64.Vec3
	AngVel    mgl64.Vec3
}

type MoveData struct {
	Intent Intention
	// Fixed is nil when the object is left to physics.
	Fixed *Fixed
}
