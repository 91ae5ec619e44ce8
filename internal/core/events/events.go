// Package events names the notifications the scene publishes on the bus.
package events

import (
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/events/bus"
	"github.com/zeusync/vrscene/internal/core/manipulate"
)

const (
	TypeGrabbed       = "manipulation.grabbed"
	TypeYanked        = "manipulation.yanked"
	TypeReleased      = "manipulation.released"
	TypeFrameResolved = "frame.resolved"
)

// Manipulation is published when an object changes manipulation kind.
type Manipulation struct {
	Frame  uint64
	Object string
	By     controller.Index
	From   manipulate.State
	To     manipulate.State
}

// FrameResolved is published once per frame after every ticket is consumed.
type FrameResolved struct {
	Frame    uint64
	Dt       float64
	StepDt   float64
	Objects  int
	LaserTOI [2]float64
}

// ManipulationType picks the event type for a transition, or "" when the
// kind did not change.
func ManipulationType(from, to manipulate.State) string {
	if from.Kind == to.Kind {
		return ""
	}
	switch to.Kind {
	case manipulate.KindGrabbed:
		return TypeGrabbed
	case manipulate.KindYanked:
		return TypeYanked
	default:
		return TypeReleased
	}
}

// NewManipulation wraps m in a bus event, or returns nil when nothing changed.
func NewManipulation(m Manipulation) bus.Event {
	typ := ManipulationType(m.From, m.To)
	if typ == "" {
		return nil
	}
	if holder, ok := m.To.Holder(); ok {
		m.By = holder
	} else if holder, ok := m.From.Holder(); ok {
		m.By = holder
	}
	return bus.NewEvent(typ, m.Object, m, nil)
}

func NewFrameResolved(f FrameResolved) bus.Event {
	return bus.NewEvent(TypeFrameResolved, "frame", f, nil)
}
