package interact

import (
	"github.com/zeusync/vrscene/internal/core/assert"
	"github.com/zeusync/vrscene/internal/core/controller"
)

// ControllerReply is the frozen answer set of one controller for one frame.
type ControllerReply struct {
	frame   uint64
	index   controller.Index
	results []slot

	// LaserTOI is the length of the visual laser, +Inf when nothing was hit.
	LaserTOI float64
	// Data is the snapshot the queries were evaluated against.
	Data controller.Snapshot

	pointBlocked bool
	canTouch     bool
}

func (r *ControllerReply) Index() controller.Index {
	return r.index
}

func (r *ControllerReply) PointBlocked() bool {
	return r.pointBlocked
}

func (r *ControllerReply) CanTouch() bool {
	return r.canTouch
}

func (r *ControllerReply) lookup(ordinal int) slot {
	if r.pointBlocked || ordinal <= 0 || ordinal >= len(r.results) {
		return slot{}
	}
	return r.results[ordinal]
}

// Reply is the frozen interaction state of a frame: both controllers plus dt.
type Reply struct {
	Primary   ControllerReply
	Secondary ControllerReply
	Dt        float64
	frame     uint64
}

func (r *Reply) Frame() uint64 {
	return r.frame
}

// Controller returns the reply of the given logical controller.
func (r *Reply) Controller(i controller.Index) *ControllerReply {
	switch i {
	case controller.Primary:
		return &r.Primary
	case controller.Secondary:
		return &r.Secondary
	}
	assert.That(false, ErrUnknownIndex, "%s", i)
	return nil
}
