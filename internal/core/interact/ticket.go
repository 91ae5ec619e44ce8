package interact

import (
	"github.com/zeusync/vrscene/internal/core/assert"
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
)

// PointTicket is the deferred answer of a pointing query. The zero ordinal
// never hits.
type PointTicket struct {
	frame   uint64
	index   controller.Index
	ordinal int
}

func (t PointTicket) Controller() controller.Index {
	return t.index
}

// Ordinal is the registration number of the query, 0 when nothing was registered.
func (t PointTicket) Ordinal() int {
	return t.ordinal
}

// Resolve looks the query up in the frozen reply. It reports false when the
// shape was missed, occluded or pointing was blocked.
func (t PointTicket) Resolve(reply *Reply) (geom.RayHit, bool) {
	checkReply(reply, t.frame)
	s := reply.Controller(t.index).lookup(t.ordinal)
	return s.hit, s.ok
}

// TouchTicket is the deferred answer of a containment query.
type TouchTicket struct {
	frame   uint64
	index   controller.Index
	touched bool
}

func (t TouchTicket) Controller() controller.Index {
	return t.index
}

func (t TouchTicket) Resolve(reply *Reply) bool {
	checkReply(reply, t.frame)
	return t.touched && reply.Controller(t.index).canTouch
}

func checkReply(reply *Reply, frame uint64) {
	assert.That(reply != nil, ErrNotResolved, "frame %d", frame)
	assert.That(reply.frame == frame, ErrForeignReply, "ticket from frame %d, reply from frame %d", frame, reply.frame)
}
