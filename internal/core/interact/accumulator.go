package interact

import (
	"math"

	"github.com/zeusync/vrscene/internal/core/assert"
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/pkg/sequence"
)

// record is one pending pointing query waiting for occlusion resolution.
type record struct {
	toi     float64
	ordinal int
	stops   bool
}

// nearer orders records by time of impact; equal distances fall back to
// registration order so the earlier query counts as nearer.
func nearer(a, b record) bool {
	assert.That(!math.IsNaN(a.toi) && !math.IsNaN(b.toi), ErrNaNDistance,
		"comparing queries %d and %d", a.ordinal, b.ordinal)
	if a.toi != b.toi {
		return a.toi < b.toi
	}
	return a.ordinal < b.ordinal
}

// slot holds the answer stored for an ordinal; ok is false once voided.
type slot struct {
	hit geom.RayHit
	ok  bool
}

// Accumulator collects one controller's spatial queries during a frame and
// answers them once the frame resolves.
type Accumulator struct {
	index controller.Index
	frame uint64
	data  controller.Snapshot

	laserTOI float64
	queries  *sequence.PriorityQueue[record]
	// hits is indexed by ordinal; ordinal 0 is the permanent miss.
	hits []slot

	pointBlocked bool
	touchBlocked bool
	resolved     bool
}

func newAccumulator(index controller.Index, frame uint64, data controller.Snapshot) *Accumulator {
	return &Accumulator{
		index:    index,
		frame:    frame,
		data:     data,
		laserTOI: math.Inf(1),
		queries:  sequence.NewPriorityQueue(nearer),
		hits:     []slot{{}},
	}
}

// Index is the controller this accumulator belongs to.
func (a *Accumulator) Index() controller.Index {
	return a.index
}

// Data is the controller snapshot this accumulator casts from.
func (a *Accumulator) Data() controller.Snapshot {
	return a.data
}

func (a *Accumulator) mustBeOpen(op string) {
	assert.That(!a.resolved, ErrAlreadyResolved, "%s on %s controller in frame %d", op, a.index, a.frame)
}

// UpdateLaser shortens the visual laser to the given surface when the
// controller ray hits it. No query is registered.
func (a *Accumulator) UpdateLaser(pose geom.Pose, shape geom.Shape) {
	a.mustBeOpen("UpdateLaser")
	if hit, ok := shape.CastRay(pose, a.data.Ray(), true); ok {
		a.LaserTOI(hit.TOI)
	}
}

// LaserTOI folds a raw distance into the laser length. Negative values are ignored.
func (a *Accumulator) LaserTOI(toi float64) {
	a.mustBeOpen("LaserTOI")
	if toi >= 0 && toi < a.laserTOI {
		a.laserTOI = toi
	}
}

// Pointing checks whether the controller points at shape. A stopping shape
// hides every query registered farther along the ray. The answer is only
// known after Resolve.
func (a *Accumulator) Pointing(pose geom.Pose, shape geom.Shape, stops bool) PointTicket {
	a.mustBeOpen("Pointing")
	if a.pointBlocked {
		return a.register(geom.RayHit{}, false, stops)
	}
	hit, ok := shape.CastRay(pose, a.data.Ray(), true)
	return a.register(hit, ok, stops)
}

// PointingLaser is Pointing that also terminates the laser on the shape,
// even if the hit is later occluded or pointing is blocked.
func (a *Accumulator) PointingLaser(pose geom.Pose, shape geom.Shape, stops bool) PointTicket {
	a.mustBeOpen("PointingLaser")
	hit, ok := shape.CastRay(pose, a.data.Ray(), true)
	if ok {
		a.LaserTOI(hit.TOI)
	}
	if a.pointBlocked {
		return a.register(geom.RayHit{}, false, stops)
	}
	return a.register(hit, ok, stops)
}

func (a *Accumulator) register(hit geom.RayHit, ok bool, stops bool) PointTicket {
	t := PointTicket{frame: a.frame, index: a.index}
	if !ok {
		return t
	}
	assert.That(!math.IsNaN(hit.TOI), ErrNaNDistance, "%s controller query in frame %d", a.index, a.frame)
	t.ordinal = len(a.hits)
	a.queries.Enqueue(record{toi: hit.TOI, ordinal: t.ordinal, stops: stops})
	a.hits = append(a.hits, slot{hit: hit, ok: true})
	return t
}

// Touched checks whether the controller origin lies inside shape. A later
// BlockTouch in the same frame still turns the answer false.
func (a *Accumulator) Touched(pose geom.Pose, shape geom.Shape) TouchTicket {
	a.mustBeOpen("Touched")
	return TouchTicket{
		frame:   a.frame,
		index:   a.index,
		touched: !a.touchBlocked && shape.ContainsPoint(pose, a.data.Origin()),
	}
}

// BlockPointing voids every pointing query of this frame, past and future.
func (a *Accumulator) BlockPointing() {
	a.mustBeOpen("BlockPointing")
	a.pointBlocked = true
	a.queries.Clear()
	for i := range a.hits {
		a.hits[i] = slot{}
	}
}

// BlockTouch voids every touch query of this frame, past and future.
func (a *Accumulator) BlockTouch() {
	a.mustBeOpen("BlockTouch")
	a.touchBlocked = true
}

// Block blocks both pointing and touch for the rest of the frame, including
// queries registered before the call.
func (a *Accumulator) Block() {
	a.BlockPointing()
	a.BlockTouch()
}

// Resolve applies occlusion and freezes the accumulator into a reply.
// Records are walked nearest first; everything past the first stopping
// record is voided.
func (a *Accumulator) Resolve() ControllerReply {
	a.mustBeOpen("Resolve")
	a.resolved = true

	for {
		q, ok := a.queries.Dequeue()
		if !ok || q.stops {
			break
		}
	}
	for _, q := range a.queries.Drain() {
		a.hits[q.ordinal] = slot{}
	}

	return ControllerReply{
		frame:        a.frame,
		index:        a.index,
		results:      a.hits,
		LaserTOI:     a.laserTOI,
		Data:         a.data,
		pointBlocked: a.pointBlocked,
		canTouch:     !a.touchBlocked,
	}
}
