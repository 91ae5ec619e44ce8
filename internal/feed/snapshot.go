package feed

import (
	"math"

	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/scene"
)

// Object is one drawable object in a snapshot. Rotation is x, y, z, w.
type Object struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
	State    string     `json:"state,omitempty"`
	Value    float64    `json:"value,omitempty"`
}

// Snapshot is what a renderer needs to draw one frame. A laser length of
// -1 means the laser hit nothing.
type Snapshot struct {
	Frame        uint64     `json:"frame"`
	PhysicsSpeed float64    `json:"physics_speed"`
	Laser        [2]float64 `json:"laser"`
	Objects      []Object   `json:"objects"`
	// Events are the manipulation changes since the previous snapshot.
	Events []Event `json:"events,omitempty"`
}

// Build assembles the snapshot of a resolved frame.
func Build(reply *frame.Reply, views []scene.View) Snapshot {
	snap := Snapshot{
		Frame:        reply.Number,
		PhysicsSpeed: reply.Meta.PhysicsSpeed,
		Laser: [2]float64{
			laserLength(reply.Interact.Primary.LaserTOI),
			laserLength(reply.Interact.Secondary.LaserTOI),
		},
		Objects: make([]Object, 0, len(views)),
	}
	for _, v := range views {
		q := v.Pose.Rotation
		snap.Objects = append(snap.Objects, Object{
			ID:       v.ID.String(),
			Name:     v.Name,
			Kind:     v.Kind,
			Position: [3]float64(v.Pose.Translation),
			Rotation: [4]float64{q.V[0], q.V[1], q.V[2], q.W},
			State:    v.State,
			Value:    v.Value,
		})
	}
	return snap
}

func laserLength(toi float64) float64 {
	if math.IsInf(toi, 0) || math.IsNaN(toi) {
		return -1
	}
	return toi
}
