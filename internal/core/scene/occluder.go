package scene

import (
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/interact"
)

// Occluder is a static opaque surface: it stops both lasers and hides
// everything behind it from pointing.
type Occluder struct {
	name    string
	pose    geom.Pose
	shape   geom.Shape
	pointed [2]bool
}

func NewOccluder(name string, pose geom.Pose, shape geom.Shape) *Occluder {
	return &Occluder{name: name, pose: pose, shape: shape}
}

// Pointed reports whether controller i pointed at the surface last frame.
func (o *Occluder) Pointed(i controller.Index) bool {
	return i.Valid() && o.pointed[i]
}

func (o *Occluder) Update(f *frame.Frame) frame.Ticket {
	var tickets [2]interact.PointTicket
	for n, i := range controller.Both {
		tickets[n] = f.Interact().Controller(i).PointingLaser(o.pose, o.shape, true)
	}
	return frame.TicketFunc(func(r *frame.Reply) {
		for n, t := range tickets {
			_, o.pointed[n] = t.Resolve(r.Interact)
		}
	})
}

func (o *Occluder) Describe() []View {
	state := "idle"
	if o.Pointed(controller.Primary) || o.Pointed(controller.Secondary) {
		state = "pointed"
	}
	return []View{{Name: o.name, Kind: "occluder", Pose: o.pose, State: state}}
}
