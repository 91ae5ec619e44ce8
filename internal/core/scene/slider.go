package scene

import (
	"math"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/manipulate"
)

type sliderMode uint8

const (
	sliderUnheld sliderMode = iota
	// sliderMoving carries the whole slider with the hand.
	sliderMoving
	// sliderSliding drags the knob along the rail.
	sliderSliding
)

// Knob and end cap sizes as fractions of the slider length.
const (
	knobFrac = 0.05
	capFrac  = 0.03 + knobFrac
)

// Slider is a value in [0, 1] set by grabbing its knob. Grabbing the rail
// away from the knob moves the slider instead. The rail runs along the
// local z axis.
type Slider struct {
	Value     float64
	Pose      geom.Pose
	Thickness float64
	Length    float64

	name  string
	index controller.Index
	grab  *manipulate.Grabbable
	mode  sliderMode
}

func NewSlider(name string, index controller.Index, pose geom.Pose, thickness, length, value, threshold float64) *Slider {
	return &Slider{
		Value:     value,
		Pose:      pose,
		Thickness: thickness,
		Length:    length,
		name:      name,
		index:     index,
		grab:      manipulate.NewGrabbable(threshold),
	}
}

func (s *Slider) shape() geom.Cuboid {
	r := s.Thickness / 2
	return geom.NewCuboid(r, r, s.Length/2)
}

func (s *Slider) railLength() float64 {
	return s.Length * (1 - 2*capFrac)
}

// knobOffset is the knob position along the rail in slider space.
func (s *Slider) knobOffset() float64 {
	return (s.Value - 0.5) * s.railLength()
}

func (s *Slider) Update(f *frame.Frame) frame.Ticket {
	gt := s.grab.Update(f.Interact().Controller(s.index), s.Pose, s.shape())
	inv := s.Pose.Inverse()

	return frame.TicketFunc(func(r *frame.Reply) {
		state := s.grab.Apply(gt, r.Interact)
		con := r.Interact.Controller(s.index).Data

		along := inv.TransformPoint(con.Origin()).Z()
		current := s.knobOffset()

		if !state.Held() {
			s.mode = sliderUnheld
			return
		}
		switch s.mode {
		case sliderUnheld:
			if math.Abs(current-along) < knobFrac*s.Length {
				s.mode = sliderSliding
			} else {
				s.mode = sliderMoving
			}
		case sliderMoving:
			s.Pose = con.Pose.Mul(state.Offset)
		case sliderSliding:
			s.Value = math.Max(0, math.Min(1, along/s.railLength()+0.5))
		}
	})
}

func (s *Slider) Describe() []View {
	state := "idle"
	switch s.mode {
	case sliderMoving:
		state = "moving"
	case sliderSliding:
		state = "sliding"
	}
	return []View{
		{Name: s.name, Kind: "slider", Pose: s.Pose, State: state, Value: s.Value},
		{Name: s.name + ".knob", Kind: "knob", Pose: s.Pose.Mul(geom.Translation(0, 0, s.knobOffset())), State: state, Value: s.Value},
	}
}

// Settings is the physics speed control: a speed slider whose length is set
// by a second slider.
type Settings struct {
	Speed  *Slider
	Length *Slider
}

// NewSettings starts the speed slider at speed, clamped to [0, 1]. From the
// first consumed frame on, the slider value is the physics speed.
func NewSettings(index controller.Index, pose geom.Pose, threshold, speed float64) *Settings {
	lengthPose := pose.Mul(geom.Translation(0.15, 0, 0))
	speed = math.Max(0, math.Min(1, speed))
	return &Settings{
		Speed:  NewSlider("settings.speed", index, pose, 0.05, 0.5, speed, threshold),
		Length: NewSlider("settings.length", index, lengthPose, 0.05, 0.5, 0.5, threshold),
	}
}

func (s *Settings) Update(f *frame.Frame) frame.Ticket {
	s.Speed.Length = 0.2 + 0.6*s.Length.Value
	speed := s.Speed.Update(f)
	length := s.Length.Update(f)
	return frame.TicketFunc(func(r *frame.Reply) {
		speed.Consume(r)
		r.Meta.PhysicsSpeed = s.Speed.Value
		length.Consume(r)
	})
}

func (s *Settings) Describe() []View {
	return append(s.Speed.Describe(), s.Length.Describe()...)
}
