package controller

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/vrscene/internal/core/geom"
)

// MockSource scripts both controllers for running without a headset.
// The primary hand sweeps its ray across the scene and holds menu during the
// second half of each cycle; the secondary hand reaches forward and squeezes
// the trigger while extended.
type MockSource struct {
	start  time.Time
	period time.Duration
}

func NewMockSource(start time.Time, period time.Duration) *MockSource {
	if period <= 0 {
		period = 8 * time.Second
	}
	return &MockSource{start: start, period: period}
}

func (m *MockSource) Sample(i Index, now time.Time) Sample {
	phase := math.Mod(now.Sub(m.start).Seconds()/m.period.Seconds(), 1)
	angle := 2 * math.Pi * phase

	switch i {
	case Primary:
		yaw := 0.4 * math.Sin(angle)
		return Sample{
			Pose: geom.NewPose(
				mgl64.Vec3{0.25, 1.2, 0},
				mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}),
			),
			Menu:      phase >= 0.5,
			Connected: true,
			Time:      now,
		}
	default:
		reach := 0.5 - 0.5*math.Cos(angle)
		trigger := 0.0
		if reach > 0.8 {
			trigger = 1
		}
		return Sample{
			Pose:      geom.Translation(-0.25, 1.0, -0.6*reach),
			Trigger:   trigger,
			Connected: true,
			Time:      now,
		}
	}
}
