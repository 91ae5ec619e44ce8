package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/manipulate"
	"github.com/zeusync/vrscene/internal/core/physics"
)

type DemoConfig struct {
	Params manipulate.Params
	Ground float64
	// Restitution is the bounciness of every demo body.
	Restitution float64
	// Speed seeds the physics speed slider.
	Speed  float64
	Bodies []BodyOption
}

// PopulateDemo fills reg with a floor, a back wall, a few crates and a ball,
// and the physics speed settings.
func PopulateDemo(reg *Registry, cfg DemoConfig) error {
	floor := NewOccluder("floor", geom.Translation(0, cfg.Ground, 0), geom.HalfSpace{Normal: mgl64.Vec3{0, 1, 0}})
	wall := NewOccluder("wall", geom.Translation(0, cfg.Ground+1.5, -4), geom.NewCuboid(2, 1.5, 0.05))
	if _, err := reg.Add("floor", floor); err != nil {
		return err
	}
	if _, err := reg.Add("wall", wall); err != nil {
		return err
	}

	for i, x := range []float64{-0.5, 0, 0.5} {
		name := fmt.Sprintf("crate-%d", i)
		body := physics.NewBody(name, geom.NewCuboid(0.1, 0.1, 0.1), geom.Translation(x, cfg.Ground+1, -1), 1)
		body.Restitution = cfg.Restitution
		if _, err := reg.Add(name, NewGrabbableBody(body, cfg.Params, cfg.Bodies...)); err != nil {
			return err
		}
	}
	ball := physics.NewBody("ball", geom.Ball{Radius: 0.08}, geom.Translation(0, cfg.Ground+1.5, -2), 0.5)
	ball.Restitution = cfg.Restitution
	if _, err := reg.Add("ball", NewGrabbableBody(ball, cfg.Params, cfg.Bodies...)); err != nil {
		return err
	}

	settings := NewSettings(controller.Secondary, geom.Translation(0.6, cfg.Ground+1.2, -0.5), cfg.Params.GrabThreshold, cfg.Speed)
	_, err := reg.Add("settings", settings)
	return err
}
