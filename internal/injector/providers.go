package injector

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/wire"

	"github.com/zeusync/vrscene/internal/config"
	"github.com/zeusync/vrscene/internal/core/events/bus"
	"github.com/zeusync/vrscene/internal/core/frame"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/manipulate"
	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/internal/core/physics"
	"github.com/zeusync/vrscene/internal/core/scene"
	"github.com/zeusync/vrscene/internal/feed"
)

// ConfigPath is the YAML file the App is built from; empty means defaults.
type ConfigPath string

// App is everything the binary runs.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Bus      bus.EventBus
	Registry *scene.Registry
	Runner   *frame.Runner
	Feed     *feed.Server
	Journal  *feed.Journal
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideBus,
	ProvideParams,
	ProvideRegistry,
	ProvideRunner,
	ProvideFeed,
	ProvideJournal,
	wire.Struct(new(App), "*"),
)

func ProvideConfig(path ConfigPath) (config.Config, error) {
	return config.Load(string(path))
}

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	return log.New(cfg.LogLevel(), log.Options{Encoding: cfg.Log.Format, Outputs: cfg.Log.Outputs})
}

func ProvideBus(logger log.Log) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.LogObserver{Log: logger.Named("bus")})
	return b
}

func ProvideParams(cfg config.Config) (manipulate.Params, error) {
	o := cfg.Interaction.YankOffset
	params := manipulate.Params{
		InvYankOffset: geom.Translation(o[0], o[1], o[2]),
		YankSpeed:     cfg.Interaction.YankSpeed,
		GrabThreshold: cfg.Interaction.GrabThreshold,
	}
	return params, params.Validate()
}

func ProvideRegistry(cfg config.Config, params manipulate.Params, b bus.EventBus, logger log.Log) (*scene.Registry, error) {
	reg := scene.NewRegistry()
	err := scene.PopulateDemo(reg, scene.DemoConfig{
		Params:      params,
		Ground:      cfg.Physics.Ground,
		Restitution: cfg.Physics.Restitution,
		Speed:       cfg.Physics.Speed,
		Bodies: []scene.BodyOption{
			scene.WithEventBus(b),
			scene.WithLogger(logger.Named("scene")),
			scene.WithReleaseSpin(cfg.Physics.ReleaseSpinCorrection),
		},
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func ProvideRunner(cfg config.Config, reg *scene.Registry, b bus.EventBus, logger log.Log) (*frame.Runner, error) {
	world := physics.WorldConfig{
		Gravity: mgl64.Vec3(cfg.Physics.Gravity),
		Ground:  cfg.Physics.Ground,
	}
	return frame.NewRunner(frame.RunnerConfig{
		MaxStep:   cfg.Physics.MaxStep,
		Meta:      frame.Meta{PhysicsSpeed: cfg.Physics.Speed},
		NewEngine: func() physics.Engine { return physics.NewWorld(world) },
	}, reg, b, logger)
}

func ProvideFeed(cfg config.Config, logger log.Log) *feed.Server {
	return feed.NewServer(cfg.Feed.Addr, logger)
}

func ProvideJournal(b bus.EventBus) (*feed.Journal, error) {
	return feed.NewJournal(b)
}
