// Package config loads the runtime configuration of the vrscene binary.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/vrscene/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log         LogConfig         `yaml:"log"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Interaction InteractionConfig `yaml:"interaction"`
	Feed        FeedConfig        `yaml:"feed"`
	Debug       DebugConfig       `yaml:"debug"`
	Sentry      SentryConfig      `yaml:"sentry"`
	Mock        MockConfig        `yaml:"mock"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format  string   `yaml:"format"`
	Outputs []string `yaml:"outputs"`
}

type PhysicsConfig struct {
	Gravity [3]float64 `yaml:"gravity"`
	Ground  float64    `yaml:"ground"`
	// MaxStep caps a single physics step in seconds.
	MaxStep float64 `yaml:"max_step"`
	// Speed is the initial physics speed multiplier; the settings slider
	// takes over from there.
	Speed       float64 `yaml:"speed"`
	Restitution float64 `yaml:"restitution"`
	// ReleaseSpinCorrection converts grip spin to free-body spin on release.
	ReleaseSpinCorrection bool `yaml:"release_spin_correction"`
}

type InteractionConfig struct {
	// YankSpeed is the flight time of a yank in seconds.
	YankSpeed     float64 `yaml:"yank_speed"`
	GrabThreshold float64 `yaml:"grab_threshold"`
	// YankOffset is where a yanked object settles, relative to the hand.
	YankOffset [3]float64 `yaml:"yank_offset"`
}

type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type DebugConfig struct {
	// StatsAddr enables the runtime stats viewer when set.
	StatsAddr string `yaml:"stats_addr"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type MockConfig struct {
	Enabled bool `yaml:"enabled"`
	// Period is one full cycle of the scripted controller motion.
	Period time.Duration `yaml:"period"`
	// FrameRate of the frame loop when driven by the mock source.
	FrameRate float64 `yaml:"frame_rate"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Physics: PhysicsConfig{
			Gravity:     [3]float64{0, -5, 0},
			MaxStep:     0.02,
			Speed:       1,
			Restitution: 0.3,
		},
		Interaction: InteractionConfig{
			YankSpeed:     1,
			GrabThreshold: 0.5,
			YankOffset:    [3]float64{0, 0, -0.1},
		},
		Feed: FeedConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8090",
		},
		Mock: MockConfig{
			Enabled:   true,
			Period:    4 * time.Second,
			FrameRate: 90,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func LoadYAML(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if !positive(c.Physics.MaxStep) {
		return fmt.Errorf("%w: physics.max_step must be positive, got %v", ErrInvalidConfig, c.Physics.MaxStep)
	}
	if !(c.Physics.Speed >= 0 && c.Physics.Speed <= 1) {
		return fmt.Errorf("%w: physics.speed must lie in [0, 1], got %v", ErrInvalidConfig, c.Physics.Speed)
	}
	if !(c.Physics.Restitution >= 0 && c.Physics.Restitution <= 1) {
		return fmt.Errorf("%w: physics.restitution must lie in [0, 1], got %v", ErrInvalidConfig, c.Physics.Restitution)
	}
	if !positive(c.Interaction.YankSpeed) {
		return fmt.Errorf("%w: interaction.yank_speed must be positive, got %v", ErrInvalidConfig, c.Interaction.YankSpeed)
	}
	if !(c.Interaction.GrabThreshold > 0 && c.Interaction.GrabThreshold < 1) {
		return fmt.Errorf("%w: interaction.grab_threshold must lie in (0, 1), got %v", ErrInvalidConfig, c.Interaction.GrabThreshold)
	}
	if c.Feed.Enabled && c.Feed.Addr == "" {
		return fmt.Errorf("%w: feed.addr is required when the feed is enabled", ErrInvalidConfig)
	}
	if c.Mock.Enabled && (c.Mock.Period <= 0 || !positive(c.Mock.FrameRate)) {
		return fmt.Errorf("%w: mock.period and mock.frame_rate must be positive", ErrInvalidConfig)
	}
	return nil
}

// LogLevel is the parsed log level; Validate guarantees it is known.
func (c Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
