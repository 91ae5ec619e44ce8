package injector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/vrscene/internal/config"
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/scene"
)

func TestInitializeAppWithDefaults(t *testing.T) {
	app, err := InitializeApp("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), app.Config)
	assert.Equal(t, 7, app.Registry.Len())

	idle := controller.Idle(geom.Identity())
	reply, err := app.Runner.Step(context.Background(), idle, idle, 0.011)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reply.Number)
}

func TestInitializeAppRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interaction:\n  yank_speed: 0\n"), 0o600))
	_, err := InitializeApp(ConfigPath(path))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInitializeAppAppliesPhysicsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrscene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  restitution: 0.9\n  speed: 0.25\n"), 0o600))
	app, err := InitializeApp(ConfigPath(path))
	require.NoError(t, err)

	obj, ok := app.Registry.Get("crate-0")
	require.True(t, ok)
	assert.Equal(t, 0.9, obj.(*scene.GrabbableBody).Body().Restitution)

	idle := controller.Idle(geom.Identity())
	for n := 1; n <= 3; n++ {
		reply, err := app.Runner.Step(context.Background(), idle, idle, 0.01)
		require.NoError(t, err)
		assert.InDelta(t, 0.0025, reply.StepDt, 1e-12, "frame %d", n)
		assert.Equal(t, 0.25, reply.Meta.PhysicsSpeed, "frame %d", n)
	}
}
