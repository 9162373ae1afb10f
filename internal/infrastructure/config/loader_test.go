package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 16.0, cfg.Display.PixelsPerUnit)
	assert.Equal(t, 9.81, cfg.World.Gravity)
	assert.Equal(t, 0.1, cfg.Sensors.GroundProbeDistance)
	assert.Equal(t, 0.2, cfg.Sensors.WallCheckRadius)
	assert.Equal(t, 0.45, cfg.Sensors.WallCheckOffset.X)
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 40, cfg.Size.Width)
	assert.Equal(t, 22, cfg.Size.Height)
	assert.Equal(t, 1.0, cfg.Size.TileSize)
	assert.Equal(t, 3, cfg.PlayerSpawn.X)
	assert.Equal(t, 20, cfg.PlayerSpawn.Y)
	assert.Len(t, cfg.Layers.Collision, 22)

	wall, ok := cfg.TileMapping["|"]
	require.True(t, ok)
	assert.True(t, wall.Solid)
	assert.Equal(t, []string{"wall"}, wall.Layers)

	block, ok := cfg.TileMapping["="]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"ground", "wall"}, block.Layers)
}

func TestLoader_LoadStage_Missing(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	_, err := loader.LoadStage("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read stage nope")
}

func TestLoader_LoadCharacter(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	t.Run("default profile matches stock tuning", func(t *testing.T) {
		cfg, err := loader.LoadCharacter("default")
		require.NoError(t, err)

		assert.Equal(t, "default", cfg.Name)
		assert.Equal(t, DefaultMovementConfig(), cfg.Movement)
	})

	t.Run("partial profile keeps defaults", func(t *testing.T) {
		cfg, err := loader.LoadCharacter("floaty")
		require.NoError(t, err)

		assert.Equal(t, 5.0, cfg.Movement.MovementSpeed)
		assert.Equal(t, 0.2, cfg.Movement.CoyoteTime)
		// Not present in floaty.yaml
		assert.Equal(t, 2.0, cfg.Movement.WallSlideSpeed)
		assert.Equal(t, XY{X: 8, Y: 16}, cfg.Movement.WallJumpPower)
	})
}

func TestParseCharacter(t *testing.T) {
	t.Run("name falls back to file name", func(t *testing.T) {
		cfg, err := ParseCharacter("hero", []byte("movement:\n  jump_velocity: 20\n"))
		require.NoError(t, err)

		assert.Equal(t, "hero", cfg.Name)
		assert.Equal(t, 20.0, cfg.Movement.JumpVelocity)
		assert.Equal(t, 7.0, cfg.Movement.MovementSpeed)
	})

	t.Run("degenerate values are accepted", func(t *testing.T) {
		cfg, err := ParseCharacter("odd", []byte("movement:\n  wall_slide_speed: -1\n  coyote_time: 0\n"))
		require.NoError(t, err)

		assert.Equal(t, -1.0, cfg.Movement.WallSlideSpeed)
		assert.Equal(t, 0.0, cfg.Movement.CoyoteTime)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseCharacter("bad", []byte("movement: [1, 2"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse character bad")
	})
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	require.NotNil(t, cfg.Character)
	assert.Equal(t, DefaultCharacter, cfg.Character.Name)
}

func TestNewFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.json":         {Data: []byte(`{"world": {"gravity": 20}}`)},
		"characters/tiny.yaml": {Data: []byte("movement:\n  movement_speed: 3\n")},
		"stages/broken.json":   {Data: []byte(`{"id": `)},
	}
	loader := NewFSLoader(fsys, "mem")
	assert.Equal(t, "mem", loader.BasePath())

	physics, err := loader.LoadPhysics()
	require.NoError(t, err)
	assert.Equal(t, 20.0, physics.World.Gravity)

	character, err := loader.LoadCharacter("tiny")
	require.NoError(t, err)
	assert.Equal(t, 3.0, character.Movement.MovementSpeed)

	_, err = loader.LoadStage("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse stage broken")

	_, err = loader.LoadAll()
	require.Error(t, err, "default character is missing")
}
