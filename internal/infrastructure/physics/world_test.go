package physics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

// createTestStage builds a stage from rows where '#' is ground,
// '|' is wall and '=' is both
func createTestStage(rows ...string) *entity.Stage {
	legend := map[rune]entity.Tile{
		'#': {Layers: entity.LayerGround, Solid: true},
		'|': {Layers: entity.LayerWall, Solid: true},
		'=': {Layers: entity.LayerGround | entity.LayerWall, Solid: true},
	}

	tiles := make([][]entity.Tile, len(rows))
	for y, row := range rows {
		tiles[y] = make([]entity.Tile, len(row))
		for x, r := range row {
			tiles[y][x] = legend[r]
		}
	}

	return &entity.Stage{
		Width:    len(rows[0]),
		Height:   len(rows),
		TileSize: 1,
		Tiles:    tiles,
	}
}

// Floor top is at y=1, walls cover x<1 and x>=5, the pillar is x [4,5) y [2,3)
func createTestRoom() *entity.Stage {
	return createTestStage(
		"|....|",
		"|...#|",
		"|....|",
		"######",
	)
}

func createTestWorldConfig() config.WorldConfig {
	return config.WorldConfig{Gravity: 10, Iterations: 10, Substeps: 1, FallLimit: -5}
}

func createTestCharacterShape() config.CharacterShape {
	return config.CharacterShape{Width: 0.8, Height: 1.4, Mass: 1}
}

func createTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(createTestRoom(), createTestWorldConfig())
	require.NoError(t, err)
	return w
}

func TestNewWorld(t *testing.T) {
	t.Run("requires a stage", func(t *testing.T) {
		_, err := NewWorld(nil, createTestWorldConfig())
		assert.True(t, errors.Is(err, ErrMissingCollaborator))
	})

	t.Run("merges identical tiles into rectangles", func(t *testing.T) {
		w := createTestWorld(t)
		// two wall columns, the pillar and the floor
		assert.Equal(t, 4, w.StaticShapeCount())
	})

	t.Run("different layers are not merged", func(t *testing.T) {
		w, err := NewWorld(createTestStage("==##"), createTestWorldConfig())
		require.NoError(t, err)
		assert.Equal(t, 2, w.StaticShapeCount())
	})

	t.Run("collision slop", func(t *testing.T) {
		w := createTestWorld(t)
		assert.Equal(t, 0.1, w.CollisionSlop())

		cfg := createTestWorldConfig()
		cfg.CollisionSlop = 0.05
		w, err := NewWorld(createTestRoom(), cfg)
		require.NoError(t, err)
		assert.Equal(t, 0.05, w.CollisionSlop())
	})

	t.Run("empty stage", func(t *testing.T) {
		w, err := NewWorld(createTestStage("...."), createTestWorldConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, w.StaticShapeCount())
	})
}

func TestWorld_BoxCast(t *testing.T) {
	w := createTestWorld(t)
	size := entity.Vec2{X: 0.8, Y: 1.4}
	down := entity.Vec2{X: 0, Y: -1}

	tests := []struct {
		name      string
		center    entity.Vec2
		direction entity.Vec2
		distance  float64
		layers    entity.Layer
		expected  bool
	}{
		{"resting on the floor", entity.Vec2{X: 2.5, Y: 1.7}, down, 0.1, entity.LayerGround, true},
		{"just above within cast distance", entity.Vec2{X: 2.5, Y: 1.75}, down, 0.1, entity.LayerGround, true},
		{"above the cast distance", entity.Vec2{X: 2.5, Y: 1.9}, down, 0.1, entity.LayerGround, false},
		{"floor is not a wall", entity.Vec2{X: 2.5, Y: 1.7}, down, 0.1, entity.LayerWall, false},
		{"negative distance is zero", entity.Vec2{X: 2.5, Y: 1.75}, down, -1, entity.LayerGround, false},
		{"direction is normalized", entity.Vec2{X: 2.5, Y: 1.75}, entity.Vec2{X: 0, Y: -10}, 0.1, entity.LayerGround, true},
		{"cast up misses the floor", entity.Vec2{X: 2.5, Y: 1.75}, entity.Vec2{X: 0, Y: 1}, 0.1, entity.LayerGround, false},
		{"cast sideways into a wall", entity.Vec2{X: 1.6, Y: 2.5}, entity.Vec2{X: -1, Y: 0}, 0.25, entity.LayerWall, true},
		{"zero direction", entity.Vec2{X: 1.6, Y: 2.5}, entity.Vec2{}, 0.25, entity.LayerWall, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.BoxCast(entity.Bounds{Center: tt.center, Size: size}, tt.direction, tt.distance, tt.layers)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWorld_CircleOverlap(t *testing.T) {
	w := createTestWorld(t)

	assert.True(t, w.CircleOverlap(entity.Vec2{X: 1.1, Y: 2.5}, 0.2, entity.LayerWall))
	assert.True(t, w.CircleOverlap(entity.Vec2{X: 0.5, Y: 2.5}, 0.2, entity.LayerWall), "inside the wall")
	assert.False(t, w.CircleOverlap(entity.Vec2{X: 1.3, Y: 2.5}, 0.2, entity.LayerWall), "outside the radius")
	assert.False(t, w.CircleOverlap(entity.Vec2{X: 1.1, Y: 2.5}, 0.2, entity.LayerGround))
	assert.False(t, w.CircleOverlap(entity.Vec2{X: 1.1, Y: 2.5}, 0, entity.LayerWall))
}

func TestWorld_AddCharacter(t *testing.T) {
	t.Run("own shape is invisible to queries", func(t *testing.T) {
		w := createTestWorld(t)
		body := w.AddCharacter(entity.Vec2{X: 2.5, Y: 3}, createTestCharacterShape())

		assert.False(t, w.CircleOverlap(body.Position(), 0.2, entity.LayerGround|entity.LayerWall))
	})

	t.Run("gravity is scaled per body", func(t *testing.T) {
		w := createTestWorld(t)
		body := w.AddCharacter(entity.Vec2{X: 2.5, Y: 3}, createTestCharacterShape())

		body.SetGravityScale(2)
		w.Step(0.01)
		assert.InDelta(t, -0.2, body.Velocity().Y, 1e-9)

		body.SetVelocity(entity.Vec2{})
		body.SetGravityScale(0)
		w.Step(0.01)
		assert.InDelta(t, 0, body.Velocity().Y, 1e-9)
	})

	t.Run("lands on the floor", func(t *testing.T) {
		w := createTestWorld(t)
		body := w.AddCharacter(entity.Vec2{X: 2.5, Y: 2.5}, createTestCharacterShape())

		for i := 0; i < 120; i++ {
			w.Step(1.0 / 60.0)
		}

		assert.InDelta(t, 1.7, body.Position().Y, 0.15)
		assert.InDelta(t, 0, body.Velocity().Y, 0.5)
	})

	t.Run("teleport stops the body", func(t *testing.T) {
		w := createTestWorld(t)
		body := w.AddCharacter(entity.Vec2{X: 2.5, Y: 2.5}, createTestCharacterShape())
		body.SetVelocity(entity.Vec2{X: 3, Y: 4})

		body.Teleport(entity.Vec2{X: 3, Y: 3})

		assert.Equal(t, entity.Vec2{X: 3, Y: 3}, body.Position())
		assert.Equal(t, entity.Vec2{}, body.Velocity())
		assert.Equal(t, entity.Bounds{Center: entity.Vec2{X: 3, Y: 3}, Size: entity.Vec2{X: 0.8, Y: 1.4}}, body.Bounds())
	})
}
