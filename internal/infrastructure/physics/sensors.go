package physics

import (
	"fmt"
	"math"

	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

var down = entity.Vec2{X: 0, Y: -1}

// FacingSource reports which way the character currently faces
type FacingSource interface {
	FacingSign() int
}

// CharacterSensors answers ground and wall contact for one character by
// querying the world. Queries have no side effects.
type CharacterSensors struct {
	world  *World
	body   *CharacterBody
	facing FacingSource
	config config.SensorConfig
}

// NewCharacterSensors creates sensors for body. The facing source mirrors
// the wall check anchor.
func NewCharacterSensors(world *World, body *CharacterBody, facing FacingSource, cfg config.SensorConfig) (*CharacterSensors, error) {
	if world == nil {
		return nil, fmt.Errorf("character sensors: world: %w", ErrMissingCollaborator)
	}
	if body == nil {
		return nil, fmt.Errorf("character sensors: body: %w", ErrMissingCollaborator)
	}
	if facing == nil {
		return nil, fmt.Errorf("character sensors: transform: %w", ErrMissingCollaborator)
	}
	return &CharacterSensors{world: world, body: body, facing: facing, config: cfg}, nil
}

// IsGrounded casts a flat strip at the feet down by the probe distance
// against ground. The strip is inset from both sides by the skin plus twice
// the collision slop, so a block pressed from the side or touching the head
// never counts as ground.
func (s *CharacterSensors) IsGrounded() bool {
	bounds := s.body.Bounds()
	inset := s.config.GroundSkin + 2*s.world.CollisionSlop()

	feet := entity.Bounds{
		Center: entity.Vec2{X: bounds.Center.X, Y: bounds.Min().Y},
		Size:   entity.Vec2{X: math.Max(0, bounds.Size.X-2*inset), Y: 0},
	}
	return s.world.BoxCast(feet, down, s.config.GroundProbeDistance, entity.LayerGround)
}

// IsOnWall checks the circle at the mirrored wall check anchor against walls
func (s *CharacterSensors) IsOnWall() bool {
	anchor, radius := s.WallCheck()
	return s.world.CircleOverlap(anchor, radius, entity.LayerWall)
}

// WallCheck returns the wall probe's world position and radius
func (s *CharacterSensors) WallCheck() (entity.Vec2, float64) {
	offset := entity.Vec2{
		X: s.config.WallCheckOffset.X * float64(s.facing.FacingSign()),
		Y: s.config.WallCheckOffset.Y,
	}
	return s.body.Position().Add(offset), s.config.WallCheckRadius
}
