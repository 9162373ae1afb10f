package system

import (
	"errors"

	"github.com/younwookim/wallkick/internal/domain/entity"
)

// ErrMissingCollaborator is returned when a controller part is built without
// one of the objects it queries or drives
var ErrMissingCollaborator = errors.New("missing collaborator")

// Sensors answers contact queries against the physics world.
// Both queries are side-effect free and return the same answer when called
// more than once within a tick.
type Sensors interface {
	IsGrounded() bool
	IsOnWall() bool
}

// VelocitySource exposes the body velocity integrated by the physics world
type VelocitySource interface {
	Velocity() entity.Vec2
}

// Body is the physics body handle the emitter drives
type Body interface {
	VelocitySource
	SetVelocity(v entity.Vec2)
	SetGravityScale(scale float64)
}

// Transform receives the facing sign for visual mirroring
type Transform interface {
	SetHorizontalScaleSign(sign int)
}

// Command is the per-tick output of the movement controller
type Command struct {
	Velocity     entity.Vec2
	GravityScale float64
	Facing       int // +1 right, -1 left
	State        MovementState
}
