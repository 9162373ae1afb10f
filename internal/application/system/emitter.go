package system

import "fmt"

// Emitter writes controller commands to the physics body and the transform
type Emitter struct {
	body      Body
	transform Transform
}

// NewEmitter creates an emitter. Both collaborators are required.
func NewEmitter(body Body, transform Transform) (*Emitter, error) {
	if body == nil {
		return nil, fmt.Errorf("emitter: body: %w", ErrMissingCollaborator)
	}
	if transform == nil {
		return nil, fmt.Errorf("emitter: transform: %w", ErrMissingCollaborator)
	}
	return &Emitter{body: body, transform: transform}, nil
}

// Apply sets velocity, gravity scale and facing
func (e *Emitter) Apply(cmd Command) {
	e.body.SetVelocity(cmd.Velocity)
	e.body.SetGravityScale(cmd.GravityScale)
	e.transform.SetHorizontalScaleSign(cmd.Facing)
}
