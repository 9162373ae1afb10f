package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/wallkick/internal/domain/entity"
)

// CharacterBody is the Chipmunk body of the controlled character.
// It satisfies the movement system's Body interface.
type CharacterBody struct {
	body         *cp.Body
	shape        *cp.Shape
	size         entity.Vec2
	gravityScale float64
}

// Velocity returns the integrated velocity
func (b *CharacterBody) Velocity() entity.Vec2 {
	v := b.body.Velocity()
	return entity.Vec2{X: v.X, Y: v.Y}
}

// SetVelocity overwrites the body velocity
func (b *CharacterBody) SetVelocity(v entity.Vec2) {
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

// SetGravityScale sets the multiplier applied to world gravity from the next step on
func (b *CharacterBody) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *CharacterBody) GravityScale() float64 {
	return b.gravityScale
}

// Position returns the center of the body
func (b *CharacterBody) Position() entity.Vec2 {
	p := b.body.Position()
	return entity.Vec2{X: p.X, Y: p.Y}
}

// Bounds returns the collision box in world space
func (b *CharacterBody) Bounds() entity.Bounds {
	return entity.Bounds{Center: b.Position(), Size: b.size}
}

// Teleport moves the body and stops it
func (b *CharacterBody) Teleport(pos entity.Vec2) {
	b.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	b.body.SetVelocityVector(cp.Vector{})
}
