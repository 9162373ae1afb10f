package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallkick/internal/domain/entity"
)

func TestNewEmitter(t *testing.T) {
	_, err := NewEmitter(nil, entity.NewTransform(entity.Vec2{}))
	assert.True(t, errors.Is(err, ErrMissingCollaborator))

	_, err = NewEmitter(&fakeBody{}, nil)
	assert.True(t, errors.Is(err, ErrMissingCollaborator))
}

func TestEmitter_Apply(t *testing.T) {
	body := &fakeBody{}
	transform := entity.NewTransform(entity.Vec2{X: 1, Y: 2})
	transform.ScaleX = 1.5

	e, err := NewEmitter(body, transform)
	require.NoError(t, err)

	e.Apply(Command{Velocity: entity.Vec2{X: -8, Y: 16}, GravityScale: 10, Facing: -1})

	assert.Equal(t, entity.Vec2{X: -8, Y: 16}, body.velocity)
	assert.Equal(t, 10.0, body.gravityScale)
	assert.Equal(t, -1.5, transform.ScaleX, "magnitude is preserved")
	assert.Equal(t, -1, transform.FacingSign())

	e.Apply(Command{Facing: 1})
	assert.Equal(t, 1.5, transform.ScaleX)
}
