package entity

import "math"

// Vec2 is a 2D vector in world units. Y points up.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Transform holds the visual placement of a character.
// ScaleX carries the facing sign used to mirror the sprite.
type Transform struct {
	Position Vec2
	ScaleX   float64
	ScaleY   float64
}

// NewTransform creates a transform facing right with unit scale
func NewTransform(pos Vec2) *Transform {
	return &Transform{
		Position: pos,
		ScaleX:   1,
		ScaleY:   1,
	}
}

// SetHorizontalScaleSign mirrors the transform so that sign(ScaleX) == sign.
// The magnitude of ScaleX is preserved. Zero is ignored.
func (t *Transform) SetHorizontalScaleSign(sign int) {
	if sign == 0 {
		return
	}
	mag := math.Abs(t.ScaleX)
	if mag == 0 {
		mag = 1
	}
	if sign < 0 {
		t.ScaleX = -mag
	} else {
		t.ScaleX = mag
	}
}

// FacingSign returns +1 when the transform faces right, -1 otherwise
func (t *Transform) FacingSign() int {
	if t.ScaleX < 0 {
		return -1
	}
	return 1
}

// Bounds is an axis-aligned box given by its center and full size
type Bounds struct {
	Center Vec2
	Size   Vec2
}

// Min returns the bottom-left corner
func (b Bounds) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Size.X/2, Y: b.Center.Y - b.Size.Y/2}
}

// Max returns the top-right corner
func (b Bounds) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Size.X/2, Y: b.Center.Y + b.Size.Y/2}
}
