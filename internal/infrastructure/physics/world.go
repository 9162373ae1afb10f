package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

const (
	allCategories        = ^uint(0)
	defaultCollisionSlop = 0.1
)

// ErrMissingCollaborator is returned when a physics object is built without
// the world, body or transform it depends on
var ErrMissingCollaborator = errors.New("missing collaborator")

// World owns the Chipmunk space and the static shapes of a stage.
// Tile layers become shape categories so queries can select ground or wall.
type World struct {
	space   *cp.Space
	stage   *entity.Stage
	statics []*cp.Shape
	slop    float64
}

// NewWorld builds a space with gravity along -Y and one static box per
// merged rectangle of solid tiles
func NewWorld(stage *entity.Stage, cfg config.WorldConfig) (*World, error) {
	if stage == nil {
		return nil, fmt.Errorf("physics world: stage: %w", ErrMissingCollaborator)
	}

	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: -cfg.Gravity})

	slop := cfg.CollisionSlop
	if slop <= 0 {
		slop = defaultCollisionSlop
	}
	space.SetCollisionSlop(slop)

	w := &World{space: space, stage: stage, slop: slop}
	w.buildStaticShapes()
	return w, nil
}

// Space returns the underlying Chipmunk space
func (w *World) Space() *cp.Space {
	return w.space
}

// Stage returns the stage the world was built from
func (w *World) Stage() *entity.Stage {
	return w.stage
}

// CollisionSlop returns how deep resting shapes may overlap
func (w *World) CollisionSlop() float64 {
	return w.slop
}

// StaticShapeCount returns how many static boxes cover the stage
func (w *World) StaticShapeCount() int {
	return len(w.statics)
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// BoxCast reports whether bounds, swept by distance along direction, touches
// any shape on the given layers. Touching edges count as a hit. A zero
// direction or negative distance tests the bounds where they are.
func (w *World) BoxCast(bounds entity.Bounds, direction entity.Vec2, distance float64, layers entity.Layer) bool {
	var delta entity.Vec2
	if l := direction.Len(); l > 0 && distance > 0 {
		delta = direction.Scale(distance / l)
	}

	lo, hi := bounds.Min(), bounds.Max()
	bb := cp.BB{
		L: lo.X + math.Min(0, delta.X),
		B: lo.Y + math.Min(0, delta.Y),
		R: hi.X + math.Max(0, delta.X),
		T: hi.Y + math.Max(0, delta.Y),
	}

	hit := false
	w.space.BBQuery(bb, queryFilter(layers), func(shape *cp.Shape, data interface{}) {
		hit = true
	}, nil)
	return hit
}

// CircleOverlap reports whether a circle overlaps any shape on the given layers
func (w *World) CircleOverlap(center entity.Vec2, radius float64, layers entity.Layer) bool {
	if radius <= 0 {
		return false
	}
	info := w.space.PointQueryNearest(cp.Vector{X: center.X, Y: center.Y}, radius, queryFilter(layers))
	return info != nil && info.Shape != nil && info.Distance < radius
}

// AddCharacter creates the dynamic box driven by the movement controller.
// Rotation is locked and gravity is scaled per body.
func (w *World) AddCharacter(pos entity.Vec2, shape config.CharacterShape) *CharacterBody {
	mass := shape.Mass
	if mass <= 0 {
		mass = 1
	}

	cb := &CharacterBody{
		size:         entity.Vec2{X: shape.Width, Y: shape.Height},
		gravityScale: 1,
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetAngle(0)
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(cb.gravityScale), damping, dt)
	})

	box := cp.NewBox(body, shape.Width, shape.Height, 0)
	box.SetFriction(shape.Friction)
	box.SetFilter(cp.ShapeFilter{
		Categories: uint(entity.LayerCharacter),
		Mask:       uint(entity.LayerGround | entity.LayerWall),
	})

	w.space.AddBody(body)
	w.space.AddShape(box)

	cb.body = body
	cb.shape = box
	return cb
}

// buildStaticShapes greedily covers runs of identical solid tiles with
// rectangles, widest first, so the character does not snag on tile seams
func (w *World) buildStaticShapes() {
	stage := w.stage
	processed := make([][]bool, stage.Height)
	for y := range processed {
		processed[y] = make([]bool, stage.Width)
	}

	same := func(x, y int, tile entity.Tile) bool {
		return !processed[y][x] && stage.GetTile(x, y) == tile
	}

	for y := 0; y < stage.Height; y++ {
		for x := 0; x < stage.Width; x++ {
			tile := stage.GetTile(x, y)
			if processed[y][x] || !tile.Solid {
				processed[y][x] = true
				continue
			}

			width := 1
			for x+width < stage.Width && same(x+width, y, tile) {
				width++
			}

			height := 1
		heightLoop:
			for y+height < stage.Height {
				for xi := x; xi < x+width; xi++ {
					if !same(xi, y+height, tile) {
						break heightLoop
					}
				}
				height++
			}

			for yy := y; yy < y+height; yy++ {
				for xx := x; xx < x+width; xx++ {
					processed[yy][xx] = true
				}
			}

			// Row 0 is the top of the stage, world Y grows upward
			ts := stage.TileSize
			bb := cp.BB{
				L: float64(x) * ts,
				B: float64(stage.Height-y-height) * ts,
				R: float64(x+width) * ts,
				T: float64(stage.Height-y) * ts,
			}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetFriction(1)
			shape.SetFilter(cp.ShapeFilter{
				Categories: uint(tile.Layers),
				Mask:       allCategories,
			})
			w.space.AddShape(shape)
			w.statics = append(w.statics, shape)
		}
	}
}

func queryFilter(layers entity.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{
		Categories: allCategories,
		Mask:       uint(layers),
	}
}
