package system

import (
	"fmt"
	"math"

	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

// MovementController decides the character's velocity every tick from input
// and contact sensors. It owns all movement timers and flags.
//
// Grounded, airborne, coyote grace, wall slide and wall jump are not stored
// as a current state: they are re-derived from sensors and timers each tick.
type MovementController struct {
	config  config.MovementConfig
	sensors Sensors
	body    VelocitySource

	facingRight   bool
	isJumping     bool
	coyoteTimer   float64
	isWallSliding bool
	isWallJumping bool

	wallJumpDirection float64
	wallJumpTimer     float64
	wallJumpEnd       DeferredAction

	velocity     entity.Vec2
	gravityScale float64
	state        MovementState
}

// NewMovementController creates a controller facing right with all timers
// at zero. Sensors and body are required.
func NewMovementController(cfg config.MovementConfig, sensors Sensors, body VelocitySource) (*MovementController, error) {
	if sensors == nil {
		return nil, fmt.Errorf("movement controller: sensors: %w", ErrMissingCollaborator)
	}
	if body == nil {
		return nil, fmt.Errorf("movement controller: body: %w", ErrMissingCollaborator)
	}

	return &MovementController{
		config:       cfg,
		sensors:      sensors,
		body:         body,
		facingRight:  true,
		gravityScale: cfg.RisingGravityScale,
		state:        StateAirborne,
	}, nil
}

// Tick advances the controller by dt seconds and returns the command to emit.
// A non-positive dt changes nothing and returns the previous command.
// While a wall jump is active and airborne, the jump's horizontal velocity
// replaces axis*movementSpeed until the jump ends or the character lands.
func (c *MovementController) Tick(input InputState, dt float64) Command {
	if dt <= 0 {
		return c.command()
	}

	axis := clampAxis(input.Axis)
	c.velocity = c.body.Velocity()

	if c.wallJumpEnd.Advance(dt) {
		c.isWallJumping = false
	}

	grounded := c.sensors.IsGrounded()
	onWall := c.sensors.IsOnWall()

	// A wall jump keeps its horizontal push until it ends or the character lands
	if !c.isWallJumping || grounded {
		c.velocity.X = axis * c.config.MovementSpeed
	}

	if input.JumpPressed {
		c.jump(grounded)
	}

	if grounded {
		c.coyoteTimer = c.config.CoyoteTime
	} else {
		c.coyoteTimer = math.Max(0, c.coyoteTimer-dt)
	}

	if c.velocity.Y < 0 {
		c.gravityScale = c.config.FallGravityScale
		c.isJumping = false
	}

	// Early release cuts the rise in half
	if input.JumpReleased && c.velocity.Y > 0 {
		c.velocity.Y /= 2
	}

	c.wallSlide(onWall, grounded, axis)
	c.wallJump(input.JumpPressed, dt)

	if !c.isWallJumping {
		c.flip(axis)
	}

	c.state = deriveState(grounded, c.coyoteTimer, c.isWallSliding, c.isWallJumping)
	return c.command()
}

// jump handles a jump press. The coyote window is spent by any airborne press.
func (c *MovementController) jump(grounded bool) {
	if grounded {
		c.velocity.Y = c.config.JumpVelocity
		c.gravityScale = c.config.RisingGravityScale
		c.isJumping = true
		return
	}

	if c.coyoteTimer > 0 {
		c.velocity.Y = c.config.JumpVelocity
	}
	c.coyoteTimer = 0
}

// wallSlide pins the fall speed while pushing against a wall in the air
func (c *MovementController) wallSlide(onWall, grounded bool, axis float64) {
	c.isWallSliding = onWall && !grounded && axis != 0
	if c.isWallSliding {
		c.velocity.Y = -c.config.WallSlideSpeed
	}
}

// wallJump arms the wall jump window while sliding and fires it on a press
func (c *MovementController) wallJump(jumpPressed bool, dt float64) {
	if c.isWallSliding {
		c.isWallJumping = false
		c.wallJumpDirection = -float64(c.facingSign())
		c.wallJumpTimer = c.config.WallJumpLockoutTime
		c.wallJumpEnd.Cancel()
	} else {
		c.wallJumpTimer = math.Max(0, c.wallJumpTimer-dt)
	}

	if !jumpPressed || c.wallJumpTimer <= 0 {
		return
	}

	c.isWallJumping = true
	c.velocity = entity.Vec2{
		X: c.wallJumpDirection * c.config.WallJumpPower.X,
		Y: c.config.WallJumpPower.Y,
	}
	c.wallJumpTimer = 0
	c.wallJumpEnd.Schedule(c.config.WallJumpDuration)

	// Face away from the wall regardless of the flip suppression
	if float64(c.facingSign()) != c.wallJumpDirection {
		c.facingRight = !c.facingRight
	}
}

// flip turns the character toward the input direction
func (c *MovementController) flip(axis float64) {
	if (c.facingRight && axis < 0) || (!c.facingRight && axis > 0) {
		c.facingRight = !c.facingRight
	}
}

func (c *MovementController) facingSign() int {
	if c.facingRight {
		return 1
	}
	return -1
}

func (c *MovementController) command() Command {
	return Command{
		Velocity:     c.velocity,
		GravityScale: c.gravityScale,
		Facing:       c.facingSign(),
		State:        c.state,
	}
}

// Config returns the tuning the controller was built with
func (c *MovementController) Config() config.MovementConfig {
	return c.config
}

// Velocity returns the velocity decided on the last tick
func (c *MovementController) Velocity() entity.Vec2 {
	return c.velocity
}

// GravityScale returns the gravity multiplier decided on the last tick
func (c *MovementController) GravityScale() float64 {
	return c.gravityScale
}

// Facing returns +1 when facing right, -1 when facing left
func (c *MovementController) Facing() int {
	return c.facingSign()
}

// State returns the movement state derived on the last tick
func (c *MovementController) State() MovementState {
	return c.state
}

func (c *MovementController) CoyoteTimer() float64 {
	return c.coyoteTimer
}

func (c *MovementController) WallJumpTimer() float64 {
	return c.wallJumpTimer
}

func (c *MovementController) WallJumpDirection() float64 {
	return c.wallJumpDirection
}

func (c *MovementController) IsJumping() bool {
	return c.isJumping
}

func (c *MovementController) IsWallSliding() bool {
	return c.isWallSliding
}

func (c *MovementController) IsWallJumping() bool {
	return c.isWallJumping
}

func clampAxis(axis float64) float64 {
	if math.IsNaN(axis) {
		return 0
	}
	return math.Max(-1, math.Min(1, axis))
}
