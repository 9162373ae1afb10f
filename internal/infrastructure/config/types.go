package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display   DisplayConfig  `json:"display"`
	World     WorldConfig    `json:"world"`
	Character CharacterShape `json:"character"`
	Sensors   SensorConfig   `json:"sensors"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight"`
	Scale         int     `json:"scale"`
	Framerate     int     `json:"framerate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit"`
}

// WorldConfig configures the physics backend that integrates velocities
type WorldConfig struct {
	Gravity    float64 `json:"gravity"`    // Magnitude, applied along -Y
	Iterations int     `json:"iterations"` // Solver iterations per step
	Substeps   int     `json:"substeps"`   // Physics steps per frame
	FallLimit  float64 `json:"fallLimit"`  // Respawn when the body drops below this Y

	// CollisionSlop is how far shapes may overlap before the solver pushes
	// them apart. Zero keeps Chipmunk's default of 0.1.
	CollisionSlop float64 `json:"collisionSlop"`
}

// CharacterShape is the collision box of the controlled character
type CharacterShape struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Mass     float64 `json:"mass"`
	Friction float64 `json:"friction"`
}

// SensorConfig configures the ground and wall probes
type SensorConfig struct {
	GroundProbeDistance float64 `json:"groundProbeDistance"`
	GroundSkin          float64 `json:"groundSkin"` // Horizontal inset so side contact is not ground
	WallCheckOffset     XY      `json:"wallCheckOffset"`
	WallCheckRadius     float64 `json:"wallCheckRadius"`
}

// XY is a plain pair used in config files
type XY struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MovementConfig tunes the movement controller. It is copied into the
// controller at construction and never changes afterwards.
//
// Values are not validated: negative speeds or zero timers simply switch
// the matching feature off or make it instantaneous.
type MovementConfig struct {
	MovementSpeed       float64 `json:"movementSpeed" yaml:"movement_speed"`
	JumpVelocity        float64 `json:"jumpVelocity" yaml:"jump_velocity"`
	CoyoteTime          float64 `json:"coyoteTime" yaml:"coyote_time"`
	RisingGravityScale  float64 `json:"risingGravityScale" yaml:"rising_gravity_scale"`
	FallGravityScale    float64 `json:"fallGravityScale" yaml:"fall_gravity_scale"`
	WallSlideSpeed      float64 `json:"wallSlideSpeed" yaml:"wall_slide_speed"`
	WallJumpLockoutTime float64 `json:"wallJumpLockoutTime" yaml:"wall_jump_lockout_time"` // Grace to wall jump after leaving a wall
	WallJumpDuration    float64 `json:"wallJumpDuration" yaml:"wall_jump_duration"`        // Input override after a wall jump
	WallJumpPower       XY      `json:"wallJumpPower" yaml:"wall_jump_power"`
}

// DefaultMovementConfig returns the stock tuning
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MovementSpeed:       7,
		JumpVelocity:        16,
		CoyoteTime:          0.1,
		RisingGravityScale:  7,
		FallGravityScale:    10,
		WallSlideSpeed:      2,
		WallJumpLockoutTime: 0.2,
		WallJumpDuration:    0.4,
		WallJumpPower:       XY{X: 8, Y: 16},
	}
}

// CharacterConfig is the root of characters/<name>.yaml
type CharacterConfig struct {
	Name     string         `yaml:"name"`
	Movement MovementConfig `yaml:"movement"`
}
