package system

// MovementState is a read-only projection of the controller's sensors and
// timers. It is recomputed every tick and never drives behavior.
type MovementState int

const (
	StateGrounded MovementState = iota
	StateAirborne
	StateCoyoteGrace
	StateWallSliding
	StateWallJumping
)

// String returns the string representation of the movement state
func (s MovementState) String() string {
	switch s {
	case StateGrounded:
		return "Grounded"
	case StateAirborne:
		return "Airborne"
	case StateCoyoteGrace:
		return "CoyoteGrace"
	case StateWallSliding:
		return "WallSliding"
	case StateWallJumping:
		return "WallJumping"
	default:
		return "Unknown"
	}
}

// deriveState picks the state shown for the given tick results
func deriveState(grounded bool, coyoteTimer float64, wallSliding, wallJumping bool) MovementState {
	switch {
	case wallSliding:
		return StateWallSliding
	case wallJumping && !grounded:
		return StateWallJumping
	case grounded:
		return StateGrounded
	case coyoteTimer > 0:
		return StateCoyoteGrace
	default:
		return StateAirborne
	}
}
