package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplaying
	StateReplayFinished
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayFinished:
		return "ReplayFinished"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the simulation advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateReplaying
}
