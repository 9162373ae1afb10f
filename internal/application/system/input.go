package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultStickDeadzone ignores small stick drift
const DefaultStickDeadzone = 0.2

// InputState is one tick's input snapshot.
// JumpPressed and JumpReleased are edges: true for exactly one tick.
type InputState struct {
	Axis         float64 // Horizontal axis in [-1, 1]
	Jump         bool    // Jump held
	JumpPressed  bool
	JumpReleased bool
}

// InputProvider supplies one snapshot per tick
type InputProvider interface {
	GetInput() InputState
}

// InputSystem reads keyboard and gamepad state from ebiten
type InputSystem struct {
	deadzone float64
	gamepads []ebiten.GamepadID
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{deadzone: DefaultStickDeadzone}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	state := InputState{
		Jump: ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) ||
			ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyW) ||
			inpututil.IsKeyJustReleased(ebiten.KeyArrowUp),
	}

	// First standard gamepad, if any
	stick := 0.0
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		stick = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		button := ebiten.StandardGamepadButtonRightBottom
		state.Jump = state.Jump || ebiten.IsStandardGamepadButtonPressed(id, button)
		state.JumpPressed = state.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, button)
		state.JumpReleased = state.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, button)
		break
	}

	state.Axis = combineAxis(left, right, stick, s.deadzone)
	return state
}

// combineAxis merges digital keys and an analog stick into one axis value.
// Keys win over the stick; opposing keys cancel out.
func combineAxis(left, right bool, stick, deadzone float64) float64 {
	if left != right {
		if left {
			return -1
		}
		return 1
	}
	if left && right {
		return 0
	}
	if math.Abs(stick) < deadzone {
		return 0
	}
	return clampAxis(stick)
}
