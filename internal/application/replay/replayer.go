package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/wallkick/internal/application/system"
)

// Replayer handles input playback from recorded data.
// It satisfies system.InputProvider, so a scene can run from a recording
// exactly as it runs from the keyboard.
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the input for the current frame and advances.
// ok is false once every frame has been played.
func (r *Replayer) Next() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return system.InputState{
		Axis:         fi.AX,
		Jump:         fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
	}, true
}

// GetInput returns the next recorded input, or idle input after the end
func (r *Replayer) GetInput() system.InputState {
	input, _ := r.Next()
	return input
}

// Finished reports whether every frame has been played
func (r *Replayer) Finished() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Data returns the recording being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		Character: "default",
		TickRate:  60,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}
