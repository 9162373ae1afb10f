package replay

// Version is written into every recording
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	AX float64 `json:"ax,omitempty"` // Horizontal axis
	J  bool    `json:"j,omitempty"`  // Jump held
	JP bool    `json:"jp,omitempty"` // JumpPressed
	JR bool    `json:"jr,omitempty"` // JumpReleased
}

// ReplayData contains all data needed to replay a game session.
// The simulation is deterministic, so stage, character and inputs are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Character string       `json:"character"`
	TickRate  int          `json:"tickRate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
