// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/wallkick/internal/application/replay"
	"github.com/younwookim/wallkick/internal/application/scene"
	"github.com/younwookim/wallkick/internal/application/sim"
	"github.com/younwookim/wallkick/internal/application/state"
	"github.com/younwookim/wallkick/internal/application/system"
	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorGround     = color.RGBA{90, 110, 80, 255}
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorGroundWall = color.RGBA{110, 100, 120, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorFacing     = color.RGBA{240, 240, 240, 255}
	colorWallCheck  = color.RGBA{255, 200, 60, 255}
	colorWallHit    = color.RGBA{255, 80, 80, 255}
)

// CharacterSource loads character profiles for hot reload
type CharacterSource interface {
	LoadCharacter(name string) (*config.CharacterConfig, error)
}

// Options configures optional parts of the scene
type Options struct {
	// Input overrides the keyboard and gamepad. A *replay.Replayer here
	// switches the scene to replay mode.
	Input system.InputProvider

	// RecordPath enables recording; the file is written on F5 and on exit
	RecordPath string

	// Reload delivers names of character profiles changed on disk
	Reload     <-chan string
	Characters CharacterSource
}

// Playing is the main gameplay scene
type Playing struct {
	config    *config.GameConfig
	stageCfg  *config.StageConfig
	stage     *entity.Stage
	state     state.GameState
	sim       *sim.Simulation
	input     system.InputProvider
	replayer  *replay.Replayer
	character string
	screenW   int
	screenH   int
	ppu       float64
	dt        float64

	lastCmd   system.Command
	showDebug bool

	// Hot reload
	reload     <-chan string
	characters CharacterSource

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, stage *entity.Stage, opts Options) (*Playing, error) {
	simulation, err := sim.New(stage, *cfg.Physics, cfg.Character.Movement)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	display := cfg.Physics.Display
	framerate := display.Framerate
	if framerate <= 0 {
		framerate = 60
	}
	ppu := display.PixelsPerUnit
	if ppu <= 0 {
		ppu = 16
	}

	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		stage:          stage,
		state:          state.StatePlaying,
		sim:            simulation,
		input:          opts.Input,
		character:      cfg.Character.Name,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		ppu:            ppu,
		dt:             1.0 / float64(framerate),
		reload:         opts.Reload,
		characters:     opts.Characters,
		recordFilename: opts.RecordPath,
	}

	if p.input == nil {
		p.input = system.NewInputSystem()
	}
	if r, ok := p.input.(*replay.Replayer); ok {
		p.replayer = r
		p.state = state.StateReplaying
		log.Printf("Replaying %d frames of %s/%s", r.TotalFrames(), r.Data().Stage, r.Data().Character)
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" && p.replayer == nil {
		p.recorder = replay.NewRecorder(stageCfg.ID, p.character, framerate)
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.showDebug = !p.showDebug
	}

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		// F5: Save recording manually
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
			p.saveRecording()
		}
		p.step(p.input.GetInput())
	case state.StateReplaying:
		p.stepReplay()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateReplayFinished:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.restart()
		}
	}

	return nil, nil // nil = stay on this scene
}

// step runs one fixed tick with the given input
func (p *Playing) step(input system.InputState) {
	if !p.state.Simulating() {
		return
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	respawns := p.sim.Respawns()
	p.lastCmd = p.sim.Update(input, p.dt)
	if p.sim.Respawns() != respawns {
		log.Printf("Fell out of stage %s, respawned (%d)", p.stageCfg.ID, p.sim.Respawns())
	}
}

func (p *Playing) stepReplay() {
	input, ok := p.replayer.Next()
	if !ok {
		p.state = state.StateReplayFinished
		log.Printf("Replay finished at frame %d, position (%.2f, %.2f)",
			p.sim.Frame(), p.sim.Body().Position().X, p.sim.Body().Position().Y)
		return
	}
	p.step(input)
}

// applyReloads drains pending profile changes without blocking
func (p *Playing) applyReloads() {
	if p.reload == nil || p.characters == nil {
		return
	}

	for {
		select {
		case name, ok := <-p.reload:
			if !ok {
				p.reload = nil
				return
			}
			if name != p.character {
				continue
			}
			// Recordings carry no tuning changes, so they must replay with one profile
			if p.recorder != nil || p.replayer != nil {
				log.Printf("Ignoring reload of %s while recording or replaying", name)
				continue
			}
			p.reloadCharacter(name)
		default:
			return
		}
	}
}

func (p *Playing) reloadCharacter(name string) {
	character, err := p.characters.LoadCharacter(name)
	if err != nil {
		log.Printf("Failed to reload character %s: %v", name, err)
		return
	}
	if err := p.sim.Reconfigure(character.Movement); err != nil {
		log.Printf("Failed to apply character %s: %v", name, err)
		return
	}
	p.config.Character = character
	log.Printf("Character %s reloaded", name)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// restart replays the recording from the first frame
func (p *Playing) restart() {
	if p.replayer == nil {
		return
	}

	simulation, err := sim.New(p.stage, *p.config.Physics, p.config.Character.Movement)
	if err != nil {
		log.Printf("Failed to restart replay: %v", err)
		return
	}
	p.sim = simulation
	p.replayer.Reset()
	p.lastCmd = system.Command{}
	p.state = state.StateReplaying
}

// camera returns the world position of the bottom-left screen corner
func (p *Playing) camera() entity.Vec2 {
	viewW := float64(p.screenW) / p.ppu
	viewH := float64(p.screenH) / p.ppu
	pos := p.sim.Transform().Position

	clamp := func(v, limit float64) float64 {
		return math.Max(0, math.Min(v, limit))
	}
	return entity.Vec2{
		X: clamp(pos.X-viewW/2, p.stage.WorldWidth()-viewW),
		Y: clamp(pos.Y-viewH/2, p.stage.WorldHeight()-viewH),
	}
}

// toScreen converts a world point to screen pixels; screen Y grows downward
func (p *Playing) toScreen(v, cam entity.Vec2) (float32, float32) {
	x := (v.X - cam.X) * p.ppu
	y := float64(p.screenH) - (v.Y-cam.Y)*p.ppu
	return float32(x), float32(y)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.camera()
	p.drawTiles(screen, cam)
	p.drawPlayer(screen, cam)
	if p.showDebug {
		p.drawWallCheck(screen, cam)
	}

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nESC to resume")
	case state.StateReplayFinished:
		p.drawOverlay(screen, "REPLAY FINISHED\n\nR to watch again")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	size := float32(p.stage.TileSize * p.ppu)
	for ty := 0; ty < p.stage.Height; ty++ {
		for tx := 0; tx < p.stage.Width; tx++ {
			tile := p.stage.GetTile(tx, ty)
			if !tile.Solid {
				continue
			}

			var c color.Color
			switch tile.Layers {
			case entity.LayerGround:
				c = colorGround
			case entity.LayerWall:
				c = colorWall
			default:
				c = colorGroundWall
			}

			b := p.stage.TileBounds(tx, ty)
			x, y := p.toScreen(entity.Vec2{X: b.Min().X, Y: b.Max().Y}, cam)
			if x+size < 0 || y+size < 0 || x > float32(p.screenW) || y > float32(p.screenH) {
				continue
			}
			vector.FillRect(screen, x, y, size, size, c, false)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam entity.Vec2) {
	b := p.sim.Body().Bounds()
	x, y := p.toScreen(entity.Vec2{X: b.Min().X, Y: b.Max().Y}, cam)
	w := float32(b.Size.X * p.ppu)
	h := float32(b.Size.Y * p.ppu)
	vector.FillRect(screen, x, y, w, h, colorPlayer, false)

	// Eye on the facing side, mirrored by the transform
	t := p.sim.Transform()
	eye := entity.Vec2{X: b.Center.X + float64(t.FacingSign())*b.Size.X*0.25, Y: b.Center.Y + b.Size.Y*0.3}
	ex, ey := p.toScreen(eye, cam)
	vector.FillRect(screen, ex-1, ey-1, 3, 3, colorFacing, false)
}

// drawWallCheck shows the wall probe where the sensors query it
func (p *Playing) drawWallCheck(screen *ebiten.Image, cam entity.Vec2) {
	anchor, radius := p.sim.Sensors().WallCheck()
	cx, cy := p.toScreen(anchor, cam)

	c := colorWallCheck
	if p.sim.Controller().IsWallSliding() {
		c = colorWallHit
	}
	vector.StrokeCircle(screen, cx, cy, float32(radius*p.ppu), 1, c, true)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	if !p.showDebug {
		ebitenutil.DebugPrint(screen, "TAB: debug")
		return
	}

	c := p.sim.Controller()
	v := c.Velocity()
	debugText := fmt.Sprintf("%s  %s\nvel %.2f, %.2f  grav %.1f\ncoyote %.2f  walljump %.2f\nframe %d  shapes %d",
		p.lastCmd.State, p.character, v.X, v.Y, c.GravityScale(),
		c.CoyoteTimer(), c.WallJumpTimer(), p.sim.Frame(), p.sim.World().StaticShapeCount())
	if p.recorder != nil {
		debugText += fmt.Sprintf("\nREC %d", p.recorder.FrameCount())
	}
	if p.replayer != nil {
		debugText += fmt.Sprintf("\nREPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	overlay := color.RGBA{0, 0, 0, 150}
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), overlay, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	log.Printf("Entering stage %s with character %s", p.stageCfg.ID, p.character)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Simulation returns the running simulation (for testing)
func (p *Playing) Simulation() *sim.Simulation {
	return p.sim
}

// LastCommand returns the command emitted on the last tick
func (p *Playing) LastCommand() system.Command {
	return p.lastCmd
}

// Recorder returns the active recorder, nil when not recording
func (p *Playing) Recorder() *replay.Recorder {
	return p.recorder
}
