package sim

import (
	"fmt"

	"github.com/younwookim/wallkick/internal/application/system"
	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
	"github.com/younwookim/wallkick/internal/infrastructure/physics"
)

// Simulation runs one character on one stage without rendering.
// Each Update ticks the movement controller, emits its command and steps
// the physics world.
type Simulation struct {
	physics  config.PhysicsConfig
	movement config.MovementConfig
	stage    *entity.Stage

	world      *physics.World
	body       *physics.CharacterBody
	transform  *entity.Transform
	sensors    *physics.CharacterSensors
	controller *system.MovementController
	emitter    *system.Emitter

	frame    int
	respawns int
}

// New builds the physics world for stage and places the character at spawn
func New(stage *entity.Stage, physicsCfg config.PhysicsConfig, movement config.MovementConfig) (*Simulation, error) {
	world, err := physics.NewWorld(stage, physicsCfg.World)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	spawn := stage.Spawn()
	body := world.AddCharacter(spawn, physicsCfg.Character)
	transform := entity.NewTransform(spawn)

	sensors, err := physics.NewCharacterSensors(world, body, transform, physicsCfg.Sensors)
	if err != nil {
		return nil, fmt.Errorf("failed to create sensors: %w", err)
	}

	emitter, err := system.NewEmitter(body, transform)
	if err != nil {
		return nil, fmt.Errorf("failed to create emitter: %w", err)
	}

	s := &Simulation{
		physics:   physicsCfg,
		stage:     stage,
		world:     world,
		body:      body,
		transform: transform,
		sensors:   sensors,
		emitter:   emitter,
	}
	if err := s.Reconfigure(movement); err != nil {
		return nil, err
	}
	body.SetGravityScale(movement.RisingGravityScale)
	return s, nil
}

// Reconfigure replaces the movement controller with one built from cfg.
// Controller state starts over; the body keeps its position and velocity.
func (s *Simulation) Reconfigure(cfg config.MovementConfig) error {
	controller, err := system.NewMovementController(cfg, s.sensors, s.body)
	if err != nil {
		return fmt.Errorf("failed to create movement controller: %w", err)
	}
	s.controller = controller
	s.movement = cfg
	s.transform.SetHorizontalScaleSign(controller.Facing())
	return nil
}

// Update advances the simulation by dt seconds. A non-positive dt returns
// the last command without stepping.
func (s *Simulation) Update(input system.InputState, dt float64) system.Command {
	cmd := s.controller.Tick(input, dt)
	if dt <= 0 {
		return cmd
	}
	s.emitter.Apply(cmd)

	substeps := s.physics.World.Substeps
	if substeps < 1 {
		substeps = 1
	}
	step := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		s.world.Step(step)
	}

	s.transform.Position = s.body.Position()
	if s.transform.Position.Y < s.physics.World.FallLimit {
		s.Respawn()
	}

	s.frame++
	return cmd
}

// Respawn puts the character back at the stage spawn with a fresh controller
func (s *Simulation) Respawn() {
	spawn := s.stage.Spawn()
	s.body.Teleport(spawn)
	s.transform.Position = spawn
	s.respawns++
	// Rebuilding from the same config cannot fail once construction succeeded
	_ = s.Reconfigure(s.movement)
}

func (s *Simulation) Controller() *system.MovementController {
	return s.controller
}

func (s *Simulation) Body() *physics.CharacterBody {
	return s.body
}

func (s *Simulation) Transform() *entity.Transform {
	return s.transform
}

func (s *Simulation) Sensors() *physics.CharacterSensors {
	return s.sensors
}

func (s *Simulation) World() *physics.World {
	return s.world
}

func (s *Simulation) Stage() *entity.Stage {
	return s.stage
}

// MovementConfig returns the tuning of the current controller
func (s *Simulation) MovementConfig() config.MovementConfig {
	return s.movement
}

// Frame returns the number of updates that stepped the world
func (s *Simulation) Frame() int {
	return s.frame
}

func (s *Simulation) Respawns() int {
	return s.respawns
}
