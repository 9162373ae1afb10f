package main

import (
	"fmt"

	"github.com/younwookim/wallkick/internal/application/replay"
	"github.com/younwookim/wallkick/internal/application/sim"
	"github.com/younwookim/wallkick/internal/application/system"
	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

// ReplayResult summarizes a headless replay
type ReplayResult struct {
	Frames    int
	Final     entity.Vec2
	Peak      float64
	Respawns  int
	States    map[system.MovementState]int
	LastState system.MovementState
}

// String formats the result for the console
func (r ReplayResult) String() string {
	return fmt.Sprintf("frames=%d final=(%.3f, %.3f) peak=%.3f respawns=%d last=%s wallslide=%d walljump=%d",
		r.Frames, r.Final.X, r.Final.Y, r.Peak, r.Respawns, r.LastState,
		r.States[system.StateWallSliding], r.States[system.StateWallJumping])
}

// simulateReplay runs a recording through the simulation without rendering
func simulateReplay(loader *config.Loader, data *replay.ReplayData) (ReplayResult, error) {
	cfg, stageCfg, err := loadConfigs(loader, data.Stage, data.Character)
	if err != nil {
		return ReplayResult{}, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return ReplayResult{}, err
	}
	simulation, err := sim.New(stage, *cfg.Physics, cfg.Character.Movement)
	if err != nil {
		return ReplayResult{}, err
	}

	tickRate := data.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Physics.Display.Framerate
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1.0 / float64(tickRate)

	result := ReplayResult{
		Peak:   simulation.Body().Position().Y,
		States: make(map[system.MovementState]int),
	}

	replayer := replay.NewReplayer(*data)
	for {
		input, ok := replayer.Next()
		if !ok {
			break
		}
		cmd := simulation.Update(input, dt)
		result.States[cmd.State]++
		result.LastState = cmd.State
		if y := simulation.Body().Position().Y; y > result.Peak {
			result.Peak = y
		}
	}

	result.Frames = simulation.Frame()
	result.Final = simulation.Body().Position()
	result.Respawns = simulation.Respawns()
	return result, nil
}
