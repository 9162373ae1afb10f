package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallkick/internal/application/replay"
	"github.com/younwookim/wallkick/internal/application/system"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

func createTestLoader(t *testing.T) *config.Loader {
	t.Helper()
	loader, err := newLoader("")
	require.NoError(t, err)
	return loader
}

// createTestReplay builds a recording on the demo stage from per-frame inputs
func createTestReplay(character string, inputs []system.InputState) *replay.ReplayData {
	rec := replay.NewRecorder("demo", character, 60)
	for _, in := range inputs {
		rec.RecordFrame(in)
	}
	data := rec.GetData()
	return &data
}

func repeat(in system.InputState, n int) []system.InputState {
	out := make([]system.InputState, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func TestEmbeddedConfigs(t *testing.T) {
	loader := createTestLoader(t)

	cfg, stageCfg, err := loadConfigs(loader, "demo", config.DefaultCharacter)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMovementConfig(), cfg.Character.Movement)
	assert.Equal(t, "demo", stageCfg.ID)

	_, _, err = loadConfigs(loader, "demo", "floaty")
	assert.NoError(t, err)

	_, _, err = loadConfigs(loader, "missing", config.DefaultCharacter)
	assert.Error(t, err)
}

func TestReplayIdlePlayer_Settles(t *testing.T) {
	data := createTestReplay(config.DefaultCharacter, repeat(system.InputState{}, 120))

	result, err := simulateReplay(createTestLoader(t), data)
	require.NoError(t, err)

	assert.Equal(t, 120, result.Frames)
	assert.Equal(t, system.StateGrounded, result.LastState)
	assert.InDelta(t, 3.5, result.Final.X, 1e-6)
	assert.InDelta(t, 1.7, result.Final.Y, 0.15)
	assert.Equal(t, 0, result.Respawns)
}

func TestReplayRunAndJump_IsDeterministic(t *testing.T) {
	inputs := repeat(system.InputState{}, 30)
	inputs = append(inputs, system.InputState{Axis: 1, Jump: true, JumpPressed: true})
	inputs = append(inputs, repeat(system.InputState{Axis: 1, Jump: true}, 20)...)
	inputs = append(inputs, system.InputState{Axis: 1, JumpReleased: true})
	inputs = append(inputs, repeat(system.InputState{}, 60)...)
	data := createTestReplay(config.DefaultCharacter, inputs)

	first, err := simulateReplay(createTestLoader(t), data)
	require.NoError(t, err)
	second, err := simulateReplay(createTestLoader(t), data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Greater(t, first.Final.X, 3.5+1)
	assert.Greater(t, first.Peak, 2.5)
	assert.Equal(t, system.StateGrounded, first.LastState)
}

func TestReplayProfiles_DifferInJumpHeight(t *testing.T) {
	inputs := repeat(system.InputState{}, 30)
	inputs = append(inputs, system.InputState{Jump: true, JumpPressed: true})
	inputs = append(inputs, repeat(system.InputState{Jump: true}, 60)...)

	stock, err := simulateReplay(createTestLoader(t), createTestReplay(config.DefaultCharacter, inputs))
	require.NoError(t, err)
	floaty, err := simulateReplay(createTestLoader(t), createTestReplay("floaty", inputs))
	require.NoError(t, err)

	assert.Greater(t, floaty.Peak, stock.Peak)
}

func TestReplay_UnknownStage(t *testing.T) {
	data := createTestReplay(config.DefaultCharacter, repeat(system.InputState{}, 1))
	data.Stage = "missing"

	_, err := simulateReplay(createTestLoader(t), data)
	assert.Error(t, err)
}
