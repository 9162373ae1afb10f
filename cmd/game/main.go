package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wallkick/internal/application/game"
	"github.com/younwookim/wallkick/internal/application/replay"
	"github.com/younwookim/wallkick/internal/application/scene/playing"
	"github.com/younwookim/wallkick/internal/application/system"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headlessFlag := flag.Bool("headless", false, "With -replay, simulate without a window and print the result")
	stageFlag := flag.String("stage", "demo", "Stage to load from configs/stages")
	characterFlag := flag.String("character", config.DefaultCharacter, "Character profile from configs/characters")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded copy and hot reload character profiles")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		// A recording only reproduces on the stage and profile it was made with
		*stageFlag = data.Stage
		*characterFlag = data.Character
	}

	if data != nil && *headlessFlag {
		result, err := simulateReplay(loader, data)
		if err != nil {
			log.Fatalf("Failed to simulate replay: %v", err)
		}
		fmt.Println(result)
		return
	}

	cfg, stageCfg, err := loadConfigs(loader, *stageFlag, *characterFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	opts := playing.Options{RecordPath: *recordFlag}
	if data != nil {
		opts.Input = replay.NewReplayer(*data)
	}

	if *configFlag != "" {
		watcher, err := config.NewWatcher(filepath.Join(*configFlag, "characters"))
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		} else {
			defer func() { _ = watcher.Close() }()
			go logWatchErrors(watcher.Errors)
			opts.Reload = watcher.Events
			opts.Characters = loader
		}
	}

	scene, err := playing.New(cfg, stageCfg, stage, opts)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Wall Kick")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game stopped: %v", err)
	}
}

// newLoader reads from dir when given, otherwise from the embedded configs
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadConfigs loads physics, the named stage and the named character profile
func loadConfigs(loader *config.Loader, stageName, character string) (*config.GameConfig, *config.StageConfig, error) {
	physics, err := loader.LoadPhysics()
	if err != nil {
		return nil, nil, err
	}
	characterCfg, err := loader.LoadCharacter(character)
	if err != nil {
		return nil, nil, err
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return nil, nil, err
	}
	return &config.GameConfig{Physics: physics, Character: characterCfg}, stageCfg, nil
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		log.Printf("Config watcher: %v", err)
	}
}
