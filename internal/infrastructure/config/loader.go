package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCharacter is the character profile LoadAll picks
const DefaultCharacter = "default"

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics   *PhysicsConfig
	Character *CharacterConfig
}

// Loader loads game configuration from JSON and YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadCharacter loads characters/<name>.yaml.
// Fields missing from the file keep their DefaultMovementConfig values.
func (l *Loader) LoadCharacter(name string) (*CharacterConfig, error) {
	path := "characters/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character %s: %w", name, err)
	}

	return ParseCharacter(name, data)
}

// ParseCharacter decodes a character profile over the default tuning
func ParseCharacter(name string, data []byte) (*CharacterConfig, error) {
	cfg := CharacterConfig{
		Name:     name,
		Movement: DefaultMovementConfig(),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse character %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (physics, default character)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	character, err := l.LoadCharacter(DefaultCharacter)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:   physics,
		Character: character,
	}, nil
}
