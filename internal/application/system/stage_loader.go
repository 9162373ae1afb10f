package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/wallkick/internal/domain/entity"
	"github.com/younwookim/wallkick/internal/infrastructure/config"
)

// ErrUnknownLayer is returned for tile mappings naming an unknown layer
var ErrUnknownLayer = errors.New("unknown layer")

// ParseLayers converts layer names from a tile mapping into a mask
func ParseLayers(names []string) (entity.Layer, error) {
	var mask entity.Layer
	for _, name := range names {
		switch name {
		case "ground":
			mask |= entity.LayerGround
		case "wall":
			mask |= entity.LayerWall
		default:
			return entity.LayerNone, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
	}
	return mask, nil
}

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	tileWidth := cfg.Size.Width
	tileHeight := len(cfg.Layers.Collision)
	tileSize := cfg.Size.TileSize
	if tileSize <= 0 {
		tileSize = 1
	}

	mappings := make(map[rune]entity.Tile, len(cfg.TileMapping))
	for key, mapping := range cfg.TileMapping {
		layers, err := ParseLayers(mapping.Layers)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stage %s tile %q: %w", cfg.ID, key, err)
		}
		for _, r := range key {
			mappings[r] = entity.Tile{Layers: layers, Solid: mapping.Solid}
			break
		}
	}

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		x := 0
		for _, char := range row {
			if x >= tileWidth {
				break
			}
			tiles[y][x] = mappings[char]
			x++
		}
	}

	// Spawn at the center of the spawn tile
	spawnX := (float64(cfg.PlayerSpawn.X) + 0.5) * tileSize
	spawnY := (float64(tileHeight-cfg.PlayerSpawn.Y-1) + 0.5) * tileSize

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: tileSize,
		Tiles:    tiles,
		SpawnX:   spawnX,
		SpawnY:   spawnY,
	}, nil
}
