package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

// StageSizeConfig gives the grid size in tiles and the tile edge in world units
type StageSizeConfig struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	TileSize float64 `json:"tileSize"`
}

// PositionConfig is a tile coordinate, row 0 at the top
type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig maps one character of the collision layer to geometry.
// Layers names the sensor classification ("ground", "wall").
type TileMappingConfig struct {
	Type   string   `json:"type"`
	Layers []string `json:"layers"`
	Solid  bool     `json:"solid"`
}
