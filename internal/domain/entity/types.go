package entity

// Layer classifies static geometry for sensor queries.
// Layers are bit flags so one tile may belong to several.
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerWall
	LayerCharacter
)

// LayerNone is the classification of empty tiles
const LayerNone Layer = 0

// Has reports whether l contains every bit of other
func (l Layer) Has(other Layer) bool {
	return other != 0 && l&other == other
}

// String returns the string representation of the layer mask
func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerGround:
		return "ground"
	case LayerWall:
		return "wall"
	case LayerCharacter:
		return "character"
	case LayerGround | LayerWall:
		return "ground|wall"
	default:
		return "mixed"
	}
}

// Tile represents a single tile in the stage
type Tile struct {
	Layers Layer
	Solid  bool
}

// Stage holds the tile grid. Row 0 is the top row; world Y grows upward,
// so tile (tx, ty) occupies world Y range [Height-ty-1, Height-ty) * TileSize.
type Stage struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64
}

// GetTile returns the tile at the given tile coordinates.
// Out-of-range coordinates read as empty.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{}
	}
	return s.Tiles[ty][tx]
}

// TileBounds returns the world-space box of tile (tx, ty)
func (s *Stage) TileBounds(tx, ty int) Bounds {
	return Bounds{
		Center: Vec2{
			X: (float64(tx) + 0.5) * s.TileSize,
			Y: (float64(s.Height-ty-1) + 0.5) * s.TileSize,
		},
		Size: Vec2{X: s.TileSize, Y: s.TileSize},
	}
}

// Spawn returns the spawn point in world units
func (s *Stage) Spawn() Vec2 {
	return Vec2{X: s.SpawnX, Y: s.SpawnY}
}

// WorldHeight returns the height of the stage in world units
func (s *Stage) WorldHeight() float64 {
	return float64(s.Height) * s.TileSize
}

// WorldWidth returns the width of the stage in world units
func (s *Stage) WorldWidth() float64 {
	return float64(s.Width) * s.TileSize
}
