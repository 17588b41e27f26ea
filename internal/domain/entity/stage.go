package entity

import (
	"math"

	"github.com/jakecoffman/cp"
)

// EntityID names one entity in the world
type EntityID uint32

type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileSpike
)

// ParseTileType maps a tile mapping name to its type. Unknown names are empty.
func ParseTileType(name string) TileType {
	switch name {
	case "wall":
		return TileWall
	case "spike":
		return TileSpike
	}
	return TileEmpty
}

type Tile struct {
	Type   TileType
	Solid  bool
	Damage int
}

// Hazard reports whether touching the tile hurts.
func (t Tile) Hazard() bool {
	return t.Type == TileSpike
}

// Blocks reports whether the tile becomes collision geometry.
func (t Tile) Blocks() bool {
	return t.Solid && !t.Hazard()
}

var outside = Tile{Type: TileWall, Solid: true}

// Stage is the static level in metres. Rows are stored top first while
// world Y grows upward, so row ty covers
// [(Height-1-ty)*TileSize, (Height-ty)*TileSize].
type Stage struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    [][]Tile
	Spawn    cp.Vector
	Zones    []*Zone
}

// GetTile returns tile (tx, ty). Anything off the grid is a solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || ty < 0 || tx >= s.Width || ty >= s.Height || ty >= len(s.Tiles) || tx >= len(s.Tiles[ty]) {
		return outside
	}
	return s.Tiles[ty][tx]
}

// Cell converts a world point to tile coordinates. ok is false off the grid.
func (s *Stage) Cell(p cp.Vector) (tx, ty int, ok bool) {
	if s.TileSize <= 0 || p.X < 0 || p.Y < 0 {
		return -1, -1, false
	}
	tx = int(math.Floor(p.X / s.TileSize))
	ty = s.Height - 1 - int(math.Floor(p.Y/s.TileSize))
	ok = tx < s.Width && ty >= 0
	return tx, ty, ok
}

func (s *Stage) TileAt(p cp.Vector) Tile {
	tx, ty, ok := s.Cell(p)
	if !ok {
		return outside
	}
	return s.GetTile(tx, ty)
}

// TileBB is the world box of tile (tx, ty).
func (s *Stage) TileBB(tx, ty int) cp.BB {
	l := float64(tx) * s.TileSize
	b := float64(s.Height-1-ty) * s.TileSize
	return cp.BB{L: l, B: b, R: l + s.TileSize, T: b + s.TileSize}
}

func (s *Stage) Bounds() cp.BB {
	return cp.BB{R: float64(s.Width) * s.TileSize, T: float64(s.Height) * s.TileSize}
}
