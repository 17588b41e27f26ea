package system

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// LoadStage builds the level geometry and zones from a stage file. Rows
// longer than Size.Width are cut and characters missing from the tile
// mapping are empty.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	size := cfg.Size.TileSize
	if size <= 0 {
		size = 1
	}

	palette := make(map[rune]entity.Tile, len(cfg.TileMapping))
	for key, m := range cfg.TileMapping {
		for _, r := range key {
			palette[r] = entity.Tile{Type: entity.ParseTileType(m.Type), Solid: m.Solid, Damage: m.Damage}
			break
		}
	}

	rows := make([][]entity.Tile, len(cfg.Layers.Collision))
	for y, line := range cfg.Layers.Collision {
		rows[y] = parseRow(line, cfg.Size.Width, palette)
	}

	return &entity.Stage{
		Width:    cfg.Size.Width,
		Height:   len(rows),
		TileSize: size,
		Tiles:    rows,
		Spawn:    cp.Vector{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
		Zones:    loadZones(cfg.Zones),
	}
}

func parseRow(line string, width int, palette map[rune]entity.Tile) []entity.Tile {
	row := make([]entity.Tile, width)
	x := 0
	for _, r := range line {
		if x == width {
			break
		}
		row[x] = palette[r]
		x++
	}
	return row
}

func loadZones(cfgs []config.ZoneConfig) []*entity.Zone {
	zones := make([]*entity.Zone, 0, len(cfgs))
	for _, zc := range cfgs {
		r := zc.Rect
		zone := &entity.Zone{
			ID:     zc.ID,
			Bounds: cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H},
			Spawns: make([]entity.ZoneSpawn, 0, len(zc.Spawns)),
		}
		for _, sp := range zc.Spawns {
			zone.Spawns = append(zone.Spawns, entity.ZoneSpawn{Kind: sp.Type, Position: cp.Vector{X: sp.X, Y: sp.Y}})
		}
		zones = append(zones, zone)
	}
	return zones
}
