package config

// StageConfig is the root config for stage files. Positions and rects are in
// world units with Y pointing up; collision rows are listed top to bottom.
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Zones       []ZoneConfig                 `json:"zones" yaml:"zones"`
}

type StageSizeConfig struct {
	Width    int     `json:"width" yaml:"width"`   // tiles
	Height   int     `json:"height" yaml:"height"` // tiles
	TileSize float64 `json:"tileSize" yaml:"tileSize"`
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

type TileMappingConfig struct {
	Type   string `json:"type" yaml:"type"`
	Solid  bool   `json:"solid" yaml:"solid"`
	Damage int    `json:"damage,omitempty" yaml:"damage,omitempty"`
}

// ZoneConfig is an activation zone and the entities it spawns
type ZoneConfig struct {
	ID     string             `json:"id" yaml:"id"`
	Rect   RectConfig         `json:"rect" yaml:"rect"`
	Spawns []SpawnPointConfig `json:"spawns" yaml:"spawns"`
}

// RectConfig is an axis-aligned box; X,Y is the bottom-left corner
type RectConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

type SpawnPointConfig struct {
	Type string  `json:"type" yaml:"type"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}
