package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player     PlayerConfig               `json:"player" yaml:"player"`
	Spawnables map[string]SpawnableConfig `json:"spawnables" yaml:"spawnables"`
}

type PlayerConfig struct {
	ID        string     `json:"id" yaml:"id"`
	Size      SizeConfig `json:"size" yaml:"size"`
	Mass      float64    `json:"mass" yaml:"mass"`
	MaxHealth int        `json:"maxHealth" yaml:"maxHealth"`
}

// SpawnableConfig describes an entity a zone can bring into the world
type SpawnableConfig struct {
	ID            string     `json:"id" yaml:"id"`
	Size          SizeConfig `json:"size" yaml:"size"`
	Mass          float64    `json:"mass" yaml:"mass"`
	Static        bool       `json:"static,omitempty" yaml:"static,omitempty"`
	ContactDamage int        `json:"contactDamage,omitempty" yaml:"contactDamage,omitempty"`
}

// SizeConfig is a width/height pair in world units
type SizeConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}
