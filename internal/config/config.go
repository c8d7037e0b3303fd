// Package config handles renderer configuration loading and management.
package config

// Config holds all compiler settings.
type Config struct {
	Render  RenderConfig        `yaml:"render"`
	Assets  AssetsConfig        `yaml:"assets"`
	Biomes  map[int]BiomeColors `yaml:"biomes"`
	Logging LoggingConfig       `yaml:"logging"`
}

// RenderConfig holds geometry compilation settings.
type RenderConfig struct {
	LightStyle           string  `yaml:"light_style"` // day, night, cave or none
	NightLightAdjustment float32 `yaml:"night_light_adjustment"`
	ChunkHeight          int     `yaml:"chunk_height"`
	Workers              int     `yaml:"workers"` // 0 = one per CPU
	Seed                 int64   `yaml:"seed"`    // 0 = seeded from the clock
	OldColorPalette      bool    `yaml:"old_color_palette"`
}

// AssetsConfig holds definition and texture sources.
type AssetsConfig struct {
	ResourcePacks  []string `yaml:"resource_packs"` // zip/jar files or directories, later entries win
	BlockConfig    string   `yaml:"block_config"`   // legacy block-config document
	TerrainAtlas   bool     `yaml:"terrain_atlas"`  // textures come from a single terrain.png tile sheet
	MissingTexture string   `yaml:"missing_texture"`
}

// BiomeColors overrides the tint colours of one biome. Values are "#rrggbb".
type BiomeColors struct {
	Grass   string `yaml:"grass"`
	Foliage string `yaml:"foliage"`
	Water   string `yaml:"water"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			LightStyle:           "day",
			NightLightAdjustment: 0.1,
			ChunkHeight:          384,
			Workers:              0,
			Seed:                 0,
		},
		Assets: AssetsConfig{
			ResourcePacks:  []string{"client.jar"},
			BlockConfig:    "blocks.yaml",
			MissingTexture: "missing_texture",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
