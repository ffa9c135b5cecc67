// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// TerrainConfig holds the terrain loaded at startup.
type TerrainConfig struct {
	HeightMap       string        `yaml:"heightmap"`
	PatchSize       int           `yaml:"patch_size"`
	Spacing         SpacingConfig `yaml:"spacing"`
	DrawDistance    float32       `yaml:"draw_distance"` // 0 draws everything
	LodBias         float32       `yaml:"lod_bias"`
	CastShadows     bool          `yaml:"cast_shadows"`
	MaterialTexture string        `yaml:"material_texture"`
	Tiling          float32       `yaml:"tiling"`
}

// SpacingConfig is the distance between heightmap samples. Y scales sample values.
type SpacingConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// InputConfig holds input settings.
type InputConfig struct {
	MouseVisible         bool   `yaml:"mouse_visible"`
	TouchEmulation       bool   `yaml:"touch_emulation"`
	ToggleFullscreen     bool   `yaml:"toggle_fullscreen"`
	ScreenJoystick       bool   `yaml:"screen_joystick"`
	ScreenJoystickLayout string `yaml:"screen_joystick_layout"` // empty uses the built-in layout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ShowFPS:    false,
		},
		Terrain: TerrainConfig{
			HeightMap:    "",
			PatchSize:    32,
			Spacing:      SpacingConfig{X: 1, Y: 0.25, Z: 1},
			DrawDistance: 0,
			LodBias:      1,
			CastShadows:  false,
			Tiling:       32,
		},
		Input: InputConfig{
			MouseVisible:     true,
			TouchEmulation:   false,
			ToggleFullscreen: true,
			ScreenJoystick:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
