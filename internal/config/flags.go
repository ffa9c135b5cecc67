package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagHeightMap  = flag.String("heightmap", "", "Heightmap image to load")
	flagPatchSize  = flag.Int("patch-size", 0, "Terrain patch size (power of two, 4-128)")
	flagTouch      = flag.Bool("touch", false, "Emulate touches with the mouse and show the screen joystick")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagHeightMap != "" {
		cfg.Terrain.HeightMap = *flagHeightMap
	}
	if *flagPatchSize > 0 {
		cfg.Terrain.PatchSize = *flagPatchSize
	}
	if *flagTouch {
		cfg.Input.TouchEmulation = true
		cfg.Input.ScreenJoystick = true
	}
}
