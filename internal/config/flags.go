package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagSkin      = flag.String("skin", "", "Skin texture path or URL")
	flagCape      = flag.String("cape", "", "Cape texture path or URL")
	flagEars      = flag.String("ears", "", "Ears texture path or URL")
	flagPanorama  = flag.String("panorama", "", "Panorama background path or URL")
	flagAnimation = flag.String("animation", "", "Initial animation (idle, walk, run, fly, wave, crouch, hit, none)")
	flagSpeed     = flag.Float64("speed", 0, "Animation speed multiplier")
	flagNameTag   = flag.String("nametag", "", "Name tag text")
	flagPaused    = flag.Bool("paused", false, "Start with rendering paused")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// flagGiven reports whether name was set on the command line, so that zero
// values can still override the file.
func flagGiven(fs *flag.FlagSet, name string) bool {
	given := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return given
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagSkin != "" {
		cfg.Textures.Skin = *flagSkin
	}
	if *flagCape != "" {
		cfg.Textures.Cape = *flagCape
	}
	if *flagEars != "" {
		cfg.Textures.Ears = *flagEars
	}
	if *flagPanorama != "" {
		cfg.Textures.Panorama = *flagPanorama
	}
	if *flagAnimation != "" {
		cfg.Animation.Name = *flagAnimation
		if *flagAnimation == "none" {
			cfg.Animation.Name = ""
		}
	}
	if *flagSpeed != 0 || flagGiven(flag.CommandLine, "speed") {
		cfg.Animation.Speed = *flagSpeed
	}
	if *flagNameTag != "" {
		cfg.NameTag = *flagNameTag
	}
	if *flagPaused {
		cfg.Viewer.RenderPaused = true
	}
}
