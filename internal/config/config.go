// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Viewer      ViewerConfig     `yaml:"viewer"`
	Textures    TexturesConfig   `yaml:"textures"`
	Animation   AnimationConfig  `yaml:"animation"`
	NameTag     string           `yaml:"name_tag"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// ViewerConfig holds window, camera and render loop settings.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"` // 0 follows the display
	VSync      bool    `yaml:"vsync"`

	FOV  float64 `yaml:"fov"`
	Zoom float64 `yaml:"zoom"`

	EnableRotate bool `yaml:"enable_rotate"`
	EnableZoom   bool `yaml:"enable_zoom"`
	EnablePan    bool `yaml:"enable_pan"`

	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`
	RenderPaused    bool    `yaml:"render_paused"`

	// Background is a CSS-style hex colour; empty means transparent.
	Background string `yaml:"background"`
}

// TexturesConfig holds the initial texture sources. Each source is a file path
// or an http(s) URL; empty leaves the channel unloaded.
type TexturesConfig struct {
	Skin     string `yaml:"skin"`
	Cape     string `yaml:"cape"`
	Ears     string `yaml:"ears"`
	Panorama string `yaml:"panorama"`

	Model         string `yaml:"model"`          // auto-detect, default, slim
	EarsType      string `yaml:"ears_type"`      // standalone, skin, current-skin
	BackEquipment string `yaml:"back_equipment"` // cape, elytra
}

// AnimationConfig selects and tunes the initial animation.
type AnimationConfig struct {
	Name   string  `yaml:"name"` // empty disables animation
	Speed  float64 `yaml:"speed"`
	Paused bool    `yaml:"paused"`

	HeadBobbing        bool    `yaml:"head_bobbing"`
	WaveArm            string  `yaml:"wave_arm"`
	CrouchShowProgress bool    `yaml:"crouch_show_progress"`
	CrouchRunOnce      bool    `yaml:"crouch_run_once"`
	CrouchHitSpeed     float64 `yaml:"crouch_hit_speed"` // 0 disables the overlay
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:           640,
			Height:          800,
			PixelRatio:      0,
			VSync:           true,
			FOV:             50,
			Zoom:            0.9,
			EnableRotate:    true,
			EnableZoom:      true,
			EnablePan:       false,
			AutoRotate:      false,
			AutoRotateSpeed: 1.0,
		},
		Textures: TexturesConfig{
			Model:         "auto-detect",
			EarsType:      "standalone",
			BackEquipment: "cape",
		},
		Animation: AnimationConfig{
			Name:        "idle",
			Speed:       1.0,
			HeadBobbing: true,
			WaveArm:     "left",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
	}
}
