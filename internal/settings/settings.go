// Package settings loads app configuration from TOML and environment
// variables. Runtime pet state (position, chosen animation) lives in
// internal/config; this package covers the knobs a user edits by hand.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Pet        PetConfig       `mapstructure:"pet"`
	Window     WindowConfig    `mapstructure:"window"`
	Animations AnimationConfig `mapstructure:"animations"`
	Log        LogConfig       `mapstructure:"log"`
	Debug      DebugConfig     `mapstructure:"debug"`
}

// PetConfig holds sizing and behavior settings for pets.
type PetConfig struct {
	Size        int     `mapstructure:"size"`         // on-screen pet size in pixels
	MaxCount    int     `mapstructure:"max_count"`    // most pets allowed at once
	IdleTimeout float64 `mapstructure:"idle_timeout"` // seconds without interaction before idling
	FadeIn      float64 `mapstructure:"fade_in"`      // spawn fade duration in seconds
	MinOpacity  float64 `mapstructure:"min_opacity"`  // opacity floor so pets can't vanish
}

// WindowConfig holds overlay window tuning.
type WindowConfig struct {
	ActiveTPS int `mapstructure:"active_tps"`
	IdleTPS   int `mapstructure:"idle_tps"`
}

// AnimationConfig holds animation discovery settings.
type AnimationConfig struct {
	Dirs    []string `mapstructure:"dirs"`    // searched for .gif and sheet .json files
	Idle    string   `mapstructure:"idle"`    // optional animation played while idle
	Preview int      `mapstructure:"preview"` // selector preview box size in pixels
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DebugConfig holds development toggles.
type DebugConfig struct {
	HUD           bool   `mapstructure:"hud"`
	Scene         bool   `mapstructure:"scene"` // per-frame draw stats and disposed-node panics
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// Dir returns the anima config directory (~/.config/anima).
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "anima")
}

// Path returns the config file location, honoring the ANIMA_CONFIG override.
func Path() string {
	if p := os.Getenv("ANIMA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// ANIMA_, e.g. ANIMA_LOG_LEVEL=debug.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("pet.size", 250)
	v.SetDefault("pet.max_count", 3)
	v.SetDefault("pet.idle_timeout", 15.0)
	v.SetDefault("pet.fade_in", 0.6)
	v.SetDefault("pet.min_opacity", 0.30)
	v.SetDefault("window.active_tps", 60)
	v.SetDefault("window.idle_tps", 30)
	v.SetDefault("animations.dirs", []string{filepath.Join(Dir(), "animations"), "animations"})
	v.SetDefault("animations.idle", "")
	v.SetDefault("animations.preview", 180)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("debug.hud", false)
	v.SetDefault("debug.scene", false)
	v.SetDefault("debug.screenshot_dir", "screenshots")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ANIMA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ANIMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// normalize clamps out-of-range values back to usable defaults.
func normalize(c Config) Config {
	if c.Pet.Size <= 0 {
		c.Pet.Size = 250
	}
	if c.Pet.MaxCount < 1 {
		c.Pet.MaxCount = 1
	}
	if c.Pet.IdleTimeout <= 0 {
		c.Pet.IdleTimeout = 15.0
	}
	if c.Pet.FadeIn < 0 {
		c.Pet.FadeIn = 0
	}
	if c.Pet.MinOpacity <= 0 || c.Pet.MinOpacity > 1 {
		c.Pet.MinOpacity = 0.30
	}
	if c.Window.ActiveTPS <= 0 {
		c.Window.ActiveTPS = 60
	}
	if c.Window.IdleTPS <= 0 || c.Window.IdleTPS > c.Window.ActiveTPS {
		c.Window.IdleTPS = c.Window.ActiveTPS
	}
	if c.Animations.Preview <= 0 {
		c.Animations.Preview = 180
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the config init command to materialize a starting file.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("pet.size", cfg.Pet.Size)
	v.Set("pet.max_count", cfg.Pet.MaxCount)
	v.Set("pet.idle_timeout", cfg.Pet.IdleTimeout)
	v.Set("pet.fade_in", cfg.Pet.FadeIn)
	v.Set("pet.min_opacity", cfg.Pet.MinOpacity)
	v.Set("window.active_tps", cfg.Window.ActiveTPS)
	v.Set("window.idle_tps", cfg.Window.IdleTPS)
	v.Set("animations.dirs", cfg.Animations.Dirs)
	v.Set("animations.idle", cfg.Animations.Idle)
	v.Set("animations.preview", cfg.Animations.Preview)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("debug.hud", cfg.Debug.HUD)
	v.Set("debug.scene", cfg.Debug.Scene)
	v.Set("debug.screenshot_dir", cfg.Debug.ScreenshotDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
