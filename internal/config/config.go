// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tuber-tapper/internal/physics"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// TapperConfig contains all configuration for the game.
type TapperConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Body       BodyConfig       `yaml:"body"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig defines the play area in world units. It is independent of
// the terminal size.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodyConfig defines the tumbling object.
type BodyConfig struct {
	Size        float64 `yaml:"size"`         // Sprite side; hit radius is half of it
	InitialSpin float64 `yaml:"initial_spin"` // Degrees per frame at spawn
}

// PhysicsConfig defines the simulation constants.
type PhysicsConfig struct {
	Gravity      float64    `yaml:"gravity"`
	ClickImpulse float64    `yaml:"click_impulse"`
	WallDamping  float64    `yaml:"wall_damping"`
	SpinNudge    NudgeRange `yaml:"spin_nudge"`
}

// NudgeRange is an inclusive integer range for random spin changes.
type NudgeRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig defines the optional gravity progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier float64 `yaml:"gravity_multiplier"` // Added to gravity factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyPreset(cfg *TapperConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate checks that the config describes a playable game.
func (c TapperConfig) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"screen.width", c.Screen.Width},
		{"screen.height", c.Screen.Height},
		{"body.size", c.Body.Size},
		{"body.initial_spin", c.Body.InitialSpin},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.click_impulse", c.Physics.ClickImpulse},
		{"physics.wall_damping", c.Physics.WallDamping},
		{"audio.volume", c.Audio.Volume},
		{"difficulty.initial_level", c.Difficulty.InitialLevel},
		{"difficulty.scaling.gravity_multiplier", c.Difficulty.Scaling.GravityMultiplier},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalid, f.name, f.value)
		}
	}

	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen must be positive, got %vx%v", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Body.Size <= 0:
		return fmt.Errorf("%w: body size must be positive, got %v", ErrInvalid, c.Body.Size)
	case c.Body.Size >= c.Screen.Width:
		return fmt.Errorf("%w: body size %v does not fit screen width %v", ErrInvalid, c.Body.Size, c.Screen.Width)
	case c.Physics.WallDamping <= 0 || c.Physics.WallDamping > 1:
		return fmt.Errorf("%w: wall_damping must be in (0, 1], got %v", ErrInvalid, c.Physics.WallDamping)
	case c.Physics.SpinNudge.Min > c.Physics.SpinNudge.Max:
		return fmt.Errorf("%w: spin_nudge min %d exceeds max %d", ErrInvalid, c.Physics.SpinNudge.Min, c.Physics.SpinNudge.Max)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be in [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}

	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalid, c.Difficulty.Progression.Type)
	}
	return nil
}

// Params converts the config into simulation parameters.
func (c TapperConfig) Params() physics.Params {
	return physics.Params{
		Width:        c.Screen.Width,
		Height:       c.Screen.Height,
		Size:         c.Body.Size,
		Gravity:      c.Physics.Gravity,
		ClickImpulse: c.Physics.ClickImpulse,
		WallDamping:  c.Physics.WallDamping,
		SpinNudgeMin: c.Physics.SpinNudge.Min,
		SpinNudgeMax: c.Physics.SpinNudge.Max,
		InitialSpin:  c.Body.InitialSpin,
	}
}
