package config

import (
	_ "embed"
)

//go:embed defaults/tapper.yaml
var defaultTapperYAML []byte

// DefaultTapperConfig returns the built-in configuration. It matches the
// embedded defaults/tapper.yaml.
func DefaultTapperConfig() TapperConfig {
	return TapperConfig{
		Screen: ScreenConfig{
			Width:  600,
			Height: 800,
		},
		Body: BodyConfig{
			Size:        100,
			InitialSpin: 5,
		},
		Physics: PhysicsConfig{
			Gravity:      0.2,
			ClickImpulse: 15,
			WallDamping:  0.75,
			SpinNudge:    NudgeRange{Min: 3, Max: 6},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				GravityMultiplier: 1.0,
			},
		},
	}
}
