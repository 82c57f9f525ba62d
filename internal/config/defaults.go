package config

import (
	_ "embed"
)

//go:embed defaults/heist.yaml
var defaultHeistYAML []byte

// DefaultHeistConfig returns the default heist configuration.
// It mirrors defaults/heist.yaml and is the fallback if the embed fails to parse.
func DefaultHeistConfig() HeistConfig {
	return HeistConfig{
		Canvas: CanvasConfig{
			Width:         800,
			Height:        600,
			WallThickness: 10,
		},
		Player: PlayerConfig{
			Size:   20,
			Speed:  4,
			StartX: 50,
			StartY: 50,
		},
		Timer: TimerConfig{
			Budget:         60,
			TimeoutPenalty: 500,
			MaxTimeouts:    3,
		},
		Interaction: InteractionConfig{
			CollectRange:  20,
			CaptureRange:  20,
			StationRange:  30,
			DoorRange:     30,
			NudgeDistance: 60,
			CornerOffset:  60,
		},
		Guards: GuardConfig{
			BaseSpeed:         1.5,
			SpeedPerFloor:     0.2,
			MaxCount:          4,
			WaypointThreshold: 5,
			PatrolMin:         100,
			PatrolMax:         200,
			Inset:             100,
		},
		Generation: GenerationConfig{
			ObstacleSeed:         12345,
			BaseObstacles:        3,
			MaxObstacles:         8,
			MoneyBase:            5,
			MoneyPerFloor:        2,
			ValuePerFloor:        100,
			MoneyMargin:          20,
			MaxPlacementAttempts: 1000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultHeistYAML
}
