// Package config provides YAML-based game configuration loading
// for the heist platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned (wrapped) by Validate when a config cannot drive a game.
var ErrInvalid = errors.New("config: invalid")

// HeistConfig contains all tuning for the heist game.
// Distances are canvas pixels; speeds are pixels per simulation tick.
type HeistConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Player      PlayerConfig      `yaml:"player"`
	Timer       TimerConfig       `yaml:"timer"`
	Interaction InteractionConfig `yaml:"interaction"`
	Guards      GuardConfig       `yaml:"guards"`
	Generation  GenerationConfig  `yaml:"generation"`
}

// CanvasConfig defines the fixed play field.
type CanvasConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

// PlayerConfig defines the player footprint and motion.
type PlayerConfig struct {
	Size   float64 `yaml:"size"`  // Side of the square footprint
	Speed  float64 `yaml:"speed"` // Per-axis distance per tick
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// TimerConfig defines the per-floor time budget and timeout policy.
type TimerConfig struct {
	Budget         float64 `yaml:"budget"`          // Seconds per floor
	TimeoutPenalty int     `yaml:"timeout_penalty"` // Score deducted on timeout
	MaxTimeouts    int     `yaml:"max_timeouts"`    // Timeouts per run before game over (0 = unlimited)
}

// InteractionConfig defines proximity tolerances (half-extents of square zones).
type InteractionConfig struct {
	CollectRange  float64 `yaml:"collect_range"`
	CaptureRange  float64 `yaml:"capture_range"`
	StationRange  float64 `yaml:"station_range"`
	DoorRange     float64 `yaml:"door_range"`
	NudgeDistance float64 `yaml:"nudge_distance"` // Push-back from the door on a wrong code
	CornerOffset  float64 `yaml:"corner_offset"`  // Door/station offset from their canvas corners
}

// GuardConfig defines patrol generation and motion.
type GuardConfig struct {
	BaseSpeed         float64 `yaml:"base_speed"`
	SpeedPerFloor     float64 `yaml:"speed_per_floor"`
	MaxCount          int     `yaml:"max_count"`
	WaypointThreshold float64 `yaml:"waypoint_threshold"`
	PatrolMin         float64 `yaml:"patrol_min"`
	PatrolMax         float64 `yaml:"patrol_max"`
	Inset             float64 `yaml:"inset"` // Spawn region inset from the canvas edge
}

// GenerationConfig defines procedural level generation parameters.
type GenerationConfig struct {
	ObstacleSeed         int     `yaml:"obstacle_seed"`
	BaseObstacles        int     `yaml:"base_obstacles"`
	MaxObstacles         int     `yaml:"max_obstacles"`
	MoneyBase            int     `yaml:"money_base"`
	MoneyPerFloor        int     `yaml:"money_per_floor"`
	ValuePerFloor        int     `yaml:"value_per_floor"`
	MoneyMargin          float64 `yaml:"money_margin"`
	MaxPlacementAttempts int     `yaml:"max_placement_attempts"`
}

// Validate checks that the config describes a playable field.
func (c HeistConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 150 || c.Canvas.Height <= 150:
		return fmt.Errorf("%w: canvas must be larger than 150x150, got %gx%g", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.WallThickness <= 0:
		return fmt.Errorf("%w: wall_thickness must be positive", ErrInvalid)
	case c.Player.Size <= 0 || c.Player.Speed <= 0:
		return fmt.Errorf("%w: player size and speed must be positive", ErrInvalid)
	case c.Timer.Budget <= 0:
		return fmt.Errorf("%w: timer budget must be positive", ErrInvalid)
	case c.Timer.TimeoutPenalty < 0 || c.Timer.MaxTimeouts < 0:
		return fmt.Errorf("%w: timeout penalty and max_timeouts must not be negative", ErrInvalid)
	case c.Guards.BaseSpeed <= 0 || c.Guards.SpeedPerFloor < 0:
		return fmt.Errorf("%w: guard speed must be positive", ErrInvalid)
	case c.Guards.MaxCount < 1:
		return fmt.Errorf("%w: guards max_count must be at least 1", ErrInvalid)
	case c.Guards.PatrolMin <= 0 || c.Guards.PatrolMax <= c.Guards.PatrolMin:
		return fmt.Errorf("%w: patrol range [%g,%g) is empty", ErrInvalid, c.Guards.PatrolMin, c.Guards.PatrolMax)
	case c.Canvas.Width-2*c.Guards.Inset-c.Guards.PatrolMax <= 0 || c.Canvas.Height-2*c.Guards.Inset <= 0:
		return fmt.Errorf("%w: guard inset %g leaves no spawn area", ErrInvalid, c.Guards.Inset)
	case c.Generation.MaxObstacles < 0 || c.Generation.BaseObstacles < 0:
		return fmt.Errorf("%w: obstacle counts must not be negative", ErrInvalid)
	case c.Generation.MaxPlacementAttempts < 1:
		return fmt.Errorf("%w: max_placement_attempts must be at least 1", ErrInvalid)
	case c.Generation.MoneyMargin < 0:
		return fmt.Errorf("%w: money_margin must not be negative", ErrInvalid)
	}
	return nil
}

// Interior returns the bounds the player center may occupy:
// the canvas inset by wall thickness plus half the player footprint.
func (c HeistConfig) Interior() (minX, minY, maxX, maxY float64) {
	inset := c.Canvas.WallThickness + c.Player.Size/2
	return inset, inset, c.Canvas.Width - inset, c.Canvas.Height - inset
}
