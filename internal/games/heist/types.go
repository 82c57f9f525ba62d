package heist

import "github.com/goldnoam/great-heist/internal/core"

// Point is a real-valued canvas coordinate.
type Point = core.Vec

// Wall is a static, collidable axis-aligned rectangle.
type Wall = core.Rect

// Money is a collectible. Collected only ever goes false -> true.
type Money struct {
	ID        int
	Pos       Point
	Value     int
	Collected bool
}

// Guard is a patrolling entity walking a cyclic waypoint path.
// PathIndex is the index of the next target waypoint and always
// satisfies 0 <= PathIndex < len(Path).
type Guard struct {
	ID        int
	Pos       Point
	Path      []Point
	PathIndex int
	Speed     float64 // Distance per tick
}

// Target returns the waypoint the guard is walking to.
func (g Guard) Target() Point {
	return g.Path[g.PathIndex]
}

// EndReason records why a run ended.
type EndReason string

const (
	EndNone     EndReason = ""
	EndCaptured EndReason = "captured"
	EndTimeout  EndReason = "timeout"
)

// Phase is the floor state machine position derived from the state flags.
type Phase string

const (
	PhaseActive       Phase = "active"
	PhasePaused       Phase = "paused"
	PhaseTerminalOpen Phase = "terminal_open"
	PhaseGameOver     Phase = "game_over"
)

// GameState is the full simulation snapshot for one tick.
// It is replaced wholesale by Engine.Tick; presentation code only reads it.
type GameState struct {
	Player Point
	Floor  int // 1-indexed
	Score  int

	Money  []Money
	Walls  []Wall // Static per floor; shared between snapshots, never mutated
	Guards []Guard

	Password      string // 4-digit access code for this floor
	FoundPassword bool
	Door          Point
	Station       Point // Code station revealing the password

	Paused       bool
	GameOver     bool
	ShowTerminal bool
	TimeLeft     float64 // Seconds remaining on this floor

	// InDoorZone is true while the player stands in the door zone.
	// The terminal opens only on the outside -> inside edge.
	InDoorZone bool

	// Run bookkeeping
	Ticks              uint64
	Timeouts           int
	FloorsCleared      int
	EndReason          EndReason
	PlacementFallbacks int // Money placed without a valid sample on this floor
}

// Phase derives the floor state machine position.
func (s GameState) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.ShowTerminal:
		return PhaseTerminalOpen
	case s.Paused:
		return PhasePaused
	default:
		return PhaseActive
	}
}

// Live reports whether the per-tick simulation steps run.
func (s GameState) Live() bool {
	return !s.Paused && !s.GameOver && !s.ShowTerminal
}

// Clone returns a copy whose mutable entity slices are independent of s.
// Walls and guard paths are static for a floor and stay shared.
func (s GameState) Clone() GameState {
	c := s
	if s.Money != nil {
		c.Money = make([]Money, len(s.Money))
		copy(c.Money, s.Money)
	}
	if s.Guards != nil {
		c.Guards = make([]Guard, len(s.Guards))
		copy(c.Guards, s.Guards)
	}
	return c
}

// MoneyLeft counts uncollected items.
func (s GameState) MoneyLeft() int {
	n := 0
	for _, m := range s.Money {
		if !m.Collected {
			n++
		}
	}
	return n
}

// Intent is the player's desired movement for one tick as independent
// per-axis booleans. Opposing directions cancel out.
type Intent struct {
	Up, Down, Left, Right bool
}

// IntentNone is the zero intent.
var IntentNone = Intent{}

// Axes returns the unit axis deltas (-1, 0 or 1) for the intent.
func (in Intent) Axes() (dx, dy float64) {
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	return dx, dy
}

// Direction is the single-direction intent variant.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Intent converts a single direction into the per-axis form.
func (d Direction) Intent() Intent {
	switch d {
	case DirUp:
		return Intent{Up: true}
	case DirDown:
		return Intent{Down: true}
	case DirLeft:
		return Intent{Left: true}
	case DirRight:
		return Intent{Right: true}
	default:
		return IntentNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}
