// Package heist implements The Great Heist: a top-down stealth game where
// the player collects cash, finds the floor's access code and escapes
// through the door before the timer runs out or a guard catches them.
//
// Engine.Tick is the whole simulation. It takes the previous GameState and
// returns the next one without mutating its input; Game adapts it to the
// platform's registry.Game interface.
package heist

import (
	"math/rand"

	"github.com/goldnoam/great-heist/internal/config"
)

// Engine owns the tuning and the level generator for one run.
// An Engine is not safe for concurrent use; each session creates its own.
type Engine struct {
	cfg config.HeistConfig
	gen *Generator
}

// NewEngine creates an engine. All layout randomness is drawn from rng,
// so equal seeds and equal inputs replay identically.
func NewEngine(cfg config.HeistConfig, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, gen: NewGenerator(cfg, rng)}
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() config.HeistConfig {
	return e.cfg
}

// NewRun starts a fresh run on floor 1 with score 0.
func (e *Engine) NewRun() GameState {
	return e.enterFloor(GameState{}, 1)
}

// AdvanceFloor moves to the next floor with a fresh layout, carrying score
// and run counters forward and resetting the timer.
func (e *Engine) AdvanceFloor(prev GameState) GameState {
	next := e.enterFloor(prev, prev.Floor+1)
	next.FloorsCleared++
	return next
}

// enterFloor builds the state for floor, keeping the run-scoped fields of carry.
func (e *Engine) enterFloor(carry GameState, floor int) GameState {
	lvl := e.gen.Generate(floor)
	return GameState{
		Player:             lvl.Spawn,
		Floor:              lvl.Floor,
		Score:              carry.Score,
		Money:              lvl.Money,
		Walls:              lvl.Walls,
		Guards:             lvl.Guards,
		Password:           lvl.Password,
		Door:               lvl.Door,
		Station:            lvl.Station,
		TimeLeft:           e.cfg.Timer.Budget,
		Ticks:              carry.Ticks,
		Timeouts:           carry.Timeouts,
		FloorsCleared:      carry.FloorsCleared,
		PlacementFallbacks: lvl.Fallbacks,
	}
}

// Tick advances the simulation by dt seconds.
//
// Commands are applied first, in order. Restart and a correct code replace
// the state and end the tick. The per-tick steps then run only while the
// floor is live: timer, motion, collection, patrol, capture, code station
// and door. Tick never mutates prev.
func (e *Engine) Tick(prev GameState, dt float64, intent Intent, cmds ...Command) (GameState, []Event) {
	next := prev.Clone()
	var events []Event

	for _, cmd := range cmds {
		switch cmd.Kind {
		case CommandPause:
			events = append(events, togglePause(&next)...)
		case CommandRestart:
			next = e.NewRun()
			events = append(events, Event{Kind: EventRestarted})
			return next, append(events, fallbackEvents(next)...)
		case CommandSubmitCode:
			if !next.ShowTerminal || next.GameOver {
				continue
			}
			if cmd.Code == next.Password {
				next = e.AdvanceFloor(next)
				events = append(events,
					Event{Kind: EventCodeAccepted},
					Event{Kind: EventFloorAdvanced, Value: next.Floor})
				return next, append(events, fallbackEvents(next)...)
			}
			events = append(events, e.rejectCode(&next)...)
		case CommandAbortTerminal:
			if next.ShowTerminal && !next.GameOver {
				events = append(events, abortTerminal(&next)...)
			}
		}
	}

	if !next.Live() {
		return next, events
	}

	next.Ticks++

	if expired := e.decayTimer(&next, dt); expired {
		next, events = e.timeoutFloor(next, events)
		return next, events
	}

	next.Player = movePlayer(next.Player, intent, e.cfg, next.Walls)
	events = append(events, collectMoney(&next, e.cfg.Interaction.CollectRange)...)
	stepGuards(next.Guards, e.cfg.Guards.WaypointThreshold)

	if g, caught := capturingGuard(&next, e.cfg.Interaction.CaptureRange); caught {
		next.GameOver = true
		next.EndReason = EndCaptured
		return next, append(events, Event{Kind: EventCaptured, GuardID: g.ID})
	}

	events = append(events, checkStation(&next, e.cfg)...)
	events = append(events, checkDoor(&next, e.cfg)...)
	return next, events
}

// decayTimer subtracts dt from the floor timer and reports expiry.
// Non-positive and NaN steps leave the timer untouched.
func (e *Engine) decayTimer(s *GameState, dt float64) bool {
	if dt > 0 {
		s.TimeLeft -= dt
	}
	return s.TimeLeft <= 0
}

// timeoutFloor applies the timeout penalty. The floor restarts with a fresh
// layout unless the run has used up its timeouts, which ends it.
func (e *Engine) timeoutFloor(s GameState, events []Event) (GameState, []Event) {
	penalty := min(e.cfg.Timer.TimeoutPenalty, s.Score)
	s.Score -= penalty
	s.Timeouts++
	events = append(events, Event{Kind: EventTimeout, Value: penalty})

	if limit := e.cfg.Timer.MaxTimeouts; limit > 0 && s.Timeouts >= limit {
		s.TimeLeft = 0
		s.GameOver = true
		s.EndReason = EndTimeout
		return s, events
	}

	next := e.enterFloor(s, s.Floor)
	return next, append(events, fallbackEvents(next)...)
}

func fallbackEvents(s GameState) []Event {
	if s.PlacementFallbacks == 0 {
		return nil
	}
	return []Event{{Kind: EventPlacementFallback, Value: s.PlacementFallbacks}}
}
