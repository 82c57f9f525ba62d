package heist

import (
	"math/rand"

	"github.com/goldnoam/great-heist/internal/config"
)

// SimOptions configures a headless run.
type SimOptions struct {
	Ticks    int   // Upper bound on ticks; the run also stops at game over
	Seed     int64 // Seeds both the level generator and the walk
	TickRate int   // Ticks per second, 60 when zero
	Turn     int   // Ticks between direction changes, 12 when zero
	AutoCode bool  // Submit the code at the door once it is known
}

// SimReport is the outcome of a headless run.
type SimReport struct {
	Ticks  int // Ticks executed
	Final  Snapshot
	Events map[string]int // Event counts by name
}

// Simulate drives the engine with a seeded random walk and no renderer.
// Equal options produce equal reports.
func Simulate(cfg config.HeistConfig, opts SimOptions) SimReport {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Turn <= 0 {
		opts.Turn = 12
	}
	dt := 1.0 / float64(opts.TickRate)

	//#nosec G404 -- gameplay randomness, not security
	engine := NewEngine(cfg, rand.New(rand.NewSource(opts.Seed)))
	//#nosec G404 -- gameplay randomness, not security
	walk := rand.New(rand.NewSource(opts.Seed*7919 + 1))
	report := SimReport{Events: make(map[string]int)}

	s := engine.NewRun()
	for _, ev := range fallbackEvents(s) {
		report.Events[ev.Kind.String()]++
	}

	var intent Intent
	for report.Ticks < opts.Ticks && !s.GameOver {
		if report.Ticks%opts.Turn == 0 {
			intent = Direction(1 + walk.Intn(4)).Intent()
			if walk.Intn(3) == 0 {
				second := Direction(1 + walk.Intn(4)).Intent()
				intent.Up = intent.Up || second.Up
				intent.Down = intent.Down || second.Down
				intent.Left = intent.Left || second.Left
				intent.Right = intent.Right || second.Right
			}
		}

		var cmds []Command
		if s.ShowTerminal {
			if opts.AutoCode && s.FoundPassword {
				cmds = append(cmds, SubmitCode(s.Password))
			} else {
				cmds = append(cmds, AbortTerminal())
			}
		}

		var events []Event
		s, events = engine.Tick(s, dt, intent, cmds...)
		for _, ev := range events {
			report.Events[ev.Kind.String()]++
		}
		report.Ticks++
	}

	report.Final = TakeSnapshot(s)
	return report
}
