package heist

import (
	"math/rand"
	"testing"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
)

const testDt = 1.0 / 60.0

func newTestEngine(t *testing.T, cfg config.HeistConfig, seed int64) *Engine {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return NewEngine(cfg, rand.New(rand.NewSource(seed)))
}

// bareState is an empty floor: boundary walls only, no money, no guards.
func bareState(cfg config.HeistConfig) GameState {
	return GameState{
		Player:   core.V(cfg.Player.StartX, cfg.Player.StartY),
		Floor:    1,
		Walls:    BoundaryWalls(cfg),
		Password: "4321",
		Door:     DoorPosition(cfg),
		Station:  StationPosition(cfg),
		TimeLeft: cfg.Timer.Budget,
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewRun(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	s := newTestEngine(t, cfg, 1).NewRun()

	if s.Floor != 1 || s.Score != 0 {
		t.Errorf("NewRun() floor=%d score=%d, expected floor 1 score 0", s.Floor, s.Score)
	}
	if s.TimeLeft != cfg.Timer.Budget {
		t.Errorf("TimeLeft = %v, expected %v", s.TimeLeft, cfg.Timer.Budget)
	}
	if s.Phase() != PhaseActive {
		t.Errorf("Phase() = %s, expected active", s.Phase())
	}
	if s.Player != core.V(50, 50) {
		t.Errorf("Player = %+v, expected (50,50)", s.Player)
	}
	if len(s.Walls) != 4+ObstacleCount(cfg, 1) {
		t.Errorf("len(Walls) = %d, expected %d", len(s.Walls), 4+ObstacleCount(cfg, 1))
	}
}

func TestTimeoutRegeneratesFloor(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	tests := []struct {
		name      string
		score     int
		wantScore int
	}{
		{"penalty deducted", 1200, 700},
		{"penalty clamped at zero", 300, 0},
		{"zero score stays zero", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := e.NewRun()
			prev.Score = tc.score
			prev.Money[0].Collected = true

			next, events := e.Tick(prev, cfg.Timer.Budget, IntentNone)

			if next.Score != tc.wantScore {
				t.Errorf("Score = %d, expected %d", next.Score, tc.wantScore)
			}
			if next.Floor != 1 {
				t.Errorf("Floor = %d, expected 1", next.Floor)
			}
			if next.TimeLeft != cfg.Timer.Budget {
				t.Errorf("TimeLeft = %v, expected reset to %v", next.TimeLeft, cfg.Timer.Budget)
			}
			if next.GameOver {
				t.Error("first timeout should not end the run")
			}
			if next.Timeouts != 1 {
				t.Errorf("Timeouts = %d, expected 1", next.Timeouts)
			}
			if next.MoneyLeft() != len(next.Money) {
				t.Error("regenerated floor should have fresh money")
			}
			if next.Player != core.V(50, 50) {
				t.Errorf("Player = %+v, expected back at spawn", next.Player)
			}
			if !hasEvent(events, EventTimeout) {
				t.Error("expected a timeout event")
			}
		})
	}
}

func TestTimeoutLimitEndsRun(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	cfg.Timer.MaxTimeouts = 3
	e := newTestEngine(t, cfg, 2)

	s := e.NewRun()
	for i := 1; i <= 3; i++ {
		s, _ = e.Tick(s, cfg.Timer.Budget+1, IntentNone)
		if s.Timeouts != i {
			t.Fatalf("after timeout %d Timeouts = %d", i, s.Timeouts)
		}
	}

	if !s.GameOver || s.EndReason != EndTimeout {
		t.Errorf("GameOver=%v EndReason=%q, expected game over by timeout", s.GameOver, s.EndReason)
	}
	if s.TimeLeft < 0 {
		t.Errorf("TimeLeft = %v, expected >= 0", s.TimeLeft)
	}
}

func TestTimeoutUnlimited(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	cfg.Timer.MaxTimeouts = 0
	e := newTestEngine(t, cfg, 2)

	s := e.NewRun()
	for i := 0; i < 10; i++ {
		s, _ = e.Tick(s, cfg.Timer.Budget, IntentNone)
	}
	if s.GameOver {
		t.Error("max_timeouts 0 should never end the run")
	}
	if s.Timeouts != 10 {
		t.Errorf("Timeouts = %d, expected 10", s.Timeouts)
	}
}

func TestTimerDecay(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)
	s := bareState(cfg)

	next, _ := e.Tick(s, 0.5, IntentNone)
	if next.TimeLeft != cfg.Timer.Budget-0.5 {
		t.Errorf("TimeLeft = %v, expected %v", next.TimeLeft, cfg.Timer.Budget-0.5)
	}

	next, _ = e.Tick(s, -3, IntentNone)
	if next.TimeLeft != cfg.Timer.Budget {
		t.Errorf("negative dt changed TimeLeft to %v", next.TimeLeft)
	}
}

func TestCollectMoneyOnce(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Player = core.V(96, 100)
	s.Score = 250
	s.Money = []Money{
		{ID: 0, Pos: core.V(100, 100), Value: 100},
		{ID: 1, Pos: core.V(400, 400), Value: 100},
	}

	next, events := e.Tick(s, testDt, Intent{Right: true})
	if next.Player != core.V(100, 100) {
		t.Fatalf("Player = %+v, expected (100,100)", next.Player)
	}
	if !next.Money[0].Collected || next.Money[1].Collected {
		t.Errorf("Collected = [%v %v], expected [true false]", next.Money[0].Collected, next.Money[1].Collected)
	}
	if next.Score != 350 {
		t.Errorf("Score = %d, expected 350", next.Score)
	}
	if !hasEvent(events, EventCollect) {
		t.Error("expected a collect event")
	}

	again, events := e.Tick(next, testDt, IntentNone)
	if again.Score != 350 {
		t.Errorf("second tick Score = %d, expected 350", again.Score)
	}
	if hasEvent(events, EventCollect) {
		t.Error("collected item raised a second collect event")
	}

	if s.Money[0].Collected {
		t.Error("Tick mutated the previous state")
	}
}

func TestCaptureEndsRun(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Player = core.V(300, 300)
	s.Score = 800
	s.Guards = []Guard{{
		ID:    3,
		Pos:   core.V(305, 300),
		Path:  []Point{core.V(305, 300), core.V(405, 300)},
		Speed: 1.7,
	}}

	next, events := e.Tick(s, testDt, IntentNone)
	if !next.GameOver || next.EndReason != EndCaptured {
		t.Fatalf("GameOver=%v EndReason=%q, expected captured", next.GameOver, next.EndReason)
	}
	if !hasEvent(events, EventCaptured) {
		t.Error("expected a captured event")
	}

	frozen := next
	for i := 0; i < 30; i++ {
		next, _ = e.Tick(next, testDt, Intent{Right: true}, Pause(), SubmitCode("4321"))
	}
	if !next.GameOver || next.Player != frozen.Player || next.TimeLeft != frozen.TimeLeft || next.Paused {
		t.Error("game over state should be frozen to everything but restart")
	}
	if next.Score != 800 {
		t.Errorf("Score = %d, expected 800 kept until restart", next.Score)
	}

	restarted, events := e.Tick(next, testDt, IntentNone, Restart())
	if restarted.GameOver || restarted.Floor != 1 || restarted.Score != 0 {
		t.Errorf("after restart GameOver=%v Floor=%d Score=%d", restarted.GameOver, restarted.Floor, restarted.Score)
	}
	if !hasEvent(events, EventRestarted) {
		t.Error("expected a restarted event")
	}
}

func TestCodeStation(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Player = s.Station.Add(core.V(-10, 10))

	next, events := e.Tick(s, testDt, IntentNone)
	if !next.FoundPassword {
		t.Fatal("standing at the station should reveal the code")
	}
	if !hasEvent(events, EventCodeFound) {
		t.Error("expected a code found event")
	}

	next.Player = core.V(300, 300)
	next, events = e.Tick(next, testDt, IntentNone)
	if !next.FoundPassword {
		t.Error("FoundPassword reverted after leaving the station")
	}
	if hasEvent(events, EventCodeFound) {
		t.Error("code found raised twice")
	}
}

func TestDoorOpensTerminalOnEntry(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Player = s.Door.Add(core.V(-32, 0))

	// Step into the zone
	s, events := e.Tick(s, testDt, Intent{Right: true})
	if !s.ShowTerminal || !s.InDoorZone {
		t.Fatalf("ShowTerminal=%v InDoorZone=%v, expected both true", s.ShowTerminal, s.InDoorZone)
	}
	if !hasEvent(events, EventTerminalOpened) {
		t.Error("expected a terminal opened event")
	}
	if s.Phase() != PhaseTerminalOpen {
		t.Errorf("Phase() = %s, expected terminal_open", s.Phase())
	}

	// Terminal blocks simulation
	blockedState, _ := e.Tick(s, testDt, Intent{Left: true})
	if blockedState.Player != s.Player || blockedState.TimeLeft != s.TimeLeft {
		t.Error("simulation advanced while the terminal was open")
	}

	// Abort keeps the player in the zone without reopening
	s, events = e.Tick(s, testDt, IntentNone, AbortTerminal())
	if s.ShowTerminal || !hasEvent(events, EventTerminalAborted) {
		t.Fatal("abort should close the terminal")
	}
	s, _ = e.Tick(s, testDt, IntentNone)
	if s.ShowTerminal {
		t.Error("terminal reopened while the player never left the zone")
	}

	// Leave and come back
	for i := 0; i < 3; i++ {
		s, _ = e.Tick(s, testDt, Intent{Left: true})
	}
	if s.InDoorZone {
		t.Fatalf("player at %+v should be outside the door zone", s.Player)
	}
	for i := 0; i < 3 && !s.ShowTerminal; i++ {
		s, _ = e.Tick(s, testDt, Intent{Right: true})
	}
	if !s.ShowTerminal {
		t.Error("re-entering the door zone should reopen the terminal")
	}
}

func TestSubmitCorrectCode(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := e.NewRun()
	s.Score = 1400
	s.TimeLeft = 12
	s.FoundPassword = true
	s.ShowTerminal = true
	s.InDoorZone = true
	s.Player = s.Door

	next, events := e.Tick(s, testDt, IntentNone, SubmitCode(s.Password))

	if next.ShowTerminal {
		t.Error("terminal should close on a correct code")
	}
	if next.Floor != 2 {
		t.Errorf("Floor = %d, expected 2", next.Floor)
	}
	if next.TimeLeft != cfg.Timer.Budget {
		t.Errorf("TimeLeft = %v, expected %v", next.TimeLeft, cfg.Timer.Budget)
	}
	if next.Score != 1400 {
		t.Errorf("Score = %d, expected 1400", next.Score)
	}
	if next.FoundPassword {
		t.Error("new floor should start with the code unknown")
	}
	if next.FloorsCleared != 1 {
		t.Errorf("FloorsCleared = %d, expected 1", next.FloorsCleared)
	}
	if len(next.Money) != MoneyCount(cfg, 2) || len(next.Guards) != GuardCount(cfg, 2) {
		t.Error("floor 2 should be generated with floor 2 counts")
	}
	if !hasEvent(events, EventCodeAccepted) || !hasEvent(events, EventFloorAdvanced) {
		t.Error("expected code accepted and floor advanced events")
	}
}

func TestSubmitWrongCode(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Score = 600
	s.ShowTerminal = true
	s.InDoorZone = true
	s.Player = s.Door

	next, events := e.Tick(s, testDt, IntentNone, SubmitCode("0000"))

	if next.ShowTerminal {
		t.Error("terminal should close on a wrong code")
	}
	if next.FoundPassword {
		t.Error("wrong code should not solve the password")
	}
	if next.Floor != 1 || next.Score != 600 {
		t.Errorf("Floor=%d Score=%d, expected floor 1 score 600", next.Floor, next.Score)
	}
	if !hasEvent(events, EventCodeRejected) {
		t.Error("expected a code rejected event")
	}

	moved := next.Player.Dist(s.Door)
	if moved < cfg.Interaction.NudgeDistance-0.001 || moved > cfg.Interaction.NudgeDistance+0.001 {
		t.Errorf("player nudged %v from the door, expected %v", moved, cfg.Interaction.NudgeDistance)
	}
	if next.InDoorZone {
		t.Error("nudged player should be outside the door zone")
	}
	if next.Player.X >= s.Door.X || next.Player.Y >= s.Door.Y {
		t.Errorf("nudge should push toward the interior, player at %+v", next.Player)
	}
}

func TestNudgeRespectsWalls(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	s.Walls = append(s.Walls, core.NewRect(700, 500, 20, 20))
	s.ShowTerminal = true
	s.InDoorZone = true
	s.Player = s.Door

	next, _ := e.Tick(s, testDt, IntentNone, SubmitCode("9999"))
	if blocked(next.Player, cfg.Player.Size, next.Walls) {
		t.Errorf("nudge moved the player into a wall at %+v", next.Player)
	}
}

func TestCommandsIgnoredWithoutTerminal(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)

	s := bareState(cfg)
	next, events := e.Tick(s, testDt, IntentNone, SubmitCode("4321"), AbortTerminal())

	if next.Floor != 1 {
		t.Errorf("Floor = %d, submit without an open terminal should be ignored", next.Floor)
	}
	if hasEvent(events, EventCodeAccepted) || hasEvent(events, EventTerminalAborted) {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestPauseToggle(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 1)
	s := bareState(cfg)

	paused, events := e.Tick(s, testDt, IntentNone, Pause())
	if !paused.Paused || !hasEvent(events, EventPaused) {
		t.Fatal("pause command should pause")
	}
	if paused.TimeLeft != s.TimeLeft || paused.Ticks != s.Ticks {
		t.Error("paused tick should not advance the simulation")
	}

	held, _ := e.Tick(paused, testDt, Intent{Right: true})
	if held.Player != s.Player || held.TimeLeft != s.TimeLeft {
		t.Error("simulation advanced while paused")
	}

	resumed, events := e.Tick(held, 0, IntentNone, Pause())
	if resumed.Paused || !hasEvent(events, EventResumed) {
		t.Error("second pause command should resume")
	}

	twice, _ := e.Tick(s, 0, IntentNone, Pause(), Pause())
	if twice.Paused != s.Paused {
		t.Error("pause toggled twice should return to the original state")
	}
}

func TestTickDoesNotMutatePrev(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, 5)

	prev := e.NewRun()
	before := TakeSnapshot(prev)
	for i := 0; i < 10; i++ {
		e.Tick(prev, testDt, Intent{Right: true, Down: true})
	}
	after := TakeSnapshot(prev)

	if before.Hash() != after.Hash() {
		t.Error("Tick mutated its input state")
	}
}

// randomWalk drives a run with seeded random input, restarting after game
// over and resolving the terminal with a mix of right and wrong codes.
func randomWalk(t *testing.T, seed int64, ticks int, check func(prev, next GameState)) {
	t.Helper()
	cfg := config.DefaultHeistConfig()
	e := newTestEngine(t, cfg, seed)
	input := rand.New(rand.NewSource(seed * 7919))

	s := e.NewRun()
	var intent Intent
	for i := 0; i < ticks; i++ {
		if i%12 == 0 {
			intent = Intent{
				Up:    input.Intn(3) == 0,
				Down:  input.Intn(3) == 0,
				Left:  input.Intn(3) == 0,
				Right: input.Intn(2) == 0,
			}
		}

		var cmds []Command
		switch {
		case s.GameOver:
			cmds = append(cmds, Restart())
		case s.ShowTerminal:
			switch input.Intn(3) {
			case 0:
				cmds = append(cmds, SubmitCode(s.Password))
			case 1:
				cmds = append(cmds, SubmitCode("0000"))
			default:
				cmds = append(cmds, AbortTerminal())
			}
		case input.Intn(400) == 0:
			cmds = append(cmds, Pause())
		case s.Paused:
			cmds = append(cmds, Pause())
		}

		dt := testDt
		if input.Intn(500) == 0 {
			dt = cfg.Timer.Budget // force a timeout now and then
		}

		next, _ := e.Tick(s, dt, intent, cmds...)
		check(s, next)
		s = next
	}
}

func TestPropertyCollisionSoundness(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	for seed := int64(1); seed <= 5; seed++ {
		randomWalk(t, seed, 4000, func(_, next GameState) {
			if blocked(next.Player, cfg.Player.Size, next.Walls) {
				t.Fatalf("seed %d: player at %+v overlaps a wall on floor %d", seed, next.Player, next.Floor)
			}
			minX, minY, maxX, maxY := cfg.Interior()
			if next.Player.X < minX || next.Player.X > maxX || next.Player.Y < minY || next.Player.Y > maxY {
				t.Fatalf("seed %d: player at %+v outside the interior", seed, next.Player)
			}
		})
	}
}

func TestPropertyPathIndexInRange(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		randomWalk(t, seed, 4000, func(_, next GameState) {
			for _, g := range next.Guards {
				if len(g.Path) == 0 || g.PathIndex < 0 || g.PathIndex >= len(g.Path) {
					t.Fatalf("seed %d: guard %d PathIndex %d with %d waypoints", seed, g.ID, g.PathIndex, len(g.Path))
				}
			}
		})
	}
}

func TestPropertyTimeLeftNonNegative(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		randomWalk(t, seed, 4000, func(_, next GameState) {
			if next.TimeLeft < 0 {
				t.Fatalf("seed %d: TimeLeft = %v after tick %d", seed, next.TimeLeft, next.Ticks)
			}
		})
	}
}

func TestPropertyMonotonicFlags(t *testing.T) {
	sameFloor := func(prev, next GameState) bool {
		return prev.Floor == next.Floor && prev.Timeouts == next.Timeouts &&
			prev.Ticks <= next.Ticks && len(prev.Money) == len(next.Money) && next.Ticks != 0
	}

	for seed := int64(1); seed <= 5; seed++ {
		randomWalk(t, seed, 4000, func(prev, next GameState) {
			if !sameFloor(prev, next) {
				return
			}
			if prev.FoundPassword && !next.FoundPassword {
				t.Fatalf("seed %d: FoundPassword reverted on floor %d", seed, next.Floor)
			}
			for i := range prev.Money {
				if prev.Money[i].Collected && !next.Money[i].Collected {
					t.Fatalf("seed %d: money %d un-collected", seed, i)
				}
			}
			if next.Score < prev.Score {
				t.Fatalf("seed %d: score dropped from %d to %d within a floor", seed, prev.Score, next.Score)
			}
		})
	}
}

func TestPhase(t *testing.T) {
	tests := []struct {
		state GameState
		want  Phase
	}{
		{GameState{}, PhaseActive},
		{GameState{Paused: true}, PhasePaused},
		{GameState{ShowTerminal: true}, PhaseTerminalOpen},
		{GameState{ShowTerminal: true, Paused: true}, PhaseTerminalOpen},
		{GameState{GameOver: true, Paused: true}, PhaseGameOver},
	}

	for _, tc := range tests {
		if got := tc.state.Phase(); got != tc.want {
			t.Errorf("Phase() = %s, expected %s", got, tc.want)
		}
	}
}
