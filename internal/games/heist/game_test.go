package heist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
	"github.com/goldnoam/great-heist/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultHeistConfig())
	g.Reset(testRuntime(seed))
	return g
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and same inputs must replay identically
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch {
		case i%40 < 15:
			inputSequence[i].Set(core.ActionRight)
		case i%40 < 30:
			inputSequence[i].Set(core.ActionDown)
		default:
			inputSequence[i].Set(core.ActionRight)
			inputSequence[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := newTestGame(12345)
		for _, in := range inputSequence {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.PlayerX != snap2.PlayerX || snap1.PlayerY != snap2.PlayerY {
		t.Errorf("Determinism failed: player positions differ")
	}
}

func TestGameSeedsChangeLayout(t *testing.T) {
	a := newTestGame(1).HeistState()
	b := newTestGame(2).HeistState()

	if a.Password == b.Password && a.Money[0].Pos == b.Money[0].Pos {
		t.Error("different seeds should place money and passwords differently")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42)

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	for i := 0; i < 30; i++ {
		g.Step(right)
	}

	g.Reset(testRuntime(42))
	s := g.HeistState()
	if s.Ticks != 0 || s.Floor != 1 || s.Score != 0 {
		t.Errorf("Reset left ticks=%d floor=%d score=%d", s.Ticks, s.Floor, s.Score)
	}
	if s.Player != core.V(50, 50) {
		t.Errorf("Reset left the player at %+v", s.Player)
	}
}

func TestGamePauseInput(t *testing.T) {
	g := newTestGame(1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	result := g.Step(pause)
	if !result.State.Paused {
		t.Fatal("ActionPause should pause the game")
	}
	if len(result.Cues) == 0 || result.Cues[0].Name != "paused" {
		t.Errorf("Cues = %+v, expected a paused cue", result.Cues)
	}

	result = g.Step(pause)
	if result.State.Paused {
		t.Error("second ActionPause should resume")
	}
}

func TestGameRestartOnlyAfterGameOver(t *testing.T) {
	g := newTestGame(1)

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	for i := 0; i < 5; i++ {
		g.Step(right)
	}
	moved := g.HeistState().Player

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if g.HeistState().Player != moved {
		t.Error("restart key during play should be ignored")
	}

	s := g.HeistState()
	s.GameOver = true
	s.EndReason = EndCaptured
	g.state = s

	result := g.Step(restart)
	if result.State.GameOver {
		t.Error("restart after game over should start a new run")
	}
	if g.HeistState().Player != core.V(50, 50) {
		t.Errorf("restarted player at %+v, expected spawn", g.HeistState().Player)
	}
}

func TestGameTerminalInput(t *testing.T) {
	g := newTestGame(9)
	s := g.HeistState()
	s.ShowTerminal = true
	s.InDoorZone = true
	s.Player = s.Door
	g.state = s

	if !g.State().AwaitingText {
		t.Fatal("State().AwaitingText should be true while the terminal is open")
	}

	submit := core.NewInputFrame()
	submit.Set(core.ActionConfirm)
	submit.Text = s.Password

	result := g.Step(submit)
	if result.State.Level != 2 {
		t.Errorf("Level = %d after the correct code, expected 2", result.State.Level)
	}
	if result.State.AwaitingText {
		t.Error("terminal should be closed on the new floor")
	}

	names := make([]string, len(result.Cues))
	for i, c := range result.Cues {
		names[i] = c.Name
	}
	if !strings.Contains(strings.Join(names, ","), "floor_advanced") {
		t.Errorf("Cues = %v, expected floor_advanced", names)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(3)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Player spawn (50,50) maps to column 5, row 2 + 1
	if got := screen.Get(5, 3); got != PlayerChar {
		t.Errorf("cell (5,3) = %q, expected player %q", got, PlayerChar)
	}
	if !strings.Contains(screen.Row(0), "Floor 1") {
		t.Errorf("HUD row %q should show the floor", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Code ????") {
		t.Errorf("HUD row %q should hide the unknown code", screen.Row(0))
	}

	out := screen.String()
	for _, r := range []rune{WallChar, MoneyChar, DoorChar, StationChar, GuardChar} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("rendered screen is missing %q", r)
		}
	}
}

func TestRenderClockWarning(t *testing.T) {
	g := newTestGame(3)
	screen := core.NewScreen(80, 24)

	clockColor := func() core.Color {
		col := strings.Index(screen.Row(0), "Time")
		if col < 0 {
			t.Fatalf("HUD row %q has no clock", screen.Row(0))
		}
		return screen.GetCell(col, 0).Color
	}

	g.Render(screen)
	if c := clockColor(); c != core.ColorDefault {
		t.Errorf("clock color = %v with a full budget, expected default", c)
	}

	g.state.TimeLeft = lowTime
	g.Render(screen)
	if c := clockColor(); c != core.ColorWarning {
		t.Errorf("clock color = %v at %v seconds, expected warning", c, lowTime)
	}
	if !strings.Contains(screen.Row(0), "Time 10  Cash") {
		t.Errorf("HUD row %q lost its layout", screen.Row(0))
	}
}

func TestGameRenderOverlays(t *testing.T) {
	g := newTestGame(3)
	screen := core.NewScreen(80, 24)

	s := g.HeistState()
	s.GameOver = true
	s.EndReason = EndTimeout
	g.state = s
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF TIME") {
		t.Error("timeout game over should show OUT OF TIME")
	}

	s.GameOver = false
	s.ShowTerminal = true
	g.state = s
	g.Render(screen)
	if !strings.Contains(screen.String(), "ACCESS TERMINAL") {
		t.Error("open terminal should show the access overlay")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(3)
	screen := core.NewScreen(4, 2)
	g.Render(screen) // must not panic
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("heist") {
		t.Fatal("heist should register itself")
	}
	game, err := registry.Create("heist")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if game.Title() != "The Great Heist" {
		t.Errorf("Title() = %q", game.Title())
	}
}

func TestGameSummary(t *testing.T) {
	g := newTestGame(5)
	var _ registry.Summarizer = g

	s := g.HeistState()
	s.Floor = 3
	s.FloorsCleared = 2
	s.Score = 700
	s.Timeouts = 1
	s.Ticks = 900
	s.GameOver = true
	s.EndReason = EndCaptured
	g.state = s

	sum := g.Summary()
	if sum.Level != 3 || sum.LevelsCleared != 2 || sum.Score != 700 || sum.Timeouts != 1 || sum.Ticks != 900 {
		t.Errorf("Summary() = %+v, fields do not match the state", sum)
	}
	if sum.EndReason != "captured" {
		t.Errorf("Summary().EndReason = %q, expected captured", sum.EndReason)
	}
}

func TestGameConfigLoadFailure(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { SetConfigPath("") })

	SetConfigPath(filepath.Join(dir, "missing.yaml"))
	g := New()
	g.Reset(testRuntime(1))
	if g.ConfigErr() == nil {
		t.Fatal("ConfigErr() = nil, expected the load failure")
	}
	if g.cfg != config.DefaultHeistConfig() {
		t.Error("first failed load should fall back to the default tuning")
	}

	custom := filepath.Join(dir, "heist.yaml")
	if err := os.WriteFile(custom, []byte("timer:\n  budget: 42\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(custom)
	g.Reset(testRuntime(1))
	if err := g.ConfigErr(); err != nil {
		t.Fatalf("ConfigErr() = %v, expected nil", err)
	}
	if g.cfg.Timer.Budget != 42 {
		t.Fatalf("Timer.Budget = %v, expected 42", g.cfg.Timer.Budget)
	}

	// A later failure keeps the tuning that was in effect
	SetConfigPath(filepath.Join(dir, "missing.yaml"))
	g.Reset(testRuntime(1))
	if g.ConfigErr() == nil {
		t.Error("ConfigErr() = nil after a failed reload")
	}
	if g.cfg.Timer.Budget != 42 {
		t.Errorf("Timer.Budget = %v after failed reload, expected 42", g.cfg.Timer.Budget)
	}
}

func TestFixedConfigSkipsLoading(t *testing.T) {
	t.Cleanup(func() { SetConfigPath("") })
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := newTestGame(1)
	var _ registry.ConfigReporter = g
	if err := g.ConfigErr(); err != nil {
		t.Errorf("ConfigErr() = %v, expected nil for fixed tuning", err)
	}
}
