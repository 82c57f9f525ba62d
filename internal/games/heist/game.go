package heist

import (
	"math/rand"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
	"github.com/goldnoam/great-heist/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts Engine to the platform's registry.Game interface.
type Game struct {
	engine  *Engine
	state   GameState
	runtime core.RuntimeConfig

	cfg      config.HeistConfig
	fixedCfg bool  // cfg was supplied by the caller, skip loading
	cfgErr   error // Last LoadHeist failure; cfg kept its previous value

	lastEvents []Event
}

// New creates a heist game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a heist game with fixed tuning.
func NewWithConfig(cfg config.HeistConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "heist"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "The Great Heist"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		g.loadConfig()
	}

	rng := rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, not security
	g.engine = NewEngine(g.cfg, rng)
	g.state = g.engine.NewRun()
	g.lastEvents = fallbackEvents(g.state)
}

// loadConfig reloads tuning from configPath. On failure the previous
// tuning stays in effect, or the defaults on the first load.
func (g *Game) loadConfig() {
	cfg, err := config.LoadHeist(configPath)
	g.cfgErr = err
	switch {
	case err == nil:
		g.cfg = cfg
	case g.engine == nil:
		g.cfg = config.DefaultHeistConfig()
	}
}

// ConfigErr returns the error from the last config load, if any.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	intent, cmds := g.translate(in)
	g.state, g.lastEvents = g.engine.Tick(g.state, g.runtime.TickSeconds(), intent, cmds...)

	return core.StepResult{
		State: g.State(),
		Cues:  Cues(g.lastEvents),
	}
}

// translate maps platform actions onto a movement intent and commands.
func (g *Game) translate(in core.InputFrame) (Intent, []Command) {
	intent := Intent{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}

	var cmds []Command
	if in.Has(core.ActionPause) {
		cmds = append(cmds, Pause())
	}
	if in.Has(core.ActionRestart) && g.state.GameOver {
		cmds = append(cmds, Restart())
	}
	if g.state.ShowTerminal {
		switch {
		case in.Has(core.ActionConfirm):
			cmds = append(cmds, SubmitCode(in.Text))
		case in.Has(core.ActionBack):
			cmds = append(cmds, AbortTerminal())
		}
	}
	return intent, cmds
}

// Cues converts engine events into platform cues.
func Cues(events []Event) []core.Cue {
	if len(events) == 0 {
		return nil
	}
	cues := make([]core.Cue, len(events))
	for i, ev := range events {
		cues[i] = core.Cue{Name: ev.Kind.String(), Value: ev.Value}
	}
	return cues
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:        g.state.Score,
		Level:        g.state.Floor,
		GameOver:     g.state.GameOver,
		Paused:       g.state.Paused,
		AwaitingText: g.state.ShowTerminal && !g.state.GameOver,
	}
}

// Summary reports the current run for the run ledger.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Level:         g.state.Floor,
		LevelsCleared: g.state.FloorsCleared,
		Score:         g.state.Score,
		Timeouts:      g.state.Timeouts,
		EndReason:     string(g.state.EndReason),
		Ticks:         g.state.Ticks,
	}
}

// HeistState returns the full simulation snapshot.
func (g *Game) HeistState() GameState {
	return g.state
}

// LastEvents returns the events raised by the most recent Step or Reset.
func (g *Game) LastEvents() []Event {
	return g.lastEvents
}

// Config returns the tuning in use.
func (g *Game) Config() config.HeistConfig {
	return g.cfg
}

// Register the game with the registry
func init() {
	registry.Register("heist", func() registry.Game {
		return New()
	})
}
