package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/goldnoam/great-heist/internal/core"
	"github.com/goldnoam/great-heist/internal/registry"
	"github.com/goldnoam/great-heist/internal/storage"
)

// statusRows is the number of terminal rows below the game screen.
const statusRows = 1

// Options carries the collaborators shared by every game model of a session.
type Options struct {
	Store     *storage.Store // Run ledger; nil disables saving
	Player    string         // Name recorded with each run
	Sink      CueSink        // Receives tick cues; nil discards them
	Logger    *log.Logger    // nil disables logging
	HoldTicks int            // See NewHeldKeys
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel runs one game: input, fixed-rate ticks, rendering, and the
// ledger entry once the run ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	gen        uint64
	keyMapper  *KeyMapper
	help       help.Model
	held       *HeldKeys
	code       CodeInput
	inputFrame core.InputFrame
	gameState  core.GameState

	runSaved bool
	runID    string // Ledger ID of the last saved run

	quitting         bool
	backToMenu       bool
	wantsLeaderboard bool
}

// NewGameModel resets game and wraps it in a Bubble Tea model.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	game.Reset(cfg)
	if r, ok := game.(registry.ConfigReporter); ok {
		if err := r.ConfigErr(); err != nil {
			opts.logger().Warn("using default tuning", "game", game.ID(), "error", err)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusRows, 1)),
		config:     cfg,
		opts:       opts,
		gen:        nextTickGen(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		held:       NewHeldKeys(opts.HoldTicks),
		code:       NewCodeInput(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// The keypad owns the keyboard while the terminal is open
	if m.code.IsOpen() {
		switch msg.Type {
		case tea.KeyEnter:
			m.inputFrame.Set(core.ActionConfirm)
			m.inputFrame.Text = m.code.Value()
			return m, nil
		case tea.KeyEsc:
			m.inputFrame.Set(core.ActionBack)
			return m, nil
		}
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}

	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Leaderboard):
		if m.gameState.GameOver {
			m.wantsLeaderboard = true
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}
	if m.held.Press(action) {
		return m, nil
	}

	switch action {
	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.abandonRun()
			m.backToMenu = true
		}
	}

	return m, nil
}

func (m GameModel) quit() (tea.Model, tea.Cmd) {
	m.abandonRun()
	m.quitting = true
	return m, tea.Quit
}

// handleResize processes window resize events.
// The game keeps running; only the viewport changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-statusRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.held.Apply(&m.inputFrame)

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	dispatch(m.opts.Sink, result.Cues, m.opts.Logger)

	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
		m.runID = ""
		m.held.ReleaseAll()
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun("")
	}

	// The keypad follows the game's terminal
	var cmd tea.Cmd
	switch {
	case m.gameState.AwaitingText && !m.code.IsOpen():
		cmd = m.code.Open()
		m.held.ReleaseAll()
	case !m.gameState.AwaitingText && m.code.IsOpen():
		m.code.Close()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tea.Batch(tickCmd(m.config.TickRate, m.gen), cmd)
}

// abandonRun records a run that is left before it ended.
func (m *GameModel) abandonRun() {
	if m.runSaved || m.gameState.GameOver {
		return
	}
	if s, ok := m.game.(registry.Summarizer); ok && s.Summary().Ticks == 0 {
		return
	}
	m.saveRun("quit")
}

// saveRun writes the current run to the ledger.
// reason is used when the game does not report one itself.
func (m *GameModel) saveRun(reason string) {
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}

	rec := storage.RunRecord{
		Player:       m.opts.Player,
		FloorReached: m.gameState.Level,
		Score:        m.gameState.Score,
		EndReason:    reason,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		sum := s.Summary()
		rec.FloorReached = sum.Level
		rec.FloorsCleared = sum.LevelsCleared
		rec.Timeouts = sum.Timeouts
		rec.Duration = time.Duration(sum.Ticks) * time.Second / time.Duration(m.config.TickRate)
		if sum.EndReason != "" {
			rec.EndReason = sum.EndReason
		}
	}

	id, err := m.opts.Store.SaveRun(rec)
	if err != nil {
		m.opts.logger().Warn("could not save run", "error", err)
		return
	}
	m.runID = id
	m.opts.logger().Info("run saved",
		"run", id,
		"player", rec.Player,
		"score", rec.Score,
		"floor", rec.FloorReached,
		"end", rec.EndReason,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.logger().Warn("cannot resolve home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".heist", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.logger().Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.logger().Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// statusLine is the row below the game: keypad, or key help.
func (m GameModel) statusLine() string {
	switch {
	case m.code.IsOpen():
		return m.code.View()
	case m.gameState.GameOver:
		return statusStyle.Render(m.help.View(GameOverHelp(m.keyMapper.Keys())))
	default:
		return statusStyle.Render(m.help.View(m.keyMapper.Keys()))
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsLeaderboard returns true if user asked for the leaderboard after a run.
func (m GameModel) WantsLeaderboard() bool {
	return m.wantsLeaderboard
}

// RunID returns the ledger ID of the last saved run, if any.
func (m GameModel) RunID() string {
	return m.runID
}

// GameState returns the state seen on the last tick.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// Run starts a local session that opens straight into gameID.
func Run(gameID string, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewSessionModel(cfg, opts, gameID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
