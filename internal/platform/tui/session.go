package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldnoam/great-heist/internal/core"
	"github.com/goldnoam/great-heist/internal/registry"
)

// SessionModel manages the full session flow: menu -> game -> leaderboard.
// This is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	opts      Options
	config    core.RuntimeConfig
	menu      MenuModel
	gameModel *GameModel
	board     *ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a session. With a non-empty startGame the
// session opens straight into that game instead of the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts Options, startGame string) (SessionModel, error) {
	m := SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg),
	}
	if startGame == "" {
		return m, nil
	}

	game, err := registry.Create(startGame)
	if err != nil {
		return SessionModel{}, err
	}
	gm := NewGameModel(game, cfg, opts)
	m.gameModel = &gm
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)

	case TickMsg:
		// Ticks keep flowing to the game while its leaderboard is open
		if m.gameModel != nil {
			return m.updateGame(msg)
		}
		return m, nil
	}

	switch {
	case m.board != nil:
		return m.updateBoard(msg)
	case m.gameModel != nil:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	if m.gameModel != nil {
		next, _ = m.gameModel.Update(msg)
		gm := next.(GameModel)
		m.gameModel = &gm
	}
	if m.board != nil {
		next, _ = m.board.Update(msg)
		b := next.(ScoreboardModel)
		m.board = &b
	}
	return m, nil
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.menu = NewMenuModel(m.opts.Store, m.config)
		board := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, "")
		m.board = &board
		return m, nil

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// The menu only lists registered games
			m.opts.logger().Error("cannot create game", "error", err)
			m.menu = NewMenuModel(m.opts.Store, m.config)
			return m, nil
		}
		gm := NewGameModel(game, m.config, m.opts)
		m.gameModel = &gm
		return m, gm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	switch {
	case gm.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case gm.BackToMenu():
		m.gameModel = nil
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, m.menu.Init()

	case gm.WantsLeaderboard():
		gm.wantsLeaderboard = false
		m.gameModel = &gm
		board := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, gm.RunID())
		m.board = &board
	}

	return m, cmd
}

// updateBoard handles updates while the leaderboard is shown.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	b := next.(ScoreboardModel)
	m.board = &b

	switch {
	case b.IsQuitting():
		if m.gameModel != nil {
			m.gameModel.abandonRun()
		}
		m.quitting = true
		return m, tea.Quit

	case b.IsGoingBack():
		m.board = nil
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.board != nil:
		return m.board.View()
	case m.gameModel != nil:
		return m.gameModel.View()
	default:
		return m.menu.View()
	}
}

// InGame reports whether a game is running (possibly behind the leaderboard).
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// ShowingLeaderboard reports whether the leaderboard is on screen.
func (m SessionModel) ShowingLeaderboard() bool {
	return m.board != nil
}
