package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CodeLength is the number of digits the door terminal accepts.
const CodeLength = 4

var (
	terminalLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	terminalHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// CodeInput is the door terminal's keypad.
type CodeInput struct {
	input textinput.Model
}

// NewCodeInput creates a closed keypad.
func NewCodeInput() CodeInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "0000"
	ti.CharLimit = CodeLength
	ti.Width = CodeLength + 1
	return CodeInput{input: ti}
}

// Open clears the keypad and gives it focus.
func (c *CodeInput) Open() tea.Cmd {
	c.input.Reset()
	return c.input.Focus()
}

// Close clears the keypad and drops focus.
func (c *CodeInput) Close() {
	c.input.Reset()
	c.input.Blur()
}

// IsOpen reports whether the keypad has focus.
func (c CodeInput) IsOpen() bool {
	return c.input.Focused()
}

// Value returns the digits typed so far.
func (c CodeInput) Value() string {
	return c.input.Value()
}

// Update feeds a message to the keypad. Runes other than digits are dropped.
func (c CodeInput) Update(msg tea.Msg) (CodeInput, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyRunes {
		for _, r := range km.Runes {
			if r < '0' || r > '9' {
				return c, nil
			}
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the keypad as a single status line.
func (c CodeInput) View() string {
	return terminalLabelStyle.Render("CODE ") + c.input.View() +
		terminalHintStyle.Render("  enter submit • esc step back")
}
