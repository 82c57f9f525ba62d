package heist

import (
	"fmt"
	"strings"

	"github.com/goldnoam/great-heist/internal/core"
)

// Visual characters for rendering
const (
	WallChar    = '#'
	MoneyChar   = '$'
	GuardChar   = 'G'
	PlayerChar  = '@'
	DoorChar    = 'D'
	StationChar = '?'
)

// hudRows is the number of rows reserved above the play field.
const hudRows = 2

// lowTime is the seconds left at which the HUD clock turns to a warning.
const lowTime = 10.0

// viewport maps canvas coordinates onto the cells below the HUD.
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func newViewport(dst *core.Screen, canvasW, canvasH float64) viewport {
	cols := dst.Width()
	rows := max(dst.Height()-hudRows, 1)
	return viewport{
		cols: cols,
		rows: rows,
		sx:   float64(cols) / canvasW,
		sy:   float64(rows) / canvasH,
	}
}

func (v viewport) cell(p Point) (int, int) {
	x := core.Clamp(int(p.X*v.sx), 0, v.cols-1)
	y := core.Clamp(int(p.Y*v.sy), 0, v.rows-1)
	return x, y + hudRows
}

func (v viewport) fill(dst *core.Screen, r Wall, ch rune, c core.Color) {
	x0, y0 := v.cell(core.V(r.X, r.Y))
	x1, y1 := v.cell(core.V(r.Right()-0.001, r.Bottom()-0.001))
	dst.FillRect(x0, y0, x1-x0+1, y1-y0+1, ch, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderState(dst, g.state, g.cfg.Canvas.Width, g.cfg.Canvas.Height)
}

// RenderState draws s scaled from a canvasW x canvasH field onto dst.
func RenderState(dst *core.Screen, s GameState, canvasW, canvasH float64) {
	dst.Clear()
	if canvasW <= 0 || canvasH <= 0 || dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}
	vp := newViewport(dst, canvasW, canvasH)

	for _, w := range s.Walls {
		vp.fill(dst, w, WallChar, core.ColorWall)
	}

	for _, m := range s.Money {
		if m.Collected {
			continue
		}
		x, y := vp.cell(m.Pos)
		dst.SetColored(x, y, MoneyChar, core.ColorCash)
	}

	x, y := vp.cell(s.Door)
	dst.SetColored(x, y, DoorChar, core.ColorDoor)

	stationColor := core.ColorStation
	if s.FoundPassword {
		stationColor = core.ColorSpent
	}
	x, y = vp.cell(s.Station)
	dst.SetColored(x, y, StationChar, stationColor)

	for _, gd := range s.Guards {
		x, y = vp.cell(gd.Pos)
		dst.SetColored(x, y, GuardChar, core.ColorGuard)
	}

	x, y = vp.cell(s.Player)
	dst.SetColored(x, y, PlayerChar, core.ColorPlayer)

	drawHUD(dst, s)

	switch s.Phase() {
	case PhaseGameOver:
		title := "BUSTED"
		if s.EndReason == EndTimeout {
			title = "OUT OF TIME"
		}
		drawMessage(dst, title, fmt.Sprintf("Floor %d  Score %d  |  R to restart", s.Floor, s.Score))
	case PhaseTerminalOpen:
		drawMessage(dst, "ACCESS TERMINAL", "Enter the 4-digit code  |  Esc to step back")
	case PhasePaused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawHUD(dst *core.Screen, s GameState) {
	code := "????"
	if s.FoundPassword {
		code = s.Password
	}
	head := fmt.Sprintf("Floor %d  Score %d  ", s.Floor, s.Score)
	clock := fmt.Sprintf("Time %02d", int(s.TimeLeft+0.999))
	tail := fmt.Sprintf("  Cash %d/%d  Code %s", len(s.Money)-s.MoneyLeft(), len(s.Money), code)

	clockColor := core.ColorDefault
	if s.TimeLeft <= lowTime {
		clockColor = core.ColorWarning
	}
	dst.DrawText(1, 0, head)
	dst.DrawTextColored(1+len(head), 0, clock, clockColor)
	dst.DrawText(1+len(head)+len(clock), 0, tail)
	dst.DrawHLine(0, 1, dst.Width(), '-')
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	edge := "+" + strings.Repeat("-", boxW-2) + "+"
	dst.DrawText(boxX, boxY, edge)
	dst.DrawText(boxX, boxY+boxH-1, edge)
	for y := boxY + 1; y < boxY+boxH-1; y++ {
		dst.Set(boxX, y, '|')
		dst.Set(boxX+boxW-1, y, '|')
	}

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBanner)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
