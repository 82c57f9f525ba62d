package heist

import "github.com/goldnoam/great-heist/internal/core"

// CommandKind identifies a discrete player command.
type CommandKind int

const (
	CommandPause CommandKind = iota + 1 // Toggle pause
	CommandRestart
	CommandSubmitCode
	CommandAbortTerminal
)

func (k CommandKind) String() string {
	switch k {
	case CommandPause:
		return "pause"
	case CommandRestart:
		return "restart"
	case CommandSubmitCode:
		return "submit_code"
	case CommandAbortTerminal:
		return "abort_terminal"
	default:
		return "unknown"
	}
}

// Command is a discrete input applied at the start of a tick.
type Command struct {
	Kind CommandKind
	Code string // CommandSubmitCode only
}

// Pause returns a pause-toggle command.
func Pause() Command { return Command{Kind: CommandPause} }

// Restart returns a restart command.
func Restart() Command { return Command{Kind: CommandRestart} }

// SubmitCode returns a terminal code submission.
func SubmitCode(code string) Command { return Command{Kind: CommandSubmitCode, Code: code} }

// AbortTerminal returns a command closing the terminal without submitting.
func AbortTerminal() Command { return Command{Kind: CommandAbortTerminal} }

// togglePause flips the pause flag. A finished run cannot be paused.
func togglePause(s *GameState) []Event {
	if s.GameOver {
		return nil
	}
	s.Paused = !s.Paused
	if s.Paused {
		return []Event{{Kind: EventPaused}}
	}
	return []Event{{Kind: EventResumed}}
}

// rejectCode closes the terminal and pushes the player away from the door.
func (e *Engine) rejectCode(s *GameState) []Event {
	s.ShowTerminal = false
	s.Player = e.nudgeFromDoor(s.Player, s.Door, s.Walls)
	s.InDoorZone = s.Player.Near(s.Door, e.cfg.Interaction.DoorRange)
	return []Event{{Kind: EventCodeRejected}}
}

// abortTerminal closes the terminal in place. The player stays in the door
// zone and has to step out before the terminal opens again.
func abortTerminal(s *GameState) []Event {
	s.ShowTerminal = false
	return []Event{{Kind: EventTerminalAborted}}
}

// nudgeFromDoor moves pos up to nudge_distance directly away from door,
// in player-speed steps that respect walls and the interior bounds.
func (e *Engine) nudgeFromDoor(pos, door Point, walls []Wall) Point {
	away := pos.Sub(door)
	if away.Len() == 0 {
		away = core.V(-1, -1) // Door sits in the bottom-right corner
	}
	dir := away.Scale(1 / away.Len())

	step := e.cfg.Player.Speed
	remaining := e.cfg.Interaction.NudgeDistance
	for remaining > 0 {
		d := min(step, remaining)
		next := clampInterior(resolveMove(pos, dir.X*d, dir.Y*d, e.cfg.Player.Size, walls), e.cfg)
		if next == pos {
			break
		}
		pos = next
		remaining -= d
	}
	return pos
}
