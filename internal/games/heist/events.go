package heist

// EventKind identifies an edge-triggered transition observed during a tick.
type EventKind int

const (
	EventCollect EventKind = iota + 1
	EventCodeFound
	EventTerminalOpened
	EventCodeAccepted
	EventCodeRejected
	EventTerminalAborted
	EventFloorAdvanced
	EventTimeout
	EventCaptured
	EventPaused
	EventResumed
	EventRestarted
	EventPlacementFallback
)

// String returns the cue name used by sinks and logs.
func (k EventKind) String() string {
	switch k {
	case EventCollect:
		return "collect"
	case EventCodeFound:
		return "code_found"
	case EventTerminalOpened:
		return "terminal_opened"
	case EventCodeAccepted:
		return "code_accepted"
	case EventCodeRejected:
		return "code_rejected"
	case EventTerminalAborted:
		return "terminal_aborted"
	case EventFloorAdvanced:
		return "floor_advanced"
	case EventTimeout:
		return "timeout"
	case EventCaptured:
		return "captured"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventRestarted:
		return "restarted"
	case EventPlacementFallback:
		return "placement_fallback"
	default:
		return "unknown"
	}
}

// Event is one transition raised by Engine.Tick.
// Events describe what already happened; nothing in the engine reads them back.
type Event struct {
	Kind    EventKind
	MoneyID int // EventCollect
	GuardID int // EventCaptured
	Value   int // Amount collected, penalty applied, new floor, fallback count
}
