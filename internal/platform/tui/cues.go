package tui

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/goldnoam/great-heist/internal/core"
)

// CueSink receives the presentation cues raised by each tick.
// Sinks are fire-and-forget: the simulation never waits on them.
type CueSink interface {
	Cue(c core.Cue)
}

// NopSink discards every cue.
type NopSink struct{}

// Cue implements CueSink.
func (NopSink) Cue(core.Cue) {}

// LogSink writes cues to a structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink that logs through logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// notableCues are logged at info level; the rest at debug.
var notableCues = []string{
	"captured",
	"timeout",
	"floor_advanced",
	"restarted",
	"placement_fallback",
}

// Cue implements CueSink.
func (s *LogSink) Cue(c core.Cue) {
	if s.logger == nil {
		return
	}
	if slices.Contains(notableCues, c.Name) {
		s.logger.Info("cue", "name", c.Name, "value", c.Value)
		return
	}
	s.logger.Debug("cue", "name", c.Name, "value", c.Value)
}

// BellSink rings the terminal bell for selected cues.
type BellSink struct {
	w     io.Writer
	names []string
}

// NewBellSink creates a sink that writes BEL to w for the named cues.
func NewBellSink(w io.Writer, names ...string) *BellSink {
	if len(names) == 0 {
		names = []string{"captured", "code_found", "floor_advanced", "timeout"}
	}
	return &BellSink{w: w, names: names}
}

// Cue implements CueSink.
func (s *BellSink) Cue(c core.Cue) {
	if s.w == nil || !slices.Contains(s.names, c.Name) {
		return
	}
	//nolint:errcheck // A missed bell is harmless
	s.w.Write([]byte{'\a'})
}

// MultiSink fans cues out to several sinks.
type MultiSink []CueSink

// Cue implements CueSink.
func (m MultiSink) Cue(c core.Cue) {
	for _, s := range m {
		s.Cue(c)
	}
}

// dispatch delivers cues to sink. A panicking sink loses the rest of the
// batch but never the tick.
func dispatch(sink CueSink, cues []core.Cue, logger *log.Logger) {
	if sink == nil || len(cues) == 0 {
		return
	}
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("cue sink panicked", "panic", r)
		}
	}()
	for _, c := range cues {
		sink.Cue(c)
	}
}
