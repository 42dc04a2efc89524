package parser

import (
	"io"
	"log/slog"
)

// Tracer observes the parser's descent through expression rules.
type Tracer interface {
	Enter(string)
	Leave(string)
	Error(string, error)
}

type discardTracer struct{}

func (discardTracer) Enter(string)        {}
func (discardTracer) Leave(string)        {}
func (discardTracer) Error(string, error) {}

type slogTracer struct {
	logger *slog.Logger
	depth  int
}

// TraceTo returns a Tracer logging debug records to w.
func TraceTo(w io.Writer) Tracer {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return TraceLogger(slog.New(slog.NewTextHandler(w, &opts)))
}

// TraceLogger returns a Tracer logging through logger.
func TraceLogger(logger *slog.Logger) Tracer {
	return &slogTracer{logger: logger}
}

func (t *slogTracer) Enter(rule string) {
	t.depth++
	t.logger.Debug("enter", "rule", rule, "depth", t.depth)
}

func (t *slogTracer) Leave(rule string) {
	t.logger.Debug("leave", "rule", rule, "depth", t.depth)
	t.depth--
}

func (t *slogTracer) Error(rule string, err error) {
	t.logger.Debug("fail", "rule", rule, "depth", t.depth, "error", err)
}
