package trace

import (
	"io"
	"sync"
)

const (
	chromeHeader = "{\"traceEvents\":[\n"
	chromeSep    = ",\n"
	chromeFooter = "\n]}\n"
)

// StreamTracer formats and writes every event as it arrives. Write errors
// are dropped: tracing never fails a check run.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	owned  io.Closer // set when the tracer opened w itself
	level  Level
	format Format
	wrote  bool
}

// NewStreamTracer writes to w. Close does not close w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	st := &StreamTracer{w: w, level: level, format: format}
	if format == FormatChrome {
		_, _ = io.WriteString(w, chromeHeader)
	}
	return st
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.format == FormatChrome && t.wrote {
		_, _ = io.WriteString(t.w, chromeSep)
	}
	t.wrote = true
	_, _ = t.w.Write(data)
}

// Flush forwards to w when it buffers (bufio.Writer and friends).
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close terminates a chrome document and closes a file opened by New.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.format == FormatChrome {
		_, _ = io.WriteString(t.w, chromeFooter)
	}
	err := t.flushLocked()
	if t.owned != nil {
		if cerr := t.owned.Close(); err == nil {
			err = cerr
		}
		t.owned = nil
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
