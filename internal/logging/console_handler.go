package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human readable line per record:
//
//	2026-01-02T15:04:05Z INFO  catalog/load: catalog loaded movies=4,803 (loader.go:42)
//
// Component and stage are lifted out of the attributes into the prefix.
// Attributes bound through WithAttrs are rendered once, not per record.
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Leveler
	addSource bool

	component string
	stage     string
	bound     string
	group     string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	component, stage := h.component, h.stage

	var fields strings.Builder
	fields.WriteString(h.bound)
	record.Attrs(func(attr slog.Attr) bool {
		if h.group == "" {
			switch attr.Key {
			case FieldComponent:
				component = attr.Value.String()
				return true
			case FieldStage:
				stage = attr.Value.String()
				return true
			}
		}
		appendAttr(&fields, h.group, attr)
		return true
	})

	var line strings.Builder
	line.Grow(96 + fields.Len())
	line.WriteString(ts.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	fmt.Fprintf(&line, "%-5s", levelName(record.Level))
	line.WriteByte(' ')
	if prefix := joinNonEmpty(component, stage); prefix != "" {
		line.WriteString(prefix)
		line.WriteString(": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	line.WriteString(msg)
	line.WriteString(fields.String())
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil && src.File != "" {
			line.WriteString(" (")
			line.WriteString(filepath.Base(src.File))
			line.WriteByte(':')
			line.WriteString(strconv.Itoa(src.Line))
			line.WriteByte(')')
		}
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	var bound strings.Builder
	bound.WriteString(h.bound)
	for _, attr := range attrs {
		if h.group == "" && attr.Key == FieldComponent {
			next.component = attr.Value.String()
			continue
		}
		if h.group == "" && attr.Key == FieldStage {
			next.stage = attr.Value.String()
			continue
		}
		appendAttr(&bound, h.group, attr)
	}
	next.bound = bound.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = qualify(h.group, name)
	return &next
}

func appendAttr(b *strings.Builder, group string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := group
		if attr.Key != "" {
			inner = qualify(group, attr.Key)
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, inner, member)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(qualify(group, attr.Key))
	b.WriteByte('=')
	b.WriteString(renderValue(attr.Value))
}

func qualify(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	}
	var s string
	if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
		s = err.Error()
	} else {
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
