package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiGray    = "\033[90m"
)

// PrettyHandler is a slog.Handler that renders compact colored lines for
// terminal output: time, level tag, message, key=value attributes.
type PrettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	groups []string
	attrs  []slog.Attr
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether records at level are handled.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

// Handle formats and writes one record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, 256)

	if !r.Time.IsZero() {
		line = append(line, ansiGray...)
		line = r.Time.AppendFormat(line, time.TimeOnly)
		line = append(line, ansiReset...)
		line = append(line, ' ')
	}

	line = append(line, levelTag(r.Level)...)
	line = append(line, ' ')
	line = append(line, r.Message...)

	// Attrs attached via WithAttrs already carry their group prefix;
	// record attrs take the currently open groups.
	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		line = appendAttr(line, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		line = appendAttr(line, prefix, a)
		return true
	})
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(line)
	return err
}

// WithAttrs returns a handler that prepends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" && a.Key != "" {
			a.Key = prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return next
}

// WithGroup returns a handler that qualifies subsequent attr keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

// clone shares the writer and its mutex so derived handlers never
// interleave lines.
func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		groups: append([]string(nil), h.groups...),
		attrs:  append([]slog.Attr(nil), h.attrs...),
	}
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed + ansiBold + "ERROR" + ansiReset
	case level >= slog.LevelWarn:
		return ansiYellow + ansiBold + " WARN" + ansiReset
	case level >= slog.LevelInfo:
		return ansiBlue + ansiBold + " INFO" + ansiReset
	default:
		return ansiMagenta + ansiBold + "DEBUG" + ansiReset
	}
}

func appendAttr(line []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return line
	}
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			line = appendAttr(line, key, ga)
		}
		return line
	}

	line = append(line, ' ')
	line = append(line, ansiCyan...)
	line = append(line, key...)
	line = append(line, '=')
	switch a.Value.Kind() {
	case slog.KindString:
		line = appendQuoted(line, a.Value.String())
	case slog.KindTime:
		line = a.Value.Time().AppendFormat(line, time.RFC3339)
	default:
		line = append(line, a.Value.String()...)
	}
	return append(line, ansiReset...)
}

func appendQuoted(line []byte, s string) []byte {
	if strings.ContainsAny(s, " \t\n\"=") {
		return strconv.AppendQuote(line, s)
	}
	return append(line, s...)
}
