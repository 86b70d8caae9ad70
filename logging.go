package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

type LogHandler struct {
	h   slog.Handler
	mu  *sync.Mutex
	out io.Writer
}

func NewLogHandler(o io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: o,
		h: slog.NewTextHandler(o, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu: &sync.Mutex{},
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{h: h.h.WithAttrs(attrs), out: h.out, mu: h.mu}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{h: h.h.WithGroup(name), out: h.out, mu: h.mu}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, r.Level.String(), r.Message}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, a.Key+"="+a.Value.String())
		return true
	})
	b := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(b)
	return err
}

func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Installs the LogHandler writing to out as default logger.
func SetupLogging(out io.Writer, level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewLogHandler(out, &slog.HandlerOptions{Level: lvl})))
	return nil
}
