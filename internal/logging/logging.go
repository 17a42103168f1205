// Package logging installs the process-wide slog handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps debug, info, warn and error to their slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// NewHandler returns a tint handler writing to w. Empty attributes are
// dropped.
func NewHandler(w io.Writer, level slog.Leveler, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			skip := false
			switch t := a.Value.Any().(type) {
			case string:
				skip = t == ""
			case time.Duration:
				skip = t == 0
			case nil:
				skip = true
			}
			if skip {
				return slog.Attr{}
			}
			return a
		},
	})
}

// Setup installs a stderr logger as the slog default. Colour is only used
// when stderr is a terminal.
func Setup(level string) (*slog.LevelVar, error) {
	ll := &slog.LevelVar{}
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	ll.Set(l)
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	slog.SetDefault(slog.New(NewHandler(colorable.NewColorable(os.Stderr), ll, noColor)))
	return ll, nil
}
