package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/effxhq/go-homebrew/config"
)

// newLogger writes to stderr so log lines never interleave with the console frames on stdout. Format "auto" picks the
// text handler on a terminal and JSON when stderr is piped.
func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch {
	case cfg.Format == "json":
		handler = slog.NewJSONHandler(os.Stderr, options)
	case cfg.Format == "text" || term.IsTerminal(int(os.Stderr.Fd())):
		handler = slog.NewTextHandler(os.Stderr, options)
	default:
		handler = slog.NewJSONHandler(os.Stderr, options)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
