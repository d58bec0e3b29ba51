// Hello is the example homebrew program. It greets the user on the log console, redraws the console until it is asked
// to exit (Ctrl-C or SIGTERM when hosted), says good bye and releases the console and the process context.
//
// Usage:
//
//	hello [--config file.yaml] [--log-level level] [--metrics-addr host:port]
//
// Environment variables:
//
//	HOMEBREW_CONFIG  config file used when --config is not given
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/effxhq/go-homebrew"
	"github.com/effxhq/go-homebrew/config"
	"github.com/effxhq/go-homebrew/console"
	"github.com/effxhq/go-homebrew/metrics"
	"github.com/effxhq/go-homebrew/ostime"
	"github.com/effxhq/go-homebrew/proc"
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hello: %v\n", err)
		os.Exit(homebrew.ExitFailure)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	flags := pflag.NewFlagSet("hello", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the YAML config file (default $"+config.EnvironmentVariable+")")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	metricsAddress := flags.String("metrics-addr", "", "serve Prometheus metrics on this address (overrides the config file)")
	if err := flags.Parse(args); err != nil {
		return homebrew.ExitFailure, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return homebrew.ExitFailure, err
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *metricsAddress != "" {
		cfg.Metrics.Address = *metricsAddress
	}
	if err := cfg.Validate(); err != nil {
		return homebrew.ExitFailure, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return homebrew.ExitFailure, err
	}

	pollInterval, err := cfg.Lifecycle.ParsePollInterval()
	if err != nil {
		return homebrew.ExitFailure, err
	}
	lingerDuration, err := cfg.Lifecycle.ParseLingerDuration()
	if err != nil {
		return homebrew.ExitFailure, err
	}

	columns := cfg.Console.Columns
	if columns == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			columns = width
		}
	}

	overlay := console.New(os.Stdout, console.Options{
		Lines:      cfg.Console.Lines,
		Columns:    columns,
		Foreground: cfg.Console.Foreground,
		Background: cfg.Console.Background,
		NoColor:    !cfg.Console.Color,
	})

	app := homebrew.New(proc.New(logger), overlay, ostime.New())
	app.WithPollInterval(pollInterval)
	app.WithLingerDuration(lingerDuration)

	hook := homebrew.LogHook(logger)
	if cfg.Metrics.Address != "" {
		registry := prometheus.NewRegistry()
		collector, err := metrics.New(registry)
		if err != nil {
			return homebrew.ExitFailure, fmt.Errorf("registering metrics: %w", err)
		}
		hook = homebrew.Chain(hook, collector.Hook())

		ctx, cancel := context.WithCancel(app.Context())
		defer cancel()
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Address, registry, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}
	app.WithHook(hook)

	return app.Run(), nil
}
