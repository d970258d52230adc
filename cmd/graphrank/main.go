package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ritzau/graphrank/pkg/analysis"
	"github.com/ritzau/graphrank/pkg/config"
	"github.com/ritzau/graphrank/pkg/logging"
	"github.com/ritzau/graphrank/pkg/output"
	"github.com/ritzau/graphrank/pkg/watcher"
	"github.com/ritzau/graphrank/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("graphrank", pflag.ExitOnError)
	flags.StringP("input", "i", "", "Path to the edge-list CSV file")
	flags.Bool("web", false, "Serve results over HTTP instead of printing to console")
	flags.Int("port", 8080, "Port for the web server (only used with --web)")
	flags.Bool("watch", false, "Re-analyze when the edge list changes")
	flags.Bool("json", false, "Print the report as JSON")
	flags.CountP("verbose", "v", "Increase log verbosity (-v, -vv)")
	flags.String("loglevel", "", "Explicit log level: debug, info, warn, error")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	configureLogging(cfg)

	// The edge list may also be given as a positional argument.
	if cfg.Input == "" && flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}
	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: no edge list given (use --input or a positional argument)")
		flags.Usage()
		os.Exit(1)
	}

	if cfg.WebMode {
		runWeb(cfg)
		return
	}
	runConsole(cfg)
}

func runConsole(cfg *config.Config) {
	ctx := context.Background()
	runner := analysis.NewRunner(cfg.Input, nil)

	report, err := runner.Run(ctx, "initial analysis")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printReport(cfg, report)

	if !cfg.Watch {
		return
	}

	onChange(ctx, cfg.Input, func() {
		report, err := runner.Run(ctx, "edge list changed")
		if err != nil {
			logging.Error("re-analysis failed", "error", err)
			return
		}
		printReport(cfg, report)
	})
}

func runWeb(cfg *config.Config) {
	ctx := context.Background()
	server := web.NewServer()
	runner := analysis.NewRunner(cfg.Input, server)

	logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	go func() {
		if err := server.Start(cfg.Port); err != nil {
			logging.Fatal("web server failed", "error", err)
		}
	}()

	if _, err := runner.Run(ctx, "initial analysis"); err != nil {
		logging.Error("initial analysis failed", "error", err)
	}

	if cfg.Watch {
		onChange(ctx, cfg.Input, func() {
			if _, err := runner.Run(ctx, "edge list changed"); err != nil {
				logging.Error("re-analysis failed", "error", err)
			}
		})
	}

	select {}
}

// onChange invokes fn for every debounced change to the edge list.
// Blocks for the lifetime of the watch.
func onChange(ctx context.Context, path string, fn func()) {
	fw, err := watcher.NewFileWatcher(path)
	if err != nil {
		logging.Fatal("failed to create watcher", "error", err)
	}
	defer fw.Close()

	if err := fw.Start(ctx); err != nil {
		logging.Fatal("failed to start watcher", "error", err)
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 250*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for range debouncer.Events() {
		fn()
	}
}

func printReport(cfg *config.Config, report analysis.Report) {
	if cfg.JSONOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(report)
		return
	}
	output.PrintReport(cfg.Input, report)
}

func configureLogging(cfg *config.Config) {
	level := slog.LevelWarn
	switch {
	case cfg.LogLevel != "":
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	case cfg.Verbose >= 2:
		level = slog.LevelDebug
	case cfg.Verbose == 1:
		level = slog.LevelInfo
	case cfg.WebMode:
		// Server mode is chattier by default.
		level = slog.LevelInfo
	}
	logging.SetLevel(level)
}
