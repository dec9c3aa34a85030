// Package main is the entry point for the zedit editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/zuedev/zedit/internal/app"
	"github.com/zuedev/zedit/internal/config"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/logging"
	"github.com/zuedev/zedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	language   string
	logLevel   string
	noWatch    bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: zedit must run in a terminal")
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg.Log.Level = opts.logLevel
	}

	log := logging.Null()
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(config.ExpandPath(cfg.Log.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		log = logging.New(logging.Config{Level: cfg.LogLevel(), Output: f, Prefix: "zedit"})
	}
	log.Info("zedit %s (%s)", version, commit)

	reg := grammar.DefaultRegistry()
	if err := app.ConfigureRegistry(reg, cfg); err != nil {
		// Broken grammar files are logged and skipped.
		log.Warn("grammars: %v", err)
	}

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(screen, app.Options{
		Config:   cfg,
		Registry: reg,
		Logger:   log,
		File:     opts.file,
		Language: opts.language,
		Watch:    !opts.noWatch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error("run: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.language, "lang", "", "Highlight as this language instead of detecting it")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "zedit - a small modal terminal editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: zedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zedit                       Open a scratch buffer\n")
		fmt.Fprintf(os.Stderr, "  zedit main.go               Open a file\n")
		fmt.Fprintf(os.Stderr, "  zedit -lang rust notes.txt  Force a grammar\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("zedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.file = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: zedit edits one file at a time")
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
