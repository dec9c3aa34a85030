package app

import (
	"errors"
	"fmt"

	"github.com/zuedev/zedit/internal/config"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/highlight"
	"github.com/zuedev/zedit/internal/logging"
	"github.com/zuedev/zedit/internal/renderer"
	"github.com/zuedev/zedit/internal/renderer/backend"
	"github.com/zuedev/zedit/internal/renderer/viewport"
	"github.com/zuedev/zedit/internal/session"
)

// Options configures the application.
type Options struct {
	// Config holds user settings. Defaults are used when nil.
	Config *config.Config

	// Registry resolves grammars. The built-in registry is used when nil.
	Registry *grammar.Registry

	// Logger receives diagnostics. Logging is discarded when nil.
	Logger *logging.Logger

	// File is opened on startup; empty starts with a scratch buffer.
	File string

	// Language forces a grammar for File instead of detecting it.
	Language string

	// Watch reloads the configuration file when it changes.
	Watch bool
}

// New creates an application drawing to be.
func New(be backend.Backend, opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Registry == nil {
		opts.Registry = grammar.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}

	theme, err := BuildTheme(opts.Config)
	if err != nil {
		return nil, err
	}

	sopts := session.DefaultOptions()
	sopts.HistoryLimit = opts.Config.Editor.HistoryLimit
	sopts.ScrollOff = opts.Config.Editor.ScrollOff
	sopts.Theme = theme
	sopts.Render = renderOptions(opts.Config)
	sopts.Registry = opts.Registry
	sopts.Logger = opts.Logger

	app := &Application{
		be:      be,
		s:       session.New(sopts),
		cfg:     opts.Config,
		reg:     opts.Registry,
		log:     opts.Logger.WithComponent("app"),
		metrics: NewMetrics(),
		mode:    ModeNormal,
		opts:    opts,
	}

	if opts.File != "" {
		if err := app.s.Open(opts.File); err != nil {
			return nil, NewOperationError("open", opts.File, err)
		}
	}
	if opts.Language != "" {
		app.s.SetLanguage(opts.Language)
	}
	return app, nil
}

// BuildTheme loads the configured theme and applies color overrides.
func BuildTheme(cfg *config.Config) (*highlight.Theme, error) {
	theme, err := highlight.LoadTheme(cfg.Theme.Name)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", cfg.Theme.Name, err)
	}
	if len(cfg.Theme.Colors) > 0 {
		if err := theme.Override(cfg.Theme.Colors); err != nil {
			return nil, fmt.Errorf("theme colors: %w", err)
		}
	}
	return theme, nil
}

// ConfigureRegistry loads grammar directories and aliases into reg.
// Grammars that load stay registered even when others fail; the failures
// are joined into the returned error.
func ConfigureRegistry(reg *grammar.Registry, cfg *config.Config) error {
	var errs []error
	if dirs := cfg.GrammarDirs(); len(dirs) > 0 {
		if err := reg.LoadDirs(dirs...); err != nil {
			errs = append(errs, err)
		}
	}
	for _, tag := range cfg.AliasTags() {
		if err := reg.Alias(tag, cfg.Grammars.Aliases[tag]); err != nil {
			errs = append(errs, fmt.Errorf("alias %s: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

func renderOptions(cfg *config.Config) renderer.Options {
	return renderer.Options{
		LineNumbers: cfg.Editor.LineNumbers,
		TabWidth:    cfg.Editor.TabWidth,
		StatusLine:  cfg.Editor.StatusLine,
	}
}

// applyConfig switches to reloaded settings. The grammar registry is not
// rebuilt; new grammar directories need a restart.
func (app *Application) applyConfig(cfg *config.Config) error {
	theme, err := BuildTheme(cfg)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.s.SetTheme(theme)
	app.s.SetRenderOptions(renderOptions(cfg))
	app.s.SetHistoryLimit(cfg.Editor.HistoryLimit)
	app.s.Viewport().SetMargins(marginsFor(cfg))
	return nil
}

func marginsFor(cfg *config.Config) viewport.Margins {
	return viewport.Margins{Top: cfg.Editor.ScrollOff, Bottom: cfg.Editor.ScrollOff}
}
