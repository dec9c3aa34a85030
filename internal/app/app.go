// Package app is the interactive front end of the editor. It turns
// backend key events into session operations, runs the command line and
// search prompts, and drives the event loop that highlights and redraws
// between events.
//
// All editor state is owned by the goroutine running Run. Work from other
// goroutines, such as a configuration reload, is posted to the backend as
// an interrupt event and applied by the loop.
package app

import (
	"fmt"

	"github.com/zuedev/zedit/internal/config"
	"github.com/zuedev/zedit/internal/config/watcher"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/logging"
	"github.com/zuedev/zedit/internal/renderer/backend"
	"github.com/zuedev/zedit/internal/session"
)

// Mode is the input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeSearch
)

// String returns the name shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

// Application is the editor front end for a single session.
type Application struct {
	be  backend.Backend
	s   *session.Session
	cfg *config.Config
	reg *grammar.Registry
	log *logging.Logger

	metrics *Metrics
	watcher *watcher.Watcher

	mode    Mode
	pending rune // first key of a two-key normal mode command

	// prompt is the command line or search pattern being typed.
	prompt []rune

	searchBackward bool // direction of the open search prompt
	lastSearch     string
	lastBackward   bool

	pasting    bool
	tickQueued bool

	opts Options
}

// Session returns the editing session.
func (app *Application) Session() *session.Session {
	return app.s
}

// Mode returns the current input mode.
func (app *Application) Mode() Mode {
	return app.mode
}

// Config returns the settings in effect.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Metrics returns the event loop timing.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

func (app *Application) setMode(m Mode) {
	if app.mode == m {
		return
	}
	if app.mode == ModeInsert {
		app.s.EndGroup()
	}
	if m == ModeInsert {
		app.s.BeginGroup("insert")
	}
	app.log.Debug("mode %s -> %s", app.mode, m)
	app.mode = m
	app.pending = 0
}

func (app *Application) message(format string, args ...any) {
	app.s.SetMessage(fmt.Sprintf(format, args...), false)
}

func (app *Application) fail(err error) {
	app.log.Warn("%v", err)
	app.s.SetMessage(err.Error(), true)
	app.be.Beep()
}
