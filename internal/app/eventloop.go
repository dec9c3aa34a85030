package app

import (
	"context"
	"errors"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/zuedev/zedit/internal/config"
	"github.com/zuedev/zedit/internal/renderer/backend"
	"github.com/zuedev/zedit/internal/renderer/core"
)

// Interrupt payloads posted to the backend.
type (
	// highlightTick asks the loop for another highlight step.
	highlightTick struct{}

	// configReload carries settings reloaded by the watcher goroutine.
	configReload struct {
		cfg *config.Config
		err error
	}

	// stopRequest ends Run, posted when its context is cancelled.
	stopRequest struct{}
)

// reloadDebounce is the quiet period before a changed config file is read.
const reloadDebounce = 150 * time.Millisecond

// Run initializes the backend and processes events until the user quits
// or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.be.Init(); err != nil {
		return err
	}
	defer app.be.Fini()

	if app.opts.Watch && app.cfg.Path != "" {
		app.watchConfig(app.cfg.Path)
	}
	defer app.stopWatching()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.be.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: stopRequest{}})
		case <-done:
		}
	}()

	w, h := app.be.Size()
	app.s.Resize(w, h)
	app.log.Info("started %dx%d, session %s", w, h, app.s.ID)
	app.highlight()
	app.draw()

	for {
		ev := app.be.PollEvent()
		start := time.Now()
		err := app.HandleEvent(ev)
		app.metrics.RecordEvent(time.Since(start))

		switch {
		case errors.Is(err, ErrQuit):
			app.log.Info("quit")
			return nil
		case err != nil:
			app.fail(err)
		}

		app.highlight()
		app.draw()
	}
}

// HandleEvent applies one backend event. It returns ErrQuit when the
// editor should exit and other errors for the message line.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.s.Resize(ev.Width, ev.Height)
		app.be.Sync()
	case backend.EventPaste:
		app.handlePaste(ev.PasteStart)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case highlightTick:
		// The loop highlights after every event.
		app.tickQueued = false
	case configReload:
		if d.err != nil {
			return d.err
		}
		if err := app.applyConfig(d.cfg); err != nil {
			return err
		}
		app.message("configuration reloaded")
		app.log.Info("configuration reloaded from %s", d.cfg.Path)
	case stopRequest:
		return ErrQuit
	}
	return nil
}

// highlight runs one bounded highlight step and, when dirty lines remain,
// queues a tick so the rest is done between later events.
func (app *Application) highlight() {
	start := time.Now()
	more := app.s.Highlight(app.cfg.Editor.HighlightBudget)
	app.metrics.RecordHighlight(time.Since(start))
	if more && !app.tickQueued {
		app.tickQueued = true
		app.be.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: highlightTick{}})
	}
}

// draw renders the session and flushes the changed cells.
func (app *Application) draw() {
	start := time.Now()
	if app.mode == ModeCommand || app.mode == ModeSearch {
		app.s.SetMessage(app.promptText(), false)
	}
	changes := app.s.Render(app.mode.String())
	app.be.Apply(changes)

	if pos, ok := app.cursorPos(); ok {
		app.be.ShowCursor(pos)
	} else {
		app.be.HideCursor()
	}
	app.be.Show()
	app.metrics.RecordFrame(time.Since(start), len(changes))
}

// cursorPos places the terminal cursor in the text, or after the prompt
// on the message line while one is open.
func (app *Application) cursorPos() (core.Pos, bool) {
	if app.mode == ModeCommand || app.mode == ModeSearch {
		_, h := app.be.Size()
		return core.Pos{Row: h - 1, Col: runewidth.StringWidth(app.promptText())}, h > 0
	}
	return app.s.Renderer().Cursor()
}

func (app *Application) watchConfig(path string) {
	w, err := config.Watch(path, func(cfg *config.Config, err error) {
		app.be.PostEvent(backend.Event{
			Type: backend.EventInterrupt,
			Data: configReload{cfg: cfg, err: err},
		})
	}, reloadDebounce)
	if err != nil {
		app.log.Warn("cannot watch %s: %v", path, err)
		return
	}
	app.watcher = w
	app.log.Debug("watching %s", path)
}

func (app *Application) stopWatching() {
	if app.watcher != nil {
		_ = app.watcher.Stop()
		app.watcher = nil
	}
}
