package app

import (
	"github.com/zuedev/zedit/internal/renderer/backend"
	"github.com/zuedev/zedit/internal/session"
)

// handleKey routes a key event by mode.
func (app *Application) handleKey(ev backend.Event) error {
	if app.pasting {
		return app.pasteKey(ev)
	}

	// Bindings shared by every mode.
	switch ev.Key {
	case backend.KeyCtrlS:
		return app.write("")
	case backend.KeyCtrlQ:
		return app.quit(false)
	}

	switch app.mode {
	case ModeInsert:
		return app.insertKey(ev)
	case ModeCommand, ModeSearch:
		return app.promptKey(ev)
	default:
		return app.normalKey(ev)
	}
}

// motionKey maps navigation keys shared by normal and insert mode.
func motionKey(k backend.Key) (session.Motion, bool) {
	switch k {
	case backend.KeyLeft:
		return session.MoveLeft, true
	case backend.KeyRight:
		return session.MoveRight, true
	case backend.KeyUp:
		return session.MoveUp, true
	case backend.KeyDown:
		return session.MoveDown, true
	case backend.KeyHome:
		return session.MoveLineStart, true
	case backend.KeyEnd:
		return session.MoveLineEnd, true
	case backend.KeyPageUp:
		return session.MovePageUp, true
	case backend.KeyPageDown:
		return session.MovePageDown, true
	}
	return 0, false
}

// navigate moves the cursor for a navigation key. Shift extends the
// selection.
func (app *Application) navigate(ev backend.Event) bool {
	m, ok := motionKey(ev.Key)
	if !ok {
		return false
	}
	if ev.Mod.Has(backend.ModShift) {
		app.s.Select(m)
	} else {
		app.s.Move(m)
	}
	return true
}

var normalMotions = map[rune]session.Motion{
	'h': session.MoveLeft,
	'l': session.MoveRight,
	'k': session.MoveUp,
	'j': session.MoveDown,
	'0': session.MoveLineStart,
	'$': session.MoveLineEnd,
	'^': session.MoveFirstNonBlank,
	'w': session.MoveWordForward,
	'b': session.MoveWordBackward,
	'G': session.MoveDocEnd,
}

func (app *Application) normalKey(ev backend.Event) error {
	if app.navigate(ev) {
		return nil
	}

	switch ev.Key {
	case backend.KeyEscape:
		app.pending = 0
		app.s.ClearSelection()
		app.s.SetMessage("", false)
		return nil
	case backend.KeyCtrlF, backend.KeyCtrlD:
		app.s.Move(session.MovePageDown)
		return nil
	case backend.KeyCtrlB, backend.KeyCtrlU:
		app.s.Move(session.MovePageUp)
		return nil
	case backend.KeyCtrlR:
		return app.redo()
	case backend.KeyCtrlZ:
		return app.undo()
	case backend.KeyDelete:
		return app.s.DeleteForward()
	case backend.KeyRune:
	default:
		return nil
	}

	r := ev.Rune
	if p := app.pending; p != 0 {
		app.pending = 0
		switch {
		case p == 'g' && r == 'g':
			app.s.Move(session.MoveDocStart)
		case p == 'd' && r == 'd':
			_, err := app.s.DeleteLine()
			return err
		case p == 'z' && r == 'z':
			app.s.CenterCursor()
		}
		return nil
	}

	if m, ok := normalMotions[r]; ok {
		app.s.Move(m)
		return nil
	}

	switch r {
	case 'g', 'd', 'z':
		app.pending = r
	case 'i':
		app.setMode(ModeInsert)
	case 'a':
		app.s.Move(session.MoveRight)
		app.setMode(ModeInsert)
	case 'A':
		app.s.Move(session.MoveLineEnd)
		app.setMode(ModeInsert)
	case 'I':
		app.s.Move(session.MoveFirstNonBlank)
		app.setMode(ModeInsert)
	case 'o':
		app.s.Move(session.MoveLineEnd)
		app.setMode(ModeInsert)
		return app.s.InsertNewline()
	case 'O':
		app.s.Move(session.MoveLineStart)
		app.setMode(ModeInsert)
		if err := app.s.InsertText("\n"); err != nil {
			return err
		}
		app.s.Move(session.MoveUp)
	case 'x':
		return app.s.DeleteForward()
	case 'u':
		return app.undo()
	case 'n':
		return app.searchNext(false)
	case 'N':
		return app.searchNext(true)
	case ':':
		app.openPrompt(ModeCommand)
	case '/':
		app.searchBackward = false
		app.openPrompt(ModeSearch)
	case '?':
		app.searchBackward = true
		app.openPrompt(ModeSearch)
	}
	return nil
}

func (app *Application) insertKey(ev backend.Event) error {
	if app.navigate(ev) {
		return nil
	}

	switch ev.Key {
	case backend.KeyEscape:
		app.setMode(ModeNormal)
		return nil
	case backend.KeyRune:
		return app.s.InsertText(string(ev.Rune))
	case backend.KeyEnter:
		return app.s.InsertNewline()
	case backend.KeyTab:
		return app.s.InsertText("\t")
	case backend.KeyBackspace:
		return app.s.Backspace()
	case backend.KeyDelete:
		return app.s.DeleteForward()
	}
	return nil
}

func (app *Application) undo() error {
	ok, err := app.s.Undo()
	if err == nil && !ok {
		app.message("already at oldest change")
	}
	return err
}

func (app *Application) redo() error {
	ok, err := app.s.Redo()
	if err == nil && !ok {
		app.message("already at newest change")
	}
	return err
}

// handlePaste brackets pasted input: keys between start and end are
// inserted literally as one undo unit, whatever the mode.
func (app *Application) handlePaste(start bool) {
	if start == app.pasting {
		return
	}
	app.pasting = start
	if start {
		app.s.BeginGroup("paste")
	} else {
		app.s.EndGroup()
	}
}

func (app *Application) pasteKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyRune:
		return app.s.InsertText(string(ev.Rune))
	case backend.KeyEnter:
		return app.s.InsertText("\n")
	case backend.KeyTab:
		return app.s.InsertText("\t")
	}
	return nil
}

// openPrompt starts typing a command line or search pattern.
func (app *Application) openPrompt(m Mode) {
	app.prompt = app.prompt[:0]
	app.setMode(m)
}

func (app *Application) promptText() string {
	lead := ":"
	if app.mode == ModeSearch {
		lead = "/"
		if app.searchBackward {
			lead = "?"
		}
	}
	return lead + string(app.prompt)
}

func (app *Application) promptKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape:
		app.closePrompt()
	case backend.KeyBackspace:
		if len(app.prompt) == 0 {
			app.closePrompt()
			return nil
		}
		app.prompt = app.prompt[:len(app.prompt)-1]
	case backend.KeyRune:
		app.prompt = append(app.prompt, ev.Rune)
	case backend.KeyTab:
		app.prompt = append(app.prompt, '\t')
	case backend.KeyEnter:
		line := string(app.prompt)
		m := app.mode
		app.closePrompt()
		if m == ModeSearch {
			return app.search(line, app.searchBackward)
		}
		return app.Execute(line)
	}
	return nil
}

func (app *Application) closePrompt() {
	app.prompt = app.prompt[:0]
	app.setMode(ModeNormal)
	app.s.SetMessage("", false)
}

// search finds pattern, or repeats the last pattern when it is empty.
func (app *Application) search(pattern string, backward bool) error {
	if pattern == "" {
		pattern = app.lastSearch
	}
	if pattern == "" {
		return ErrNoPattern
	}
	app.lastSearch = pattern
	app.lastBackward = backward

	found, wrapped := app.s.Find(pattern, backward)
	switch {
	case !found:
		return NewOperationError("search", pattern, ErrPatternNotFound)
	case wrapped && backward:
		app.message("search hit TOP, continuing at BOTTOM")
	case wrapped:
		app.message("search hit BOTTOM, continuing at TOP")
	}
	return nil
}

// searchNext repeats the last search, reversed when reverse is set.
func (app *Application) searchNext(reverse bool) error {
	if app.lastSearch == "" {
		return ErrNoPattern
	}
	backward := app.lastBackward != reverse
	err := app.search(app.lastSearch, backward)
	app.lastBackward = backward != reverse
	return err
}
