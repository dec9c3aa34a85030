package app

import (
	"fmt"
	"strconv"
	"strings"
)

const helpText = ":w [file] write  :q quit  :q! discard  :wq  :e file  :<n> go to line  " +
	":set nu|nonu|ts=<n>|syntax=<lang>  :%s/old/new/  /pattern ?pattern n N"

// Execute runs one command line, without the leading colon.
func (app *Application) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	app.log.Debug("command %q", line)

	if n, err := strconv.Atoi(line); err == nil {
		app.s.GotoLine(n)
		return nil
	}
	if strings.HasPrefix(line, "%s") {
		return app.substitute(line[2:])
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	force := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	switch name {
	case "w", "write":
		return app.write(arg)
	case "q", "quit":
		return app.quit(force)
	case "wq", "x":
		if err := app.write(arg); err != nil {
			return err
		}
		return ErrQuit
	case "e", "edit":
		return app.edit(arg, force)
	case "set", "se":
		return app.set(arg)
	case "h", "help":
		app.message("%s", helpText)
		return nil
	case "stats":
		app.message("%s", app.metrics.Snapshot())
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, line)
}

// write saves the document, to path when given.
func (app *Application) write(path string) error {
	n, err := app.s.Save(path)
	if err != nil {
		target := path
		if target == "" {
			target = app.s.Document().Name()
		}
		return NewOperationError("write", target, err)
	}
	app.message("%q %dL, %dB written", app.s.Document().Name(), app.s.Buffer().LineCount(), n)
	return nil
}

// quit exits unless there are unsaved changes and force is not set.
func (app *Application) quit(force bool) error {
	if app.s.Modified() && !force {
		return ErrUnsavedChanges
	}
	return ErrQuit
}

// edit opens path in place of the current document. An empty path
// reloads the current file.
func (app *Application) edit(path string, force bool) error {
	if app.s.Modified() && !force {
		return ErrUnsavedChanges
	}
	if path == "" {
		path = app.s.Path()
	}
	if path == "" {
		return NewOperationError("edit", "", fmt.Errorf("no file name"))
	}
	if err := app.s.Open(path); err != nil {
		return NewOperationError("open", path, err)
	}

	doc := app.s.Document()
	switch {
	case doc.New:
		app.message("%q [New]", doc.Name())
	case doc.ReadOnly:
		app.message("%q [readonly] %dL", doc.Name(), app.s.Buffer().LineCount())
	default:
		app.message("%q %dL, %dB", doc.Name(), app.s.Buffer().LineCount(), app.s.Buffer().Len())
	}
	return nil
}

// set changes a display option: nu, nonu, ts=N or syntax=LANG.
func (app *Application) set(arg string) error {
	key, value, hasValue := strings.Cut(arg, "=")
	editor := &app.cfg.Editor

	switch key {
	case "nu", "number":
		editor.LineNumbers = true
	case "nonu", "nonumber":
		editor.LineNumbers = false
	case "ts", "tabstop":
		n, err := strconv.Atoi(value)
		if !hasValue || err != nil || n < 1 || n > 16 {
			return fmt.Errorf("invalid tab width %q", value)
		}
		editor.TabWidth = n
	case "syntax", "ft", "filetype":
		if !hasValue {
			app.message("syntax=%s", app.s.Language())
			return nil
		}
		if _, err := app.reg.Lookup(value); err != nil {
			return err
		}
		app.s.SetLanguage(value)
		return nil
	case "":
		app.message("languages: %s", strings.Join(app.reg.Names(), " "))
		return nil
	default:
		return fmt.Errorf("%w: set %s", ErrUnknownCommand, arg)
	}

	app.s.SetRenderOptions(renderOptions(app.cfg))
	return nil
}

// substitute handles /old/new/ after %s. Any character can delimit the
// parts. An empty pattern reuses the last search.
func (app *Application) substitute(spec string) error {
	if spec == "" {
		return fmt.Errorf("%w: %%s needs /pattern/replacement/", ErrUnknownCommand)
	}
	delim := spec[:1]
	parts := strings.SplitN(spec[1:], delim, 3)
	if len(parts) < 2 {
		return fmt.Errorf("%w: %%s needs /pattern/replacement/", ErrUnknownCommand)
	}

	pattern, repl := parts[0], parts[1]
	if pattern == "" {
		pattern = app.lastSearch
	}
	if pattern == "" {
		return ErrNoPattern
	}

	n, err := app.s.ReplaceAll(pattern, repl)
	if err != nil {
		return err
	}
	if n == 0 {
		return NewOperationError("substitute", pattern, ErrPatternNotFound)
	}
	app.lastSearch = pattern
	app.message("%d substitutions", n)
	return nil
}
