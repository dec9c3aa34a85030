package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuedev/zedit/internal/config"
	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/renderer/backend"
)

func newTestApp(t *testing.T, content string) (*Application, *backend.Null, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	be := backend.NewNull(40, 10)
	app, err := New(be, Options{File: path})
	require.NoError(t, err)
	app.Session().Resize(40, 10)
	return app, be, path
}

func keyEvents(keys string) []backend.Event {
	var evs []backend.Event
	for _, r := range keys {
		switch r {
		case '\n':
			evs = append(evs, backend.KeyEvent(backend.KeyEnter, backend.ModNone))
		case '\x1b':
			evs = append(evs, backend.KeyEvent(backend.KeyEscape, backend.ModNone))
		default:
			evs = append(evs, backend.RuneEvent(r))
		}
	}
	return evs
}

// press feeds keys to the application, "\n" for Enter and "\x1b" for
// Escape, and returns the error of the last key.
func press(t *testing.T, app *Application, keys string) error {
	t.Helper()
	var err error
	for _, ev := range keyEvents(keys) {
		err = app.HandleEvent(ev)
	}
	return err
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "INSERT", ModeInsert.String())
	assert.Equal(t, "COMMAND", ModeCommand.String())
	assert.Equal(t, "SEARCH", ModeSearch.String())
	assert.Equal(t, "UNKNOWN", Mode(9).String())
}

func TestNewOpensFile(t *testing.T) {
	app, _, path := newTestApp(t, "hello\n")
	assert.Equal(t, "hello\n", app.Session().Text())
	assert.Equal(t, path, app.Session().Path())
	assert.Equal(t, ModeNormal, app.Mode())

	_, err := New(backend.NewNull(10, 5), Options{File: t.TempDir()})
	assert.Error(t, err, "a directory cannot be opened")

	cfg := config.Default()
	cfg.Theme.Name = "no-such-theme"
	_, err = New(backend.NewNull(10, 5), Options{Config: cfg})
	assert.Error(t, err)
}

func TestInsertSessionIsOneUndoUnit(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	require.NoError(t, press(t, app, "iabc\ndef\x1b"))
	assert.Equal(t, "abc\ndef", app.Session().Text())
	assert.Equal(t, ModeNormal, app.Mode())

	require.NoError(t, press(t, app, "u"))
	assert.Equal(t, "", app.Session().Text())

	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyCtrlR, backend.ModCtrl)))
	assert.Equal(t, "abc\ndef", app.Session().Text())

	require.NoError(t, press(t, app, "uu"))
	assert.Contains(t, app.Session().Renderer().Message(), "oldest change")
}

func TestNormalModeEditing(t *testing.T) {
	app, _, _ := newTestApp(t, "one\ntwo\nthree\n")
	s := app.Session()

	require.NoError(t, press(t, app, "jdd"))
	assert.Equal(t, "one\nthree\n", s.Text())

	require.NoError(t, press(t, app, "x"))
	assert.Equal(t, "one\nhree\n", s.Text())

	require.NoError(t, press(t, app, "A!\x1b"))
	assert.Equal(t, "one\nhree!\n", s.Text())

	require.NoError(t, press(t, app, "ggox\x1b"))
	assert.Equal(t, "one\nx\nhree!\n", s.Text())
	assert.Equal(t, buffer.Point{Line: 1, Column: 1}, s.Cursor())

	require.NoError(t, press(t, app, "Oy\x1b"))
	assert.Equal(t, "one\ny\nx\nhree!\n", s.Text())

	require.NoError(t, press(t, app, "G"))
	assert.Equal(t, uint32(4), s.Cursor().Line)

	// An unfinished two-key command is dropped by any other key.
	require.NoError(t, press(t, app, "gkdx"))
	assert.Equal(t, "one\ny\nx\nhree!\n", s.Text())
}

func TestPagingAndCentering(t *testing.T) {
	app, _, _ := newTestApp(t, strings.Repeat("x\n", 100))
	s := app.Session()
	page := uint32(s.Viewport().Height() - 1)

	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyCtrlD, backend.ModCtrl)))
	assert.Equal(t, page, s.Cursor().Line)
	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyCtrlD, backend.ModCtrl)))
	assert.Equal(t, 2*page, s.Cursor().Line)
	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyCtrlU, backend.ModCtrl)))
	assert.Equal(t, page, s.Cursor().Line)

	require.NoError(t, press(t, app, "Gzz"))
	half := uint32(s.Viewport().Height() / 2)
	assert.Equal(t, uint32(100)-half, s.Viewport().Top())
	assert.Equal(t, strings.Repeat("x\n", 100), s.Text())
}

func TestShiftArrowSelects(t *testing.T) {
	app, _, _ := newTestApp(t, "hello world\n")

	for i := 0; i < 5; i++ {
		require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyRight, backend.ModShift)))
	}
	assert.Equal(t, "hello", app.Session().SelectedText())

	require.NoError(t, press(t, app, "iHi"))
	assert.Equal(t, "Hi world\n", app.Session().Text())

	require.NoError(t, press(t, app, "\x1b\x1b"))
	assert.Equal(t, "", app.Session().SelectedText())
}

func TestWriteAndQuit(t *testing.T) {
	app, _, path := newTestApp(t, "a\n")

	require.NoError(t, press(t, app, "ib\x1b"))
	assert.ErrorIs(t, press(t, app, ":q\n"), ErrUnsavedChanges)
	assert.Equal(t, ModeNormal, app.Mode())

	require.NoError(t, press(t, app, ":w\n"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ba\n", string(data))
	assert.Contains(t, app.Session().Renderer().Message(), "written")

	assert.ErrorIs(t, press(t, app, ":q\n"), ErrQuit)
}

func TestForceQuitAndWriteQuit(t *testing.T) {
	app, _, path := newTestApp(t, "a\n")
	require.NoError(t, press(t, app, "ix\x1b"))
	assert.ErrorIs(t, press(t, app, ":q!\n"), ErrQuit)

	other := filepath.Join(filepath.Dir(path), "other.txt")
	assert.ErrorIs(t, press(t, app, ":wq "+other+"\n"), ErrQuit)
	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "xa\n", string(data))

	assert.ErrorIs(t, app.HandleEvent(backend.KeyEvent(backend.KeyCtrlQ, backend.ModCtrl)), ErrQuit)
}

func TestEditCommand(t *testing.T) {
	app, _, path := newTestApp(t, "first\n")
	other := filepath.Join(filepath.Dir(path), "main.go")
	require.NoError(t, os.WriteFile(other, []byte("package main\n"), 0o644))

	require.NoError(t, press(t, app, "ix\x1b"))
	assert.ErrorIs(t, press(t, app, ":e "+other+"\n"), ErrUnsavedChanges)

	require.NoError(t, press(t, app, ":e! "+other+"\n"))
	assert.Equal(t, "package main\n", app.Session().Text())
	assert.Equal(t, "go", app.Session().Language())
	assert.False(t, app.Session().Modified())

	require.NoError(t, press(t, app, ":e "+filepath.Join(filepath.Dir(path), "new.txt")+"\n"))
	assert.Contains(t, app.Session().Renderer().Message(), "[New]")
}

func TestGotoLineCommand(t *testing.T) {
	app, _, _ := newTestApp(t, strings.Repeat("line\n", 50))
	require.NoError(t, press(t, app, ":30\n"))
	assert.Equal(t, uint32(29), app.Session().Cursor().Line)
}

func TestSearch(t *testing.T) {
	app, _, _ := newTestApp(t, "alpha\nbeta\nalpha beta\n")
	s := app.Session()

	assert.ErrorIs(t, press(t, app, "n"), ErrNoPattern)

	require.NoError(t, press(t, app, "/beta\n"))
	assert.Equal(t, buffer.Point{Line: 1, Column: 0}, s.Cursor())

	require.NoError(t, press(t, app, "n"))
	assert.Equal(t, buffer.Point{Line: 2, Column: 6}, s.Cursor())

	require.NoError(t, press(t, app, "n"))
	assert.Equal(t, buffer.Point{Line: 1, Column: 0}, s.Cursor())
	assert.Contains(t, s.Renderer().Message(), "BOTTOM")

	require.NoError(t, press(t, app, "N"))
	assert.Equal(t, buffer.Point{Line: 2, Column: 6}, s.Cursor())
	assert.Contains(t, s.Renderer().Message(), "TOP")

	require.NoError(t, press(t, app, "?alpha\n"))
	assert.Equal(t, buffer.Point{Line: 2, Column: 0}, s.Cursor())

	assert.ErrorIs(t, press(t, app, "/gamma\n"), ErrPatternNotFound)
}

func TestPromptEditing(t *testing.T) {
	app, _, _ := newTestApp(t, "x\n")

	require.NoError(t, press(t, app, ":set"))
	assert.Equal(t, ModeCommand, app.Mode())
	assert.Equal(t, ":set", app.promptText())

	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyBackspace, backend.ModNone)))
	assert.Equal(t, ":se", app.promptText())

	require.NoError(t, press(t, app, "\x1b"))
	assert.Equal(t, ModeNormal, app.Mode())

	require.NoError(t, press(t, app, "?"))
	assert.Equal(t, "?", app.promptText())
	require.NoError(t, app.HandleEvent(backend.KeyEvent(backend.KeyBackspace, backend.ModNone)))
	assert.Equal(t, ModeNormal, app.Mode(), "backspace on an empty prompt closes it")

	assert.ErrorIs(t, press(t, app, ":frobnicate\n"), ErrUnknownCommand)
}

func TestSubstitute(t *testing.T) {
	app, _, _ := newTestApp(t, "foo bar foo\nfoo\n")

	require.NoError(t, press(t, app, ":%s/foo/baz/\n"))
	assert.Equal(t, "baz bar baz\nbaz\n", app.Session().Text())
	assert.Equal(t, "3 substitutions", app.Session().Renderer().Message())

	require.NoError(t, press(t, app, "u"))
	assert.Equal(t, "foo bar foo\nfoo\n", app.Session().Text())

	require.NoError(t, press(t, app, ":%s#bar#qux\n"))
	assert.Equal(t, "foo qux foo\nfoo\n", app.Session().Text())

	assert.ErrorIs(t, press(t, app, ":%s/nothing/x/\n"), ErrPatternNotFound)
	assert.ErrorIs(t, press(t, app, ":%s\n"), ErrUnknownCommand)
}

func TestSetCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "x\n")

	require.NoError(t, press(t, app, ":set nonu\n"))
	assert.False(t, app.Config().Editor.LineNumbers)
	require.NoError(t, press(t, app, ":set nu\n"))
	assert.True(t, app.Config().Editor.LineNumbers)

	require.NoError(t, press(t, app, ":set ts=8\n"))
	assert.Equal(t, 8, app.Config().Editor.TabWidth)
	assert.Equal(t, 8, app.Session().Buffer().TabWidth())
	assert.Error(t, press(t, app, ":set ts=0\n"))

	require.NoError(t, press(t, app, ":set syntax=rust\n"))
	assert.Equal(t, "rust", app.Session().Language())
	assert.ErrorIs(t, press(t, app, ":set syntax=klingon\n"), grammar.ErrUnknownGrammar)

	require.NoError(t, press(t, app, ":help\n"))
	assert.Contains(t, app.Session().Renderer().Message(), ":w [file]")
}

func TestPasteIsLiteralAndGrouped(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventPaste, PasteStart: true}))
	for _, ev := range keyEvents("i:q\nx") {
		require.NoError(t, app.HandleEvent(ev))
	}
	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventPaste, PasteStart: false}))

	assert.Equal(t, "i:q\nx", app.Session().Text())
	assert.Equal(t, ModeNormal, app.Mode())

	require.NoError(t, press(t, app, "u"))
	assert.Equal(t, "", app.Session().Text())
}

func TestConfigReloadInterrupt(t *testing.T) {
	app, _, _ := newTestApp(t, "x\n")

	cfg := config.Default()
	cfg.Editor.LineNumbers = false
	cfg.Theme.Name = "mono"
	require.NoError(t, app.HandleEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: configReload{cfg: cfg},
	}))
	assert.Same(t, cfg, app.Config())
	assert.Equal(t, "configuration reloaded", app.Session().Renderer().Message())

	bad := config.Default()
	bad.Theme.Name = "no-such-theme"
	err := app.HandleEvent(backend.Event{Type: backend.EventInterrupt, Data: configReload{cfg: bad}})
	assert.Error(t, err)
	assert.Same(t, cfg, app.Config(), "a failed reload keeps the previous settings")

	err = app.HandleEvent(backend.Event{Type: backend.EventInterrupt, Data: configReload{err: config.ErrInvalidConfig}})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunDrawsAndQuits(t *testing.T) {
	app, be, _ := newTestApp(t, "")
	for _, ev := range keyEvents("ihi\x1b") {
		be.PostEvent(ev)
	}
	for _, ev := range keyEvents(":q!\n") {
		be.PostEvent(ev)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	assert.True(t, strings.HasPrefix(be.Row(0), "  1 hi"), "row 0 = %q", be.Row(0))
	assert.Contains(t, be.Row(8), "COMMAND")
	assert.Equal(t, ":q!", strings.TrimSpace(be.Row(9)))

	pos, visible := be.Cursor()
	assert.True(t, visible)
	assert.Equal(t, 9, pos.Row)
	assert.Equal(t, 3, pos.Col)

	snap := app.Metrics().Snapshot()
	assert.GreaterOrEqual(t, snap.EventCount, uint64(8))
	assert.Greater(t, snap.FrameCount, uint64(1))
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConfigureRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ini.toml"), []byte(`
name = "ini"
extensions = ["ini"]
line_comments = [";"]
`), 0o644))

	cfg := config.Default()
	cfg.Grammars.Dirs = []string{dir}
	cfg.Grammars.Aliases = map[string]string{"jsx": "javascript", "conf": "ini"}

	reg := grammar.DefaultRegistry()
	require.NoError(t, ConfigureRegistry(reg, cfg))

	g, err := reg.Lookup("jsx")
	require.NoError(t, err)
	assert.Equal(t, "javascript", g.Name())
	assert.Equal(t, "ini", reg.ForTag("conf").Name())
	assert.Equal(t, "ini", reg.Detect("setup.ini").Name())

	cfg.Grammars.Aliases = map[string]string{"x": "missing"}
	assert.ErrorIs(t, ConfigureRegistry(reg, cfg), grammar.ErrUnknownGrammar)
}
