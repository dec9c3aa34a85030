// Package session holds the explicit editing context for one open
// document: its buffer, undo history, highlight cache, cursor, viewport
// and renderer.
//
// Nothing in the core is global. Every operation goes through a Session,
// so independent sessions (and tests) never interfere. A Session is not
// safe for concurrent use; the event loop owns it.
//
// Each user action follows the same order: mutate the buffer, record the
// edit in history, notify the highlighter, then keep the cursor visible.
// Highlighting and rendering are driven separately by Highlight and
// Render so the caller can bound the work done per event.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/zuedev/zedit/internal/document"
	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/engine/cursor"
	"github.com/zuedev/zedit/internal/engine/history"
	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/highlight"
	"github.com/zuedev/zedit/internal/logging"
	"github.com/zuedev/zedit/internal/renderer"
	"github.com/zuedev/zedit/internal/renderer/core"
	"github.com/zuedev/zedit/internal/renderer/viewport"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Options configures a new session.
type Options struct {
	Width, Height int
	HistoryLimit  int
	ScrollOff     int
	Theme         *highlight.Theme
	Render        renderer.Options
	Registry      *grammar.Registry
	Logger        *logging.Logger
}

// DefaultOptions returns options for an 80x24 screen.
func DefaultOptions() Options {
	return Options{
		Width:        80,
		Height:       24,
		HistoryLimit: history.DefaultMaxEntries,
		Render:       renderer.DefaultOptions(),
	}
}

// Session is the editing context for one document.
type Session struct {
	ID uuid.UUID

	buf  *buffer.Buffer
	hist *history.History
	hl   *highlight.Highlighter
	pass *highlight.Pass
	reg  *grammar.Registry
	vp   *viewport.Viewport
	rend *renderer.Renderer
	log  *logging.Logger

	sel  cursor.Selection
	want int // display column kept across vertical moves, -1 if unset

	doc      document.Document
	modified bool
}

// New creates a session holding an empty scratch document.
func New(opts Options) *Session {
	if opts.Registry == nil {
		opts.Registry = grammar.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}

	id := uuid.New()
	s := &Session{
		ID:   id,
		buf:  buffer.NewBuffer(buffer.WithTabWidth(opts.Render.TabWidth)),
		hist: history.New(opts.HistoryLimit),
		reg:  opts.Registry,
		rend: renderer.New(opts.Width, opts.Height, opts.Theme, opts.Render),
		log:  opts.Logger.WithComponent("session").WithField("session", id.String()[:8]),
		want: -1,
		doc:  document.Scratch(),
	}
	s.hl = highlight.New(s.buf, s.reg.Plain())
	s.rend.SetSource(s.buf, s.hl)

	tw, th := s.rend.TextArea()
	s.vp = viewport.New(tw, th)
	s.vp.SetMargins(viewport.Margins{Top: opts.ScrollOff, Bottom: opts.ScrollOff})
	s.vp.SetLineCount(s.buf.LineCount())
	return s
}

// Load replaces the whole document with doc. History is cleared and the
// cursor returns to the start.
func (s *Session) Load(doc document.Document) {
	s.buf.Reset(doc.Text)
	s.buf.SetLineEnding(doc.LineEnding)
	s.hist.Clear()

	g := s.reg.ForTag(doc.Language)
	doc.Language = g.Name()
	doc.Text = ""
	s.doc = doc
	s.hl.SetGrammar(g)
	s.pass = nil
	s.modified = false

	s.vp.ScrollTo(0)
	s.setCursor(0)
	s.log.Info("loaded %q: %d bytes, %d lines, language %s",
		doc.Name(), s.buf.Len(), s.buf.LineCount(), g.Name())
}

// Open loads the file at path. A missing file opens as an empty new
// document.
func (s *Session) Open(path string) error {
	doc, err := document.Load(path, s.reg)
	if err != nil {
		return err
	}
	s.Load(doc)
	return nil
}

// ErrReadOnly is returned when saving a read-only document in place.
var ErrReadOnly = errors.New("document is read-only")

// Save writes the document to path, or to its own path when path is
// empty, and returns the bytes written. Saving to a new path makes it the
// document's path.
func (s *Session) Save(path string) (int, error) {
	target := path
	if target == "" {
		if s.doc.ReadOnly {
			return 0, ErrReadOnly
		}
		target = s.doc.Path
	}
	n, err := document.Save(target, s.buf.Text(), s.buf.LineEnding(), s.doc.Encoding)
	if err != nil {
		return 0, err
	}
	if target != s.doc.Path {
		s.doc.Path = target
		s.doc.ReadOnly = false
		if s.doc.Language == grammar.PlainName {
			s.SetLanguage(s.reg.Detect(target).Name())
		}
	}
	s.doc.New = false
	s.modified = false
	s.log.Info("wrote %q: %d bytes", target, n)
	return n, nil
}

// SetLanguage switches grammar. An unknown tag selects plain text.
func (s *Session) SetLanguage(tag string) {
	g := s.reg.ForTag(tag)
	s.doc.Language = g.Name()
	s.hl.SetGrammar(g)
	s.pass = nil
}

// Highlight re-tokenizes at most budget dirty lines (all of them when
// budget is not positive) and reports whether dirty lines remain. A pass
// interrupted by an edit is discarded and restarted from the first dirty
// line.
func (s *Session) Highlight(budget int) bool {
	if !s.hl.Pending() {
		s.pass = nil
		return false
	}
	if s.pass == nil || s.pass.Superseded() {
		if s.pass != nil {
			s.log.Debug("highlight pass superseded by an edit")
		}
		s.pass = s.hl.Begin()
	}
	done, err := s.pass.Step(budget)
	if err != nil {
		s.pass = nil
		return true
	}
	if done {
		if r, ok := s.pass.Processed(); ok {
			s.log.Debug("highlighted lines %s", r)
		}
		s.pass = nil
	}
	return !done
}

// Resize changes the screen size.
func (s *Session) Resize(width, height int) {
	s.rend.Resize(width, height)
	s.follow()
}

// Render composes the screen and returns the cells that changed since
// the last call. mode is shown in the status line.
func (s *Session) Render(mode string) []core.CellChange {
	st := s.Status()
	st.Mode = mode
	s.rend.SetStatus(st)
	s.layout()
	s.rend.SetLeftColumn(s.vp.Left())
	return s.rend.Render(s.vp.Visible(), s.Cursor(), s.selection())
}

// Status returns the status line content without the mode.
func (s *Session) Status() renderer.Status {
	p := s.Cursor()
	line, _ := s.buf.LineAt(p.Line)
	return renderer.Status{
		Name:     s.doc.Name(),
		Language: s.doc.Language,
		Modified: s.modified,
		ReadOnly: s.doc.ReadOnly,
		Line:     int(p.Line) + 1,
		Column:   s.rend.Tabs().OffsetToColumn(line, int(p.Column)) + 1,
	}
}

// SetMessage shows msg on the message line.
func (s *Session) SetMessage(msg string, isErr bool) {
	s.rend.SetMessage(msg, isErr)
}

// SetRenderOptions changes gutter, status line and tab settings.
func (s *Session) SetRenderOptions(opts renderer.Options) {
	s.rend.SetOptions(opts)
	s.buf.SetTabWidth(opts.TabWidth)
	s.follow()
}

// SetTheme changes the theme.
func (s *Session) SetTheme(theme *highlight.Theme) {
	s.rend.SetTheme(theme)
}

// SetHistoryLimit changes how many undo steps are kept.
func (s *Session) SetHistoryLimit(n int) {
	s.hist.SetMaxEntries(n)
}

// Buffer returns the document buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// History returns the undo history.
func (s *Session) History() *history.History { return s.hist }

// Highlighter returns the highlight cache.
func (s *Session) Highlighter() *highlight.Highlighter { return s.hl }

// Viewport returns the viewport.
func (s *Session) Viewport() *viewport.Viewport { return s.vp }

// Renderer returns the renderer.
func (s *Session) Renderer() *renderer.Renderer { return s.rend }

// Document returns the metadata of the loaded document. Its Text is
// empty; the buffer holds the content.
func (s *Session) Document() document.Document { return s.doc }

// Path returns the document's file path.
func (s *Session) Path() string { return s.doc.Path }

// Language returns the active grammar name.
func (s *Session) Language() string { return s.doc.Language }

// Modified reports whether the document changed since it was loaded or
// saved.
func (s *Session) Modified() bool { return s.modified }

// Text returns the whole document.
func (s *Session) Text() string { return s.buf.Text() }

// layout sizes the viewport to the renderer's text area, which shrinks as
// the gutter widens.
func (s *Session) layout() {
	tw, th := s.rend.TextArea()
	s.vp.Resize(tw, th)
	s.vp.SetLineCount(s.buf.LineCount())
}

// follow scrolls the viewport so the cursor is visible.
func (s *Session) follow() {
	s.layout()
	p := s.Cursor()
	line, _ := s.buf.LineAt(p.Line)
	s.vp.Reveal(p.Line, s.rend.Tabs().OffsetToColumn(line, int(p.Column)))
}
