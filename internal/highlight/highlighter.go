package highlight

import (
	"slices"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
)

// LineSource is the read side of the document being highlighted.
// *buffer.Buffer satisfies it.
type LineSource interface {
	LineAt(line uint32) (string, error)
	LineCount() uint32
}

// Highlighter caches tokens per line for one document.
type Highlighter struct {
	src     LineSource
	grammar *grammar.Grammar
	lines   []lineEntry
	dirty   dirtySet
	gen     uint64
}

type lineEntry struct {
	tokens []grammar.Token
	end    grammar.State
	known  bool // end holds the state from an earlier pass
}

// New creates a highlighter for src. Every line starts dirty; call
// Refresh or step a Pass before reading tokens.
func New(src LineSource, g *grammar.Grammar) *Highlighter {
	h := &Highlighter{src: src, grammar: g}
	h.Reset()
	return h
}

// Grammar returns the active grammar.
func (h *Highlighter) Grammar() *grammar.Grammar {
	return h.grammar
}

// SetGrammar switches grammar and invalidates every line.
func (h *Highlighter) SetGrammar(g *grammar.Grammar) {
	h.grammar = g
	h.Reset()
}

// Reset drops the cache and marks every line dirty. It is used when the
// whole document is replaced.
func (h *Highlighter) Reset() {
	n := h.src.LineCount()
	h.lines = make([]lineEntry, n)
	h.dirty.clear()
	if n > 0 {
		h.dirty.add(0, n-1)
	}
	h.gen++
}

// OnEdit updates the cache for an applied edit: the replaced lines are
// spliced out, the lines now holding the new text are marked dirty, and
// any running Pass is superseded.
func (h *Highlighter) OnEdit(res buffer.EditResult) {
	if res.IsNoOp() {
		return
	}
	h.gen++

	start := res.StartLine
	oldN := res.OldEndLine - start + 1
	newN := res.NewEndLine - start + 1
	if int(start+oldN) > len(h.lines) {
		h.Reset()
		return
	}

	// The last new line ends where the last old line ended, so it
	// inherits that line's state for the settle check.
	carry := h.lines[start+oldN-1]
	fresh := make([]lineEntry, newN)
	fresh[newN-1] = lineEntry{end: carry.end, known: carry.known}

	tail := h.lines[start+oldN:]
	lines := make([]lineEntry, 0, len(h.lines)-int(oldN)+int(newN))
	lines = append(lines, h.lines[:start]...)
	lines = append(lines, fresh...)
	lines = append(lines, tail...)
	h.lines = lines

	h.dirty.splice(start, oldN, newN)
	h.dirty.add(start, start+newN-1)

	if uint32(len(h.lines)) != h.src.LineCount() {
		// The source and the cache disagree about the document shape;
		// start over rather than highlight the wrong lines.
		h.Reset()
	}
}

// Refresh re-tokenizes until no line is dirty and returns the span of
// lines it processed. ok is false if nothing was dirty.
func (h *Highlighter) Refresh() (r DirtyRange, ok bool) {
	p := h.Begin()
	p.Step(0)
	return p.Processed()
}

// TokensForLine returns a copy of the cached tokens of a line without
// tokenizing. A dirty line yields whatever was cached before it became
// dirty, which may be nothing.
func (h *Highlighter) TokensForLine(line uint32) []grammar.Token {
	if int(line) >= len(h.lines) || len(h.lines[line].tokens) == 0 {
		return nil
	}
	tokens := slices.Clone(h.lines[line].tokens)
	// Lines above may have been inserted or removed since tokenizing.
	for i := range tokens {
		tokens[i].Line = line
	}
	return tokens
}

// StartState returns the lexer state line begins in.
func (h *Highlighter) StartState(line uint32) grammar.State {
	if line == 0 || int(line) > len(h.lines) {
		return grammar.Root
	}
	return h.lines[line-1].end
}

// EndState returns the cached lexer state at the end of line.
func (h *Highlighter) EndState(line uint32) grammar.State {
	if int(line) >= len(h.lines) {
		return grammar.Root
	}
	return h.lines[line].end
}

// IsDirty reports whether line waits to be re-tokenized.
func (h *Highlighter) IsDirty(line uint32) bool {
	return h.dirty.contains(line)
}

// DirtyLines returns the number of lines waiting to be re-tokenized.
func (h *Highlighter) DirtyLines() int {
	return h.dirty.lines()
}

// Pending reports whether any line is dirty.
func (h *Highlighter) Pending() bool {
	return !h.dirty.empty()
}

// LineCount returns the number of cached lines.
func (h *Highlighter) LineCount() int {
	return len(h.lines)
}

// Generation increases with every edit and reset.
func (h *Highlighter) Generation() uint64 {
	return h.gen
}

// tokenizeLine re-lexes the lowest dirty line and propagates dirtiness
// to the next line when its ending state changed.
func (h *Highlighter) tokenizeLine(line uint32) {
	text, err := h.src.LineAt(line)
	if err != nil {
		text = ""
	}
	tokens, end := h.grammar.Tokenize(text, h.StartState(line))
	for i := range tokens {
		tokens[i].Line = line
	}

	e := &h.lines[line]
	changed := !e.known || e.end != end
	e.tokens, e.end, e.known = tokens, end, true

	h.dirty.popFirst()
	if changed && int(line)+1 < len(h.lines) {
		h.dirty.add(line+1, line+1)
	}
}

// Pass is one bounded re-tokenize run. It is tied to the generation the
// highlighter had when the pass began.
type Pass struct {
	h         *Highlighter
	gen       uint64
	processed DirtyRange
	any       bool
}

// Begin starts a pass at the current generation.
func (h *Highlighter) Begin() *Pass {
	return &Pass{h: h, gen: h.gen}
}

// Step re-tokenizes at most maxLines dirty lines, or all of them when
// maxLines is not positive. It reports whether the cache is now clean.
// If the document was edited since Begin, Step does nothing and returns
// ErrSuperseded.
func (p *Pass) Step(maxLines int) (done bool, err error) {
	if p.gen != p.h.gen {
		return false, ErrSuperseded
	}
	for n := 0; maxLines <= 0 || n < maxLines; n++ {
		line, ok := p.h.dirty.first()
		if !ok {
			break
		}
		if int(line) >= len(p.h.lines) {
			p.h.dirty.truncate(uint32(len(p.h.lines)))
			continue
		}
		p.h.tokenizeLine(line)
		if !p.any {
			p.processed = DirtyRange{Start: line, End: line}
			p.any = true
		} else {
			p.processed.Start = min(p.processed.Start, line)
			p.processed.End = max(p.processed.End, line)
		}
	}
	return !p.h.Pending(), nil
}

// Processed returns the span of lines this pass re-tokenized.
func (p *Pass) Processed() (DirtyRange, bool) {
	return p.processed, p.any
}

// Superseded reports whether an edit arrived after the pass began.
func (p *Pass) Superseded() bool {
	return p.gen != p.h.gen
}
