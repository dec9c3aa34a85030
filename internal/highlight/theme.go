package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/renderer/core"
)

// Theme maps token kinds and editor chrome to styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Text is the style of plain text and empty screen space.
	Text core.Style

	// Selection is merged over selected cells.
	Selection core.Style

	// Cursor is the style of the cell under the cursor.
	Cursor core.Style

	Gutter        core.Style
	GutterCurrent core.Style

	// Filler marks rows past the end of the document.
	Filler core.Style

	StatusLine  core.Style
	MessageLine core.Style
	ErrorLine   core.Style

	// Tokens maps token kinds to styles. Missing kinds use Text.
	Tokens map[grammar.Kind]core.Style
}

// StyleFor returns the full style of a token kind.
func (t *Theme) StyleFor(kind grammar.Kind) core.Style {
	if style, ok := t.Tokens[kind]; ok {
		return t.Text.Merge(style)
	}
	return t.Text
}

// DefaultTheme returns the built-in dark theme. It keeps the terminal's
// own background.
func DefaultTheme() *Theme {
	fg := core.ColorFromRGB(212, 212, 212)
	return &Theme{
		Name:          "default",
		Text:          core.DefaultStyle(),
		Selection:     core.DefaultStyle().WithBackground(core.ColorFromRGB(38, 79, 120)),
		Cursor:        core.DefaultStyle().With(core.AttrReverse),
		Gutter:        core.NewStyle(core.ColorFromRGB(133, 133, 133)),
		GutterCurrent: core.NewStyle(core.ColorFromRGB(198, 198, 198)),
		Filler:        core.NewStyle(core.ColorFromRGB(90, 90, 90)),
		StatusLine:    core.NewStyle(fg).WithBackground(core.ColorFromRGB(0, 122, 204)),
		MessageLine:   core.DefaultStyle(),
		ErrorLine:     core.NewStyle(core.ColorFromRGB(244, 71, 71)).With(core.AttrBold),
		Tokens: map[grammar.Kind]core.Style{
			grammar.Keyword:     core.NewStyle(core.ColorFromRGB(86, 156, 214)),
			grammar.String:      core.NewStyle(core.ColorFromRGB(206, 145, 120)),
			grammar.Comment:     core.NewStyle(core.ColorFromRGB(106, 153, 85)).With(core.AttrItalic),
			grammar.Identifier:  core.NewStyle(core.ColorFromRGB(156, 220, 254)),
			grammar.Number:      core.NewStyle(core.ColorFromRGB(181, 206, 168)),
			grammar.Operator:    core.NewStyle(fg),
			grammar.Punctuation: core.NewStyle(fg),
		},
	}
}

// MonochromeTheme uses attributes only, for terminals without color.
func MonochromeTheme() *Theme {
	return &Theme{
		Name:          "mono",
		Text:          core.DefaultStyle(),
		Selection:     core.DefaultStyle().With(core.AttrReverse),
		Cursor:        core.DefaultStyle().With(core.AttrReverse | core.AttrUnderline),
		Gutter:        core.DefaultStyle().With(core.AttrDim),
		GutterCurrent: core.DefaultStyle(),
		Filler:        core.DefaultStyle().With(core.AttrDim),
		StatusLine:    core.DefaultStyle().With(core.AttrReverse),
		MessageLine:   core.DefaultStyle(),
		ErrorLine:     core.DefaultStyle().With(core.AttrBold),
		Tokens: map[grammar.Kind]core.Style{
			grammar.Keyword: core.DefaultStyle().With(core.AttrBold),
			grammar.Comment: core.DefaultStyle().With(core.AttrDim | core.AttrItalic),
			grammar.String:  core.DefaultStyle().With(core.AttrUnderline),
		},
	}
}

// chroma token types each kind borrows its colors from.
var chromaTypes = map[grammar.Kind]chroma.TokenType{
	grammar.Keyword:     chroma.Keyword,
	grammar.String:      chroma.LiteralString,
	grammar.Comment:     chroma.Comment,
	grammar.Identifier:  chroma.Name,
	grammar.Number:      chroma.LiteralNumber,
	grammar.Operator:    chroma.Operator,
	grammar.Punctuation: chroma.Punctuation,
}

// ChromaTheme builds a theme from one of chroma's bundled styles, such as
// "monokai" or "github".
func ChromaTheme(name string) (*Theme, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}

	bg := style.Get(chroma.Background)
	text := fromEntry(bg)
	fg, back := text.Foreground, text.Background
	if fg.IsDefault() {
		fg = core.ColorFromRGB(255, 255, 255)
	}

	t := &Theme{
		Name:        style.Name,
		Text:        text,
		Cursor:      text.With(core.AttrReverse),
		MessageLine: text,
		Tokens:      make(map[grammar.Kind]core.Style, len(chromaTypes)),
	}
	for kind, tt := range chromaTypes {
		t.Tokens[kind] = fromEntry(style.Get(tt))
	}

	if back.IsDefault() {
		t.Selection = core.DefaultStyle().With(core.AttrReverse)
		t.StatusLine = text.With(core.AttrReverse)
	} else {
		t.Selection = core.DefaultStyle().WithBackground(back.Blend(fg, 0.25))
		t.StatusLine = core.NewStyle(fg).WithBackground(back.Blend(fg, 0.15))
	}

	t.Gutter = fromEntry(style.Get(chroma.LineNumbers))
	if t.Gutter.Foreground.IsDefault() && !back.IsDefault() {
		t.Gutter.Foreground = back.Blend(fg, 0.4)
	}
	t.GutterCurrent = t.Gutter.WithForeground(fg)
	t.Filler = t.Gutter
	t.ErrorLine = fromEntry(style.Get(chroma.Error)).With(core.AttrBold)
	return t, nil
}

// ChromaThemes lists the names ChromaTheme accepts.
func ChromaThemes() []string {
	return styles.Names()
}

// LoadTheme returns the named theme: a built-in one or a chroma style.
func LoadTheme(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	}
	return ChromaTheme(name)
}

func fromEntry(e chroma.StyleEntry) core.Style {
	s := core.DefaultStyle()
	if e.Colour.IsSet() {
		s.Foreground = core.ColorFromRGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Background.IsSet() {
		s.Background = core.ColorFromRGB(e.Background.Red(), e.Background.Green(), e.Background.Blue())
	}
	if e.Bold == chroma.Yes {
		s.Attributes |= core.AttrBold
	}
	if e.Italic == chroma.Yes {
		s.Attributes |= core.AttrItalic
	}
	if e.Underline == chroma.Yes {
		s.Attributes |= core.AttrUnderline
	}
	return s
}

// Override applies user colors. Keys are token kind names or one of
// text, selection, cursor, gutter, status and filler. Values are
// "#fg", "#fg:#bg" or ":#bg".
func (t *Theme) Override(colors map[string]string) error {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := colors[key]
		if target := t.chrome(key); target != nil {
			style, err := parseColors(*target, value)
			if err != nil {
				return fmt.Errorf("theme color %q: %w", key, err)
			}
			*target = style
			continue
		}
		kind, err := grammar.ParseKind(key)
		if err != nil {
			return fmt.Errorf("unknown theme color %q", key)
		}
		base, ok := t.Tokens[kind]
		if !ok {
			base = core.DefaultStyle()
		}
		style, err := parseColors(base, value)
		if err != nil {
			return fmt.Errorf("theme color %q: %w", key, err)
		}
		if t.Tokens == nil {
			t.Tokens = make(map[grammar.Kind]core.Style)
		}
		t.Tokens[kind] = style
	}
	return nil
}

func (t *Theme) chrome(key string) *core.Style {
	switch strings.ToLower(key) {
	case "text":
		return &t.Text
	case "selection":
		return &t.Selection
	case "cursor":
		return &t.Cursor
	case "gutter":
		return &t.Gutter
	case "status":
		return &t.StatusLine
	case "filler":
		return &t.Filler
	}
	return nil
}

func parseColors(base core.Style, value string) (core.Style, error) {
	fg, bg, _ := strings.Cut(value, ":")
	if fg = strings.TrimSpace(fg); fg != "" {
		c, err := core.ColorFromHex(fg)
		if err != nil {
			return base, err
		}
		base.Foreground = c
	}
	if bg = strings.TrimSpace(bg); bg != "" {
		c, err := core.ColorFromHex(bg)
		if err != nil {
			return base, err
		}
		base.Background = c
	}
	return base, nil
}
