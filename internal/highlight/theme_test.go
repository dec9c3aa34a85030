package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuedev/zedit/internal/grammar"
	"github.com/zuedev/zedit/internal/renderer/core"
)

func TestDefaultThemeStyles(t *testing.T) {
	th := DefaultTheme()
	for _, kind := range grammar.Kinds() {
		style := th.StyleFor(kind)
		if kind == grammar.Plain {
			assert.Equal(t, th.Text, style)
			continue
		}
		assert.False(t, style.Foreground.IsDefault(), "kind %v", kind)
	}
	assert.True(t, th.StyleFor(grammar.Comment).Attributes.Has(core.AttrItalic))
}

func TestChromaTheme(t *testing.T) {
	th, err := ChromaTheme("Monokai")
	require.NoError(t, err)
	assert.Equal(t, "monokai", th.Name)

	// monokai: background #272822, keywords #66d9ef.
	assert.Equal(t, core.ColorFromRGB(0x27, 0x28, 0x22), th.Text.Background)
	assert.Equal(t, core.ColorFromRGB(0x66, 0xd9, 0xef), th.StyleFor(grammar.Keyword).Foreground)
	assert.NotEqual(t, th.Text.Background, th.Selection.Background)
	assert.False(t, th.Gutter.Foreground.IsDefault())

	_, err = ChromaTheme("no-such-style")
	assert.Error(t, err)
	assert.Contains(t, ChromaThemes(), "monokai")
}

func TestLoadTheme(t *testing.T) {
	th, err := LoadTheme("")
	require.NoError(t, err)
	assert.Equal(t, "default", th.Name)

	th, err = LoadTheme("mono")
	require.NoError(t, err)
	assert.True(t, th.StyleFor(grammar.Keyword).Attributes.Has(core.AttrBold))

	_, err = LoadTheme("dracula")
	assert.NoError(t, err)
}

func TestThemeOverride(t *testing.T) {
	th := MonochromeTheme()
	err := th.Override(map[string]string{
		"keyword":   "#ff0000",
		"number":    "#00ff00:#000000",
		"selection": ":#333333",
	})
	require.NoError(t, err)

	kw := th.StyleFor(grammar.Keyword)
	assert.Equal(t, core.ColorFromRGB(255, 0, 0), kw.Foreground)
	assert.True(t, kw.Attributes.Has(core.AttrBold), "attributes survive a color override")

	num := th.StyleFor(grammar.Number)
	assert.Equal(t, core.ColorFromRGB(0, 255, 0), num.Foreground)
	assert.Equal(t, core.ColorFromRGB(0, 0, 0), num.Background)

	assert.Equal(t, core.ColorFromRGB(0x33, 0x33, 0x33), th.Selection.Background)

	assert.Error(t, th.Override(map[string]string{"sparkle": "#fff"}))
	assert.Error(t, th.Override(map[string]string{"keyword": "#zz"}))
}
