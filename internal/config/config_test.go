package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuedev/zedit/internal/config/loader"
	"github.com/zuedev/zedit/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.Equal(t, 1000, cfg.Editor.HistoryLimit)
	assert.True(t, cfg.Editor.LineNumbers)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8
line_numbers = false

[theme]
name = "monokai"

[theme.colors]
keyword = "#ff0000"

[grammars]
dirs = ["$ZEDIT_TEST_DIR/grammars"]

[grammars.aliases]
zig = "rust"
jsx = "javascript"

[log]
level = "debug"
`)
	t.Setenv("ZEDIT_TEST_DIR", "/opt")

	cfg, err := load(loader.NewTOMLLoader(path), nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.False(t, cfg.Editor.LineNumbers)
	assert.Equal(t, 1000, cfg.Editor.HistoryLimit, "unset keys keep defaults")
	assert.Equal(t, "monokai", cfg.Theme.Name)
	assert.Equal(t, map[string]string{"keyword": "#ff0000"}, cfg.Theme.Colors)
	assert.Equal(t, []string{"/opt/grammars"}, cfg.GrammarDirs())
	assert.Equal(t, []string{"jsx", "zig"}, cfg.AliasTags())
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := load(loader.NewTOMLLoader(filepath.Join(t.TempDir(), "none.toml")), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, Default().Editor, cfg.Editor)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"syntax", "[editor]\ntab_width = \n", 2},
		{"unknown key", "[editor]\n\ntabwidth = 3\n", 3},
		{"range", "[editor]\ntab_width = 0\n", 0},
		{"log level", "[log]\nlevel = \"loud\"\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(loader.NewTOMLLoader(writeConfig(t, tt.content)), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var pe *loader.ParseError
			if tt.line > 0 {
				require.True(t, errors.As(err, &pe), "want ParseError, got %v", err)
				assert.Equal(t, tt.line, pe.Line)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n")
	t.Setenv("ZEDIT_EDITOR_TAB_WIDTH", "2")
	t.Setenv("ZEDIT_THEME", "mono")
	t.Setenv("ZEDIT_LOG_LEVEL", "warn")
	t.Setenv("ZEDIT_UNRELATED", "x")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, "mono", cfg.Theme.Name)
	assert.Equal(t, logging.LevelWarn, cfg.LogLevel())
}

func TestEnvironmentInvalid(t *testing.T) {
	t.Setenv("ZEDIT_EDITOR_TAB_WIDTH", "wide")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "zedit", "config.toml"), DefaultPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "g"), ExpandPath("~/g"))
	assert.Equal(t, "/abs", ExpandPath("/abs"))
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 4\n")

	results := make(chan *Config, 4)
	errs := make(chan error, 4)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err != nil {
			errs <- err
			return
		}
		results <- cfg
	}, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntab_width = 6\n"), 0o644))
	select {
	case cfg := <-results:
		assert.Equal(t, 6, cfg.Editor.TabWidth)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}

	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0o644))
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload error")
	}
}
