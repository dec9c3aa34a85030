package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zuedev/zedit/internal/config/loader"
	"github.com/zuedev/zedit/internal/logging"
)

// EnvPrefix prefixes every environment override, as in ZEDIT_EDITOR_TAB_WIDTH.
const EnvPrefix = "ZEDIT_"

// Config holds every user setting.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Theme    ThemeConfig    `toml:"theme"`
	Grammars GrammarsConfig `toml:"grammars"`
	Log      LogConfig      `toml:"log"`

	// Path is the file the settings were read from, empty for defaults only.
	Path string `toml:"-"`
}

// EditorConfig controls editing and display behavior.
type EditorConfig struct {
	TabWidth     int  `toml:"tab_width"`
	HistoryLimit int  `toml:"history_limit"`
	LineNumbers  bool `toml:"line_numbers"`
	StatusLine   bool `toml:"status_line"`
	ScrollOff    int  `toml:"scroll_off"`

	// HighlightBudget is the number of lines re-highlighted per event loop
	// iteration before the screen is drawn.
	HighlightBudget int `toml:"highlight_budget"`
}

// ThemeConfig selects a color theme and overrides individual colors.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// GrammarsConfig lists extra grammar definition directories and tag aliases.
type GrammarsConfig struct {
	Dirs    []string          `toml:"dirs"`
	Aliases map[string]string `toml:"aliases"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:        4,
			HistoryLimit:    1000,
			LineNumbers:     true,
			StatusLine:      true,
			ScrollOff:       0,
			HighlightBudget: 200,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/zedit/config.toml, falling back to
// the platform user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "zedit", "config.toml")
}

// Load builds settings from the defaults, the TOML file at path, then
// ZEDIT_* environment variables. A missing file is not an error; an empty
// path skips the file.
func Load(path string) (*Config, error) {
	var tl *loader.TOMLLoader
	if path != "" {
		tl = loader.NewTOMLLoader(path)
	}
	return load(tl, newEnvLoader())
}

func load(file *loader.TOMLLoader, env *loader.EnvLoader) (*Config, error) {
	cfg := Default()

	if file != nil {
		found, err := file.Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if found {
			cfg.Path = file.Path()
		}
	}

	if env != nil {
		vars, err := env.Load()
		if err != nil {
			return nil, err
		}
		if err := loader.DecodeMap("environment", vars, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEnvLoader() *loader.EnvLoader {
	l := loader.NewEnvLoader(EnvPrefix)
	l.AddMapping(EnvPrefix+"THEME", "theme.name")
	l.RestrictSections("editor", "theme", "grammars", "log")
	return l
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16:
		return fmt.Errorf("%w: editor.tab_width %d out of range 1..16", ErrInvalidConfig, c.Editor.TabWidth)
	case c.Editor.HistoryLimit < 1:
		return fmt.Errorf("%w: editor.history_limit must be positive", ErrInvalidConfig)
	case c.Editor.ScrollOff < 0:
		return fmt.Errorf("%w: editor.scroll_off must not be negative", ErrInvalidConfig)
	case c.Editor.HighlightBudget < 1:
		return fmt.Errorf("%w: editor.highlight_budget must be positive", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the parsed log level. Validate has already accepted it.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// GrammarDirs returns the grammar directories with ~ and environment
// variables expanded.
func (c *Config) GrammarDirs() []string {
	dirs := make([]string, 0, len(c.Grammars.Dirs))
	for _, d := range c.Grammars.Dirs {
		dirs = append(dirs, ExpandPath(d))
	}
	return dirs
}

// ExpandPath expands a leading ~ and $VAR references.
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// AliasTags returns the alias keys in sorted order.
func (c *Config) AliasTags() []string {
	tags := make([]string, 0, len(c.Grammars.Aliases))
	for tag := range c.Grammars.Aliases {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
