package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

type settings struct {
	Editor struct {
		TabWidth    int  `toml:"tab_width"`
		LineNumbers bool `toml:"line_numbers"`
	} `toml:"editor"`
	Grammars struct {
		Dirs []string `toml:"dirs"`
	} `toml:"grammars"`
}

func TestTOMLLoader_Missing(t *testing.T) {
	l := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml")
	var s settings
	found, err := l.Decode(&s)
	if found || err != nil {
		t.Errorf("Decode missing = %v, %v", found, err)
	}
}

func TestTOMLLoader_DecodeKeepsDefaults(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/c.toml", "[editor]\ntab_width = 2\n")

	var s settings
	s.Editor.LineNumbers = true
	found, err := NewTOMLLoaderWithFS(memfs, "/c.toml").Decode(&s)
	if !found || err != nil {
		t.Fatalf("Decode = %v, %v", found, err)
	}
	if s.Editor.TabWidth != 2 || !s.Editor.LineNumbers {
		t.Errorf("settings = %+v", s.Editor)
	}
}

func TestTOMLLoader_ParseErrorPosition(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ntab_width = = 4\n")

	var s settings
	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Decode(&s)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if pe.Path != "/bad.toml" || pe.Line != 2 || pe.Column == 0 {
		t.Errorf("ParseError = %+v", pe)
	}
	if !strings.Contains(pe.Error(), "line 2") {
		t.Errorf("Error() = %q", pe.Error())
	}
	if pe.Unwrap() == nil {
		t.Error("Unwrap should return the decoder error")
	}
}

func TestTOMLLoader_UnknownKey(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/typo.toml", "[editor]\ntab_widht = 4\n")

	var s settings
	_, err := NewTOMLLoaderWithFS(memfs, "/typo.toml").Decode(&s)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if pe.Message != "unknown key editor.tab_widht" || pe.Line != 2 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestDecodeMap(t *testing.T) {
	var s settings
	s.Editor.TabWidth = 4
	m := map[string]any{
		"grammars": map[string]any{"dirs": []any{"/a", "/b"}},
	}
	if err := DecodeMap("environment", m, &s); err != nil {
		t.Fatalf("DecodeMap: %v", err)
	}
	if s.Editor.TabWidth != 4 || !reflect.DeepEqual(s.Grammars.Dirs, []string{"/a", "/b"}) {
		t.Errorf("settings = %+v", s)
	}

	err := DecodeMap("environment", map[string]any{"editor": map[string]any{"tab_width": "wide"}}, &s)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "environment" {
		t.Errorf("type mismatch error = %v", err)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("ZEDIT_")
	l.AddMapping("ZEDIT_THEME", "theme.name")
	l.RestrictSections("editor", "theme", "grammars")
	l.environ = func() []string {
		return []string{
			"ZEDIT_EDITOR_TAB_WIDTH=2",
			"ZEDIT_EDITOR_LINE_NUMBERS=off",
			"ZEDIT_THEME=monokai",
			"ZEDIT_GRAMMARS_DIRS=[\"/x\"]",
			"ZEDIT_PAGER=less",
			"ZEDIT_NOSECTION=1",
			"HOME=/root",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := map[string]any{
		"editor":   map[string]any{"tab_width": int64(2), "line_numbers": false},
		"theme":    map[string]any{"name": "monokai"},
		"grammars": map[string]any{"dirs": []any{"/x"}},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("Load = %#v", config)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("ZEDIT_")
	tests := map[string]string{
		"ZEDIT_EDITOR_TAB_WIDTH":       "editor.tab_width",
		"ZEDIT_LOG_LEVEL":              "log.level",
		"ZEDIT_EDITOR_HIGHLIGHT_BUDGET": "editor.highlight_budget",
		"ZEDIT_THEME":                  "theme",
	}
	for env, want := range tests {
		if got := l.envToPath(env); got != want {
			t.Errorf("envToPath(%s) = %s, want %s", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"1", int64(1)},
		{"-3", int64(-3)},
		{"1.5", 1.5},
		{"/var/log/zedit.log", "/var/log/zedit.log"},
		{"[1,", "[1,"},
		{`{"a":"b"}`, map[string]any{"a": "b"}},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
