package grammar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// ParseTOML decodes a grammar definition from TOML.
func ParseTOML(data []byte) (Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Definition{}, fmt.Errorf("%w: line %d, column %d: %v", ErrInvalidGrammar, row, col, err)
		}
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidGrammar, err)
	}
	return def, nil
}

// ParseJSON decodes a grammar definition from JSON. Field names match the
// TOML form.
func ParseJSON(data []byte) (Definition, error) {
	if !gjson.ValidBytes(data) {
		return Definition{}, fmt.Errorf("%w: malformed JSON", ErrInvalidGrammar)
	}
	doc := gjson.ParseBytes(data)

	def := Definition{
		Name:             doc.Get("name").String(),
		Aliases:          stringList(doc.Get("aliases")),
		Extensions:       stringList(doc.Get("extensions")),
		Filenames:        stringList(doc.Get("filenames")),
		Keywords:         stringList(doc.Get("keywords")),
		Types:            stringList(doc.Get("types")),
		Constants:        stringList(doc.Get("constants")),
		IgnoreCase:       doc.Get("ignore_case").Bool(),
		LineComments:     stringList(doc.Get("line_comments")),
		BlockComment:     stringList(doc.Get("block_comment")),
		Strings:          stringList(doc.Get("strings")),
		MultilineStrings: stringList(doc.Get("multiline_strings")),
		Chars:            stringList(doc.Get("chars")),
		WordPattern:      doc.Get("word_pattern").String(),
	}

	states := doc.Get("states")
	if !states.Exists() {
		return def, nil
	}
	if !states.IsObject() {
		return Definition{}, fmt.Errorf("%w: states must be an object", ErrInvalidGrammar)
	}
	def.States = make(map[string][]Rule)
	var err error
	states.ForEach(func(name, rules gjson.Result) bool {
		list := make([]Rule, 0, len(rules.Array()))
		for _, raw := range rules.Array() {
			kind, kerr := ParseKind(raw.Get("kind").String())
			if kerr != nil {
				err = fmt.Errorf("state %s: %w", name.String(), kerr)
				return false
			}
			list = append(list, Rule{
				Pattern:   raw.Get("pattern").String(),
				Kind:      kind,
				Next:      raw.Get("next").String(),
				LineStart: raw.Get("line_start").Bool(),
			})
		}
		def.States[name.String()] = list
		return true
	})
	if err != nil {
		return Definition{}, err
	}
	return def, nil
}

func stringList(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	if !r.IsArray() {
		return []string{r.String()}
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

// LoadFile reads and compiles a grammar from a .toml or .json file.
func LoadFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", path, err)
	}

	var def Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		def, err = ParseTOML(data)
	case ".json":
		def, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file type", ErrInvalidGrammar, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g, err := Compile(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadDir compiles every .toml and .json grammar in dir. A missing
// directory yields no grammars. Files that fail to load are skipped and
// reported in the joined error.
func LoadDir(dir string) ([]*Grammar, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading grammar dir %s: %w", dir, err)
	}

	var grammars []*Grammar
	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".toml", ".json":
		default:
			continue
		}
		g, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		grammars = append(grammars, g)
	}
	return grammars, errors.Join(errs...)
}

// LoadDirs loads grammars from each directory into r, in order, so later
// directories override earlier ones.
func (r *Registry) LoadDirs(dirs ...string) error {
	var errs []error
	for _, dir := range dirs {
		grammars, err := LoadDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		for _, g := range grammars {
			r.Register(g)
		}
	}
	return errors.Join(errs...)
}
