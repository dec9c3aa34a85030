package grammar

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/tidwall/match"
)

// Registry maps language tags, file extensions and filename globs to
// grammars. It is populated at startup and read-only afterwards.
type Registry struct {
	byName map[string]*Grammar
	byTag  map[string]*Grammar
	byExt  map[string]*Grammar
	globs  []globEntry
	plain  *Grammar
}

type globEntry struct {
	pattern string
	grammar *Grammar
}

// NewRegistry returns a registry holding only the plain grammar.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Grammar),
		byTag:  make(map[string]*Grammar),
		byExt:  make(map[string]*Grammar),
	}
	r.plain = MustCompile(PlainDefinition())
	r.Register(r.plain)
	return r
}

// DefaultRegistry returns a registry with every built-in grammar.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range Builtins() {
		r.Register(MustCompile(def))
	}
	return r
}

// Register adds g, replacing any grammar with the same name. Tags,
// extensions and globs registered later take precedence.
func (r *Registry) Register(g *Grammar) {
	if old, ok := r.byName[g.Name()]; ok && old != g {
		r.globs = slices.DeleteFunc(r.globs, func(e globEntry) bool { return e.grammar == old })
		for _, m := range []map[string]*Grammar{r.byTag, r.byExt} {
			for k, v := range m {
				if v == old {
					delete(m, k)
				}
			}
		}
	}
	r.byName[g.Name()] = g
	r.byTag[g.Name()] = g
	for _, a := range g.Aliases() {
		r.byTag[a] = g
	}
	for _, ext := range g.Extensions() {
		r.byExt[ext] = g
	}
	for _, pattern := range g.Filenames() {
		r.globs = append(r.globs, globEntry{pattern: pattern, grammar: g})
	}
}

// Alias makes tag resolve to the grammar registered as name.
func (r *Registry) Alias(tag, name string) error {
	g, err := r.Lookup(name)
	if err != nil {
		return err
	}
	r.byTag[strings.ToLower(tag)] = g
	return nil
}

// Lookup returns the grammar for a language tag.
func (r *Registry) Lookup(tag string) (*Grammar, error) {
	if g, ok := r.byTag[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, tag)
}

// ForTag returns the grammar for tag, or the plain grammar when the tag
// is unknown.
func (r *Registry) ForTag(tag string) *Grammar {
	if g, err := r.Lookup(tag); err == nil {
		return g
	}
	return r.plain
}

// Plain returns the grammar that produces only Plain tokens.
func (r *Registry) Plain() *Grammar {
	return r.plain
}

// Detect picks a grammar for a file path: by extension, then by filename
// glob, then by asking chroma's lexer registry for a language name we
// also know. Anything else gets the plain grammar.
func (r *Registry) Detect(path string) *Grammar {
	base := filepath.Base(path)
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), ".")); ext != "" {
		if g, ok := r.byExt[ext]; ok {
			return g
		}
	}
	for i := len(r.globs) - 1; i >= 0; i-- {
		if match.Match(base, r.globs[i].pattern) {
			return r.globs[i].grammar
		}
	}
	if lexer := lexers.Match(base); lexer != nil {
		cfg := lexer.Config()
		candidates := append([]string{cfg.Name}, cfg.Aliases...)
		for _, name := range candidates {
			if g, ok := r.byTag[strings.ToLower(name)]; ok {
				return g
			}
		}
	}
	return r.plain
}

// Names returns the canonical names of all registered grammars, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
