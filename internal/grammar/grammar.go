package grammar

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Grammar is a compiled, read-only rule set for one language. It is safe
// to share between any number of highlighters.
type Grammar struct {
	name       string
	aliases    []string
	extensions []string
	filenames  []string

	stateNames []string
	states     [][]compiledRule
	words      map[string]struct{}
	ignoreCase bool
}

type compiledRule struct {
	re        *regexp.Regexp
	kind      Kind
	next      int // -1 keeps the current state
	lineStart bool
}

// Compile builds a Grammar from a definition.
func Compile(def Definition) (*Grammar, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	table := def.StateTable()

	// Root is always state 0; the rest are ordered by name so state
	// numbers are stable across runs.
	names := make([]string, 0, len(table))
	for name := range table {
		if name != RootState {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	names = append([]string{RootState}, names...)

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	g := &Grammar{
		name:       strings.ToLower(def.Name),
		aliases:    lowerAll(def.Aliases),
		extensions: lowerAll(def.Extensions),
		filenames:  slices.Clone(def.Filenames),
		stateNames: names,
		states:     make([][]compiledRule, len(names)),
		words:      def.words(),
		ignoreCase: def.IgnoreCase,
	}
	for i, name := range names {
		rules := table[name]
		compiled := make([]compiledRule, 0, len(rules))
		for j, r := range rules {
			re, err := regexp.Compile(`^(?:` + r.Pattern + `)`)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: state %s rule %d: %v", ErrInvalidGrammar, def.Name, name, j, err)
			}
			next := -1
			if r.Next != "" {
				n, ok := index[r.Next]
				if !ok {
					return nil, fmt.Errorf("%w: %s: state %s rule %d jumps to undefined state %q", ErrInvalidGrammar, def.Name, name, j, r.Next)
				}
				next = n
			}
			compiled = append(compiled, compiledRule{re: re, kind: r.Kind, next: next, lineStart: r.LineStart})
		}
		g.states[i] = compiled
	}
	return g, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// built-in definitions.
func MustCompile(def Definition) *Grammar {
	g, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the canonical lower-case grammar name.
func (g *Grammar) Name() string { return g.name }

// Aliases returns alternative language tags.
func (g *Grammar) Aliases() []string { return g.aliases }

// Extensions returns the file extensions, without dots.
func (g *Grammar) Extensions() []string { return g.extensions }

// Filenames returns the filename globs.
func (g *Grammar) Filenames() []string { return g.filenames }

// NumStates returns the number of lexer states.
func (g *Grammar) NumStates() int { return len(g.states) }

// StateName returns the name of a state.
func (g *Grammar) StateName(s State) string {
	if int(s) < len(g.stateNames) {
		return g.stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Tokenize splits line into tokens, starting in state start, and returns
// the tokens together with the state the line ends in. The tokens cover
// the whole line without gaps. An unknown start state is treated as Root.
func (g *Grammar) Tokenize(line string, start State) ([]Token, State) {
	state := int(start)
	if state >= len(g.states) {
		state = int(Root)
	}

	var tokens []Token
	pos := 0
	for pos < len(line) {
		rest := line[pos:]
		kind, n, next := g.match(state, rest, pos == 0)
		if n == 0 {
			_, size := utf8.DecodeRuneInString(rest)
			kind, n, next = Plain, size, -1
		}
		if kind == Identifier && g.isWord(rest[:n]) {
			kind = Keyword
		}
		tokens = append(tokens, Token{Kind: kind, Start: uint32(pos), End: uint32(pos + n)})
		if next >= 0 {
			state = next
		}
		pos += n
	}
	return tokens, State(state)
}

// match returns the kind, length and target state of the first rule of
// state that matches a non-empty prefix of rest.
func (g *Grammar) match(state int, rest string, atLineStart bool) (Kind, int, int) {
	for _, r := range g.states[state] {
		if r.lineStart && !atLineStart {
			continue
		}
		loc := r.re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		return r.kind, loc[1], r.next
	}
	return Plain, 0, -1
}

func (g *Grammar) isWord(s string) bool {
	if g.words == nil {
		return false
	}
	if g.ignoreCase {
		s = strings.ToLower(s)
	}
	_, ok := g.words[s]
	return ok
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimPrefix(s, "."))
	}
	return out
}
