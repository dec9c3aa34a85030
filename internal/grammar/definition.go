package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// RootState is the name of the state every line of a document starts in
// unless a previous line left a different one.
const RootState = "root"

// Rule is one entry of a state's ordered rule list.
type Rule struct {
	// Pattern is a regular expression matched at the scan position.
	Pattern string `toml:"pattern"`

	// Kind classifies the matched text. Identifier matches whose text is
	// one of the definition's words are reclassified as Keyword.
	Kind Kind `toml:"kind"`

	// Next names the state to switch to after a match. Empty stays put.
	Next string `toml:"next,omitempty"`

	// LineStart restricts the rule to column zero.
	LineStart bool `toml:"line_start,omitempty"`
}

// Definition is the declarative source of a grammar.
//
// When States is empty the state tables are derived from the compact
// fields: comment and string delimiters, word lists and the default
// number, identifier, operator and punctuation rules.
type Definition struct {
	Name       string   `toml:"name"`
	Aliases    []string `toml:"aliases"`
	Extensions []string `toml:"extensions"`
	Filenames  []string `toml:"filenames"`

	Keywords   []string `toml:"keywords"`
	Types      []string `toml:"types"`
	Constants  []string `toml:"constants"`
	IgnoreCase bool     `toml:"ignore_case"`

	LineComments     []string `toml:"line_comments"`
	BlockComment     []string `toml:"block_comment"` // open and close delimiters
	Strings          []string `toml:"strings"`
	MultilineStrings []string `toml:"multiline_strings"`
	Chars            []string `toml:"chars"`
	WordPattern      string   `toml:"word_pattern"`

	States map[string][]Rule `toml:"states"`
}

const (
	defaultWordPattern = `[\p{L}_][\p{L}\p{N}_]*`
	numberPattern      = `0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*(?:\.[0-9][0-9_]*)?(?:[eE][+-]?[0-9]+)?`
	operatorPattern    = `[-+*/%=<>!&|^~?:]+`
	punctPattern       = `[()\[\]{}.,;@]`
)

// Validate checks the definition without compiling patterns.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGrammar)
	}
	if len(d.BlockComment) != 0 && len(d.BlockComment) != 2 {
		return fmt.Errorf("%w: %s: block_comment needs an open and a close delimiter", ErrInvalidGrammar, d.Name)
	}
	for _, group := range [][]string{d.LineComments, d.BlockComment, d.Strings, d.MultilineStrings, d.Chars} {
		for _, delim := range group {
			if delim == "" {
				return fmt.Errorf("%w: %s: empty delimiter", ErrInvalidGrammar, d.Name)
			}
		}
	}
	if len(d.States) > 0 {
		if _, ok := d.States[RootState]; !ok {
			return fmt.Errorf("%w: %s: no %q state", ErrInvalidGrammar, d.Name, RootState)
		}
		for name, rules := range d.States {
			for i, r := range rules {
				if r.Pattern == "" {
					return fmt.Errorf("%w: %s: state %s rule %d has no pattern", ErrInvalidGrammar, d.Name, name, i)
				}
				if r.Next != "" {
					if _, ok := d.States[r.Next]; !ok {
						return fmt.Errorf("%w: %s: state %s rule %d jumps to undefined state %q", ErrInvalidGrammar, d.Name, name, i, r.Next)
					}
				}
			}
		}
	}
	return nil
}

// StateTable returns the explicit states, or the states derived from the
// compact fields when none are given.
func (d *Definition) StateTable() map[string][]Rule {
	if len(d.States) > 0 {
		return d.States
	}

	states := make(map[string][]Rule)
	root := []Rule{{Pattern: `\s+`, Kind: Plain}}

	for _, lc := range d.LineComments {
		root = append(root, Rule{Pattern: regexp.QuoteMeta(lc) + `.*`, Kind: Comment})
	}
	if len(d.BlockComment) == 2 {
		open, closing := d.BlockComment[0], d.BlockComment[1]
		root = append(root, Rule{Pattern: regexp.QuoteMeta(open), Kind: Comment, Next: "comment"})
		states["comment"] = spanState(closing, Comment, false)
	}
	// Longer delimiters first so """ wins over ".
	for i, delim := range d.MultilineStrings {
		name := "string" + strconv.Itoa(i)
		root = append(root, Rule{Pattern: regexp.QuoteMeta(delim), Kind: String, Next: name})
		states[name] = spanState(delim, String, true)
	}
	for _, delim := range d.Strings {
		q := regexp.QuoteMeta(delim)
		root = append(root, Rule{Pattern: q + `(?:\\.|.)*?(?:` + q + `|$)`, Kind: String})
	}
	for _, delim := range d.Chars {
		q := regexp.QuoteMeta(delim)
		root = append(root, Rule{Pattern: q + `(?:\\.[^` + classEscape(delim) + `]*|[^\\` + classEscape(delim) + `])` + q, Kind: String})
	}

	word := d.WordPattern
	if word == "" {
		word = defaultWordPattern
	}
	root = append(root,
		Rule{Pattern: numberPattern, Kind: Number},
		Rule{Pattern: word, Kind: Identifier},
		Rule{Pattern: operatorPattern, Kind: Operator},
		Rule{Pattern: punctPattern, Kind: Punctuation},
	)
	states[RootState] = root
	return states
}

// spanState builds the rules for the inside of a construct that runs
// until closing, possibly across lines.
func spanState(closing string, kind Kind, escapes bool) []Rule {
	var rules []Rule
	if escapes {
		rules = append(rules, Rule{Pattern: `\\.`, Kind: kind})
	}
	rules = append(rules, Rule{Pattern: regexp.QuoteMeta(closing), Kind: kind, Next: RootState})
	stop := classEscape(closing)
	if escapes {
		stop += `\\`
	}
	return append(rules,
		Rule{Pattern: `[^` + stop + `]+`, Kind: kind},
		Rule{Pattern: `.`, Kind: kind},
	)
}

// classEscape returns the first character of delim escaped for use
// inside a bracket expression.
func classEscape(delim string) string {
	r := []rune(delim)[0]
	if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return `\` + string(r)
	}
	return string(r)
}

// words returns the set of words reclassified as keywords.
func (d *Definition) words() map[string]struct{} {
	n := len(d.Keywords) + len(d.Types) + len(d.Constants)
	if n == 0 {
		return nil
	}
	set := make(map[string]struct{}, n)
	for _, group := range [][]string{d.Keywords, d.Types, d.Constants} {
		for _, w := range group {
			if d.IgnoreCase {
				w = strings.ToLower(w)
			}
			set[w] = struct{}{}
		}
	}
	return set
}
