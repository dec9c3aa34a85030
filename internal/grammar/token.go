package grammar

import (
	"fmt"
	"strings"
)

// Kind is the semantic class of a token.
type Kind uint8

// Token kinds. Plain is the zero value.
const (
	Plain Kind = iota
	Keyword
	String
	Comment
	Identifier
	Number
	Operator
	Punctuation

	kindCount
)

var kindNames = [kindCount]string{
	Plain:       "plain",
	Keyword:     "keyword",
	String:      "string",
	Comment:     "comment",
	Identifier:  "identifier",
	Number:      "number",
	Operator:    "operator",
	Punctuation: "punctuation",
}

// Accepted spellings beyond the canonical names.
var kindAliases = map[string]Kind{
	"type":     Keyword,
	"constant": Keyword,
	"char":     String,
	"function": Identifier,
	"punct":    Punctuation,
	"text":     Plain,
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return Plain, fmt.Errorf("%w: unknown token kind %q", ErrInvalidGrammar, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Token is a classified byte range of one line.
type Token struct {
	Kind  Kind
	Start uint32 // Byte offset within the line
	End   uint32 // Exclusive
	Line  uint32 // Set by the highlighter; Tokenize leaves it zero
}

// Len returns the token length in bytes.
func (t Token) Len() uint32 {
	return t.End - t.Start
}

// Contains reports whether the byte column falls inside the token.
func (t Token) Contains(col uint32) bool {
	return col >= t.Start && col < t.End
}

// Text returns the token's text taken from its line.
func (t Token) Text(line string) string {
	if int(t.End) > len(line) || t.Start > t.End {
		return ""
	}
	return line[t.Start:t.End]
}

// String returns a compact representation such as keyword[0:2].
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}

// State is the lexer state carried from the end of one line to the start
// of the next. The zero value is the root state of every grammar.
type State uint16

// Root is the state every document starts in.
const Root State = 0
