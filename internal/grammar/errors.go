package grammar

import "errors"

var (
	// ErrUnknownGrammar is returned by Registry.Lookup for a tag that has
	// no loaded grammar. Callers that only need something to tokenize with
	// use Registry.ForTag, which degrades to the plain grammar.
	ErrUnknownGrammar = errors.New("unknown grammar")

	// ErrInvalidGrammar marks a definition that cannot be compiled.
	ErrInvalidGrammar = errors.New("invalid grammar")
)
