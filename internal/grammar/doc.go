// Package grammar tokenizes single lines of source text.
//
// A Grammar is compiled from a declarative Definition: named states, each
// an ordered list of rules. Tokenize scans a line from left to right; at
// every position the first rule of the current state whose pattern
// matches wins, emits a token of the rule's kind and may switch state.
// Input no rule matches is emitted one character at a time as Plain, so
// tokenization always terminates.
//
// Tokenize is a pure function of the line text and the state the line
// starts in. The state a line ends in is the state the next line starts
// in, which is all an incremental highlighter needs to re-lex one line in
// isolation.
//
// Definitions come either in the compact language form (keywords, comment
// and string delimiters) or as explicit state tables. Built-in grammars
// cover common languages; more can be loaded from TOML or JSON files.
package grammar
