// Package highlight keeps per-line syntax tokens in step with buffer edits.
//
// The Highlighter caches one token list and one ending lexer state per
// line. An edit marks the lines it touched dirty; a refresh pass
// re-tokenizes dirty lines top to bottom and keeps marking the following
// line dirty for as long as a line's ending state differs from the one it
// had before. Propagation stops as soon as the states agree again, so an
// ordinary keystroke re-lexes one line while opening a block comment
// re-lexes everything up to the point where it is closed.
//
// Reading tokens never tokenizes. Rendering is therefore bounded by the
// number of visible lines, whatever the size of the document.
//
// A refresh can run in bounded steps through a Pass. A Pass started
// before an edit refuses to continue afterwards and reports
// ErrSuperseded; the caller starts a new one.
package highlight
