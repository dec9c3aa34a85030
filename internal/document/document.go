// Package document loads files into editable text and writes them back.
//
// Buffer content always uses "\n" line breaks and UTF-8. Load records the
// file's original line ending and encoding so Save can restore them.
package document

import (
	"path/filepath"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
)

// Encoding names the byte encoding a file is stored in.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF8BOM     Encoding = "utf-8-bom"
	EncodingWindows1252 Encoding = "windows-1252"
)

// Document is a whole-document snapshot handed to a session.
type Document struct {
	// Path is the file path, empty for a scratch document.
	Path string

	// Text is the normalized content.
	Text string

	// Language is the grammar name detected for Path.
	Language string

	LineEnding buffer.LineEnding
	Encoding   Encoding

	// ReadOnly is set when the file is not writable.
	ReadOnly bool

	// New is set when Path did not exist.
	New bool
}

// Scratch returns an empty, unnamed document.
func Scratch() Document {
	return Document{Encoding: EncodingUTF8, Language: grammar.PlainName, New: true}
}

// Name returns the display name of the document.
func (d Document) Name() string {
	if d.Path == "" {
		return "[No Name]"
	}
	return filepath.Base(d.Path)
}
