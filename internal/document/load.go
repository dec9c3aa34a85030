package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/zuedev/zedit/internal/engine/buffer"
	"github.com/zuedev/zedit/internal/grammar"
)

// ErrIsDirectory is returned when asked to load a directory.
var ErrIsDirectory = errors.New("is a directory")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the file at path. A missing file yields an empty document
// marked New. Content that is not valid UTF-8 is decoded as
// Windows-1252. reg picks the language; it may be nil.
func Load(path string, reg *grammar.Registry) (Document, error) {
	doc := Document{
		Path:     path,
		Encoding: EncodingUTF8,
		Language: detect(path, reg),
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc.New = true
		return doc, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("load %s: %w", path, ErrIsDirectory)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	doc.Text, doc.Encoding, err = Decode(data)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	doc.Text, doc.LineEnding = Normalize(doc.Text)
	doc.ReadOnly = info.Mode().Perm()&0o200 == 0
	return doc, nil
}

// Decode converts file bytes to UTF-8 text and reports the encoding
// they were in.
func Decode(data []byte) (string, Encoding, error) {
	if bytes.HasPrefix(data, utf8BOM) && utf8.Valid(data[len(utf8BOM):]) {
		return string(data[len(utf8BOM):]), EncodingUTF8BOM, nil
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("decode windows-1252: %w", err)
	}
	return string(out), EncodingWindows1252, nil
}

// Normalize converts every line break in text to "\n" and returns the
// dominant original line ending.
func Normalize(text string) (string, buffer.LineEnding) {
	le := buffer.DetectLineEnding(text)
	if !strings.Contains(text, "\r") {
		return text, le
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, le
}

func detect(path string, reg *grammar.Registry) string {
	if reg == nil {
		return grammar.PlainName
	}
	return reg.Detect(path).Name()
}
