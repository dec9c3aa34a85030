package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/zuedev/zedit/internal/engine/buffer"
)

// ErrNoPath is returned when saving a document that has no file name.
var ErrNoPath = errors.New("no file name")

// Encode converts normalized text to the bytes written for a file: a
// trailing newline is ensured, line breaks become le, and the text is
// encoded with enc. Characters Windows-1252 cannot represent are
// replaced.
func Encode(text string, le buffer.LineEnding, enc Encoding) ([]byte, error) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if seq := le.Sequence(); seq != "\n" {
		text = strings.ReplaceAll(text, "\n", seq)
	}

	switch enc {
	case EncodingWindows1252:
		out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode windows-1252: %w", err)
		}
		return out, nil
	case EncodingUTF8BOM:
		return append(append([]byte{}, utf8BOM...), text...), nil
	default:
		return []byte(text), nil
	}
}

// Save writes text to path atomically: the data goes to a temporary file
// in the same directory that then replaces path. An existing file keeps
// its permissions. It returns the number of bytes written.
func Save(path, text string, le buffer.LineEnding, enc Encoding) (int, error) {
	if path == "" {
		return 0, ErrNoPath
	}
	data, err := Encode(text, le, enc)
	if err != nil {
		return 0, err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	return len(data), nil
}
