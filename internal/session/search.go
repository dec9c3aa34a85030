package session

import (
	"strings"

	"github.com/zuedev/zedit/internal/engine/cursor"
)

// Find moves the cursor to the next occurrence of pattern after the
// cursor, or the previous one before it when backward is set. The search
// wraps around the document; wrapped reports whether it did.
func (s *Session) Find(pattern string, backward bool) (found, wrapped bool) {
	if pattern == "" {
		return false, false
	}
	text := s.buf.Text()
	head := int(s.sel.Head)

	var idx int
	if backward {
		idx = strings.LastIndex(text[:head], pattern)
		if idx < 0 {
			idx, wrapped = strings.LastIndex(text, pattern), true
		}
	} else {
		from := min(head+1, len(text))
		idx = strings.Index(text[from:], pattern)
		if idx >= 0 {
			idx += from
		} else {
			idx, wrapped = strings.Index(text, pattern), true
		}
	}
	if idx < 0 {
		return false, false
	}
	s.setCursor(ByteOffset(idx))
	return true, wrapped
}

// ReplaceAll replaces every occurrence of old with repl as a single undo
// unit and returns the number of replacements.
func (s *Session) ReplaceAll(old, repl string) (int, error) {
	if old == "" {
		return 0, nil
	}
	text := s.buf.Text()
	var matches []int
	for from := 0; ; {
		i := strings.Index(text[from:], old)
		if i < 0 {
			break
		}
		matches = append(matches, from+i)
		from += i + len(old)
	}
	if len(matches) == 0 {
		return 0, nil
	}

	head := s.sel.Head
	err := s.hist.Transaction("replace all", func() error {
		// Back to front so earlier offsets stay valid.
		for i := len(matches) - 1; i >= 0; i-- {
			at := ByteOffset(matches[i])
			if _, err := s.replace(at, at+ByteOffset(len(old)), repl); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	// head may now fall inside replaced text; its line start cannot.
	s.setCursor(cursor.LineStart(s.buf, min(head, s.buf.Len())))
	return len(matches), nil
}
