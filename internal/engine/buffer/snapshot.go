package buffer

import (
	"io"
	"strings"

	"github.com/zuedev/zedit/internal/engine/rope"
)

// Snapshot is a read-only view of a buffer at one revision. It never
// changes, even if the buffer is edited afterwards, and may be read from
// any goroutine.
type Snapshot struct {
	rope       rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
}

// Text returns the full snapshot content as a string.
func (s Snapshot) Text() string {
	return s.rope.String()
}

// Len returns the total byte length of the snapshot.
func (s Snapshot) Len() ByteOffset {
	return ByteOffset(s.rope.Len())
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() uint32 {
	return s.rope.LineCount()
}

// RevisionID returns the revision the snapshot was taken at.
func (s Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the line ending style the snapshot is written with.
func (s Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// WriteTo writes the content, translating "\n" to the snapshot's line
// ending style.
func (s Snapshot) WriteTo(w io.Writer) (int64, error) {
	if s.lineEnding == LineEndingLF {
		return s.rope.WriteTo(w)
	}

	var total int64
	seq := s.lineEnding.Sequence()
	it := s.rope.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, strings.ReplaceAll(it.Chunk().String(), "\n", seq))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
