package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the size below which neighbouring chunks are merged.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable string stored in leaf nodes.
// A chunk never starts or ends inside a UTF-8 sequence.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// byteOfRune returns the byte index of rune n within the chunk.
func (c Chunk) byteOfRune(n uint64) int {
	if c.summary.Flags&FlagASCII != 0 {
		return int(min(n, uint64(len(c.data))))
	}
	return nthRune(c.data, n)
}

// runesBefore returns the number of runes in c.data[:i].
func (c Chunk) runesBefore(i int) uint64 {
	if c.summary.Flags&FlagASCII != 0 {
		return uint64(i)
	}
	return ComputeSummary(c.data[:i]).Runes
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s

	for len(remaining) > MaxChunkSize {
		split := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	if len(remaining) > 0 {
		chunks = append(chunks, NewChunk(remaining))
	}

	return chunks
}

// mergeSmallChunks joins adjacent chunks when one of them has shrunk below
// MinChunkSize and the result still fits in MaxChunkSize.
func mergeSmallChunks(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}

	out := make([]Chunk, 0, len(chunks))
	out = append(out, chunks[0])
	for _, c := range chunks[1:] {
		last := out[len(out)-1]
		small := last.Len() < MinChunkSize || c.Len() < MinChunkSize
		if small && last.Len()+c.Len() <= MaxChunkSize {
			out[len(out)-1] = NewChunk(last.data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}

// findUTF8Boundary finds a split point near target that does not cut a
// UTF-8 sequence, preferring the position just after a nearby newline.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start returns true if the byte is not a UTF-8 continuation byte.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
