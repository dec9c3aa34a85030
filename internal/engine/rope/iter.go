package rope

type iterFrame struct {
	node *Node
	next int
}

// ChunkIterator iterates over chunks in a rope in document order.
type ChunkIterator struct {
	stack  []iterFrame
	chunk  Chunk
	offset ByteOffset
	seen   bool
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]iterFrame, 0, 16)}
	if r.root != nil {
		it.stack = append(it.stack, iterFrame{node: r.root})
	}
	return it
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if it.seen {
		it.offset += ByteOffset(it.chunk.Len())
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.next < len(top.node.chunks) {
				it.chunk = top.node.chunks[top.next]
				top.next++
				it.seen = true
				return true
			}
		} else if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			it.stack = append(it.stack, iterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}

	it.seen = false
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.offset
}
