package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// All leaves of a tree sit at the same depth.
type Node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	n := &Node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of text in this subtree.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

// appendRange appends text in the byte range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	offset := ByteOffset(0)
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			chunkEnd := offset + ByteOffset(chunk.Len())
			if chunkEnd > start && offset < end {
				lo := int(max(start, offset) - offset)
				hi := int(min(end, chunkEnd) - offset)
				sb.WriteString(chunk.data[lo:hi])
			}
			if chunkEnd >= end {
				return
			}
			offset = chunkEnd
		}
		return
	}

	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Bytes
		if childEnd > start && offset < end {
			child.appendRange(sb, max(start, offset)-offset, min(end, childEnd)-offset)
		}
		if childEnd >= end {
			return
		}
		offset = childEnd
	}
}

// insert inserts text at offset (relative to this node) and returns the
// replacement nodes, all of this node's height. More than one node is
// returned when the insertion overflows the node.
func (n *Node) insert(offset ByteOffset, text string) []*Node {
	if n.IsLeaf() {
		return n.insertLeaf(offset, text)
	}

	idx, childOffset := n.findChildByOffset(offset)
	replaced := n.children[idx].insert(childOffset, text)

	children := make([]*Node, 0, len(n.children)+len(replaced)-1)
	children = append(children, n.children[:idx]...)
	children = append(children, replaced...)
	children = append(children, n.children[idx+1:]...)
	return packInternal(children)
}

func (n *Node) insertLeaf(offset ByteOffset, text string) []*Node {
	chunks := make([]Chunk, 0, len(n.chunks)+2)
	pos := ByteOffset(0)
	inserted := false

	for _, c := range n.chunks {
		end := pos + ByteOffset(c.Len())
		if !inserted && offset <= end {
			k := int(offset - pos)
			chunks = append(chunks, splitIntoChunks(c.data[:k]+text+c.data[k:])...)
			inserted = true
		} else {
			chunks = append(chunks, c)
		}
		pos = end
	}
	if !inserted {
		chunks = append(chunks, splitIntoChunks(text)...)
	}

	return packLeaves(chunks)
}

// deleteRange removes [start, end) relative to this node. It returns nil
// when nothing of the node remains.
func (n *Node) deleteRange(start, end ByteOffset) *Node {
	if start == 0 && end >= n.Len() {
		return nil
	}

	pos := ByteOffset(0)
	if n.IsLeaf() {
		chunks := make([]Chunk, 0, len(n.chunks))
		for _, c := range n.chunks {
			cEnd := pos + ByteOffset(c.Len())
			switch {
			case cEnd <= start || pos >= end:
				chunks = append(chunks, c)
			default:
				lo := int(max(start, pos) - pos)
				hi := int(min(end, cEnd) - pos)
				if keep := c.data[:lo] + c.data[hi:]; keep != "" {
					chunks = append(chunks, NewChunk(keep))
				}
			}
			pos = cEnd
		}
		chunks = mergeSmallChunks(chunks)
		if len(chunks) == 0 {
			return nil
		}
		return newLeafNode(chunks)
	}

	children := make([]*Node, 0, len(n.children))
	for i, child := range n.children {
		cEnd := pos + n.childSummaries[i].Bytes
		switch {
		case cEnd <= start || pos >= end:
			children = append(children, child)
		default:
			if kept := child.deleteRange(max(start, pos)-pos, min(end, cEnd)-pos); kept != nil {
				children = append(children, kept)
			}
		}
		pos = cEnd
	}
	if len(children) == 0 {
		return nil
	}
	return newInternalNode(children)
}

// packLeaves groups chunks into as few leaves as MaxChunksPerLeaf allows,
// spreading them evenly.
func packLeaves(chunks []Chunk) []*Node {
	if len(chunks) <= MaxChunksPerLeaf {
		return []*Node{newLeafNode(chunks)}
	}

	groups := (len(chunks) + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	leaves := make([]*Node, 0, groups)
	for i := 0; i < groups; i++ {
		lo := i * len(chunks) / groups
		hi := (i + 1) * len(chunks) / groups
		leaves = append(leaves, newLeafNode(chunks[lo:hi:hi]))
	}
	return leaves
}

// packInternal groups same-height children into internal nodes of at most
// MaxChildren each, spreading them evenly.
func packInternal(children []*Node) []*Node {
	if len(children) <= MaxChildren {
		return []*Node{newInternalNode(children)}
	}

	groups := (len(children) + MaxChildren - 1) / MaxChildren
	nodes := make([]*Node, 0, groups)
	for i := 0; i < groups; i++ {
		lo := i * len(children) / groups
		hi := (i + 1) * len(children) / groups
		nodes = append(nodes, newInternalNode(children[lo:hi:hi]))
	}
	return nodes
}

// buildRoot stacks same-height nodes into a single root.
func buildRoot(nodes []*Node) *Node {
	for len(nodes) > 1 {
		nodes = packInternal(nodes)
	}
	return nodes[0]
}

// findChildByOffset finds the child containing the given byte offset.
// An offset at the very end resolves to the last child.
func (n *Node) findChildByOffset(offset ByteOffset) (int, ByteOffset) {
	current := ByteOffset(0)
	for i, summary := range n.childSummaries {
		if current+summary.Bytes > offset {
			return i, offset - current
		}
		current += summary.Bytes
	}

	last := len(n.children) - 1
	return last, offset - (current - n.childSummaries[last].Bytes)
}

// descend walks to the chunk for which within reports true, given the
// summary of all text before the candidate span. It returns the chunk and
// the summary of everything preceding it.
func (n *Node) descend(within func(prefix, span TextSummary) bool) (Chunk, TextSummary, bool) {
	var prefix TextSummary
	for !n.IsLeaf() {
		next := -1
		for i, s := range n.childSummaries {
			if within(prefix, s) {
				next = i
				break
			}
			prefix = prefix.Add(s)
		}
		if next < 0 {
			return Chunk{}, prefix, false
		}
		n = n.children[next]
	}

	for _, c := range n.chunks {
		if within(prefix, c.summary) {
			return c, prefix, true
		}
		prefix = prefix.Add(c.summary)
	}
	return Chunk{}, prefix, false
}
