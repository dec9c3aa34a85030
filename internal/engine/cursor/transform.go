package cursor

import (
	"github.com/zuedev/zedit/internal/engine/buffer"
)

// TransformOffset maps an offset through an applied edit.
//
// Transformation rules:
//   - offset before the replaced range: unchanged
//   - offset at or after the end of the replaced range: shifted by the delta
//   - offset inside the replaced range: moved to the end of the new text
//
// An insertion exactly at offset therefore pushes the offset past the
// inserted text.
func TransformOffset(offset ByteOffset, res buffer.EditResult) ByteOffset {
	switch {
	case offset < res.OldRange.Start:
		return offset
	case offset >= res.OldRange.End:
		return offset + res.Delta()
	default:
		return res.NewRange.End
	}
}

// TransformOffsetSticky is like TransformOffset, except that an insertion
// exactly at offset leaves it in place.
func TransformOffsetSticky(offset ByteOffset, res buffer.EditResult) ByteOffset {
	if offset == res.OldRange.Start && res.OldRange.IsEmpty() {
		return offset
	}
	return TransformOffset(offset, res)
}

// TransformSelection updates a selection after an edit. The anchor is
// sticky and the head is not, so text typed at a cursor lands before it.
func TransformSelection(sel Selection, res buffer.EditResult) Selection {
	if sel.IsEmpty() {
		return NewCursorSelection(TransformOffset(sel.Head, res))
	}
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, res),
		Head:   TransformOffset(sel.Head, res),
	}
}
