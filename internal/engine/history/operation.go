package history

import (
	"errors"
	"fmt"

	"github.com/zuedev/zedit/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// OpKind distinguishes the two primitive edit operations.
type OpKind uint8

const (
	OpInsert OpKind = iota
	OpDelete
)

// String returns the operation kind name.
func (k OpKind) String() string {
	if k == OpDelete {
		return "delete"
	}
	return "insert"
}

// EditOp is an immutable primitive edit. A delete carries the text it
// removes so its inverse can be built without consulting the buffer.
type EditOp struct {
	kind   OpKind
	offset ByteOffset
	text   string
}

// Insert returns an op that inserts text at offset.
func Insert(offset ByteOffset, text string) EditOp {
	return EditOp{kind: OpInsert, offset: offset, text: text}
}

// Delete returns an op that removes removed, which starts at offset.
func Delete(offset ByteOffset, removed string) EditOp {
	return EditOp{kind: OpDelete, offset: offset, text: removed}
}

// Kind returns the operation kind.
func (op EditOp) Kind() OpKind { return op.kind }

// Offset returns the byte offset the op applies at.
func (op EditOp) Offset() ByteOffset { return op.offset }

// Text returns the inserted or removed text.
func (op EditOp) Text() string { return op.text }

// Len returns the number of bytes the op inserts or removes.
func (op EditOp) Len() ByteOffset { return ByteOffset(len(op.text)) }

// IsEmpty reports whether applying the op would change nothing.
func (op EditOp) IsEmpty() bool { return op.text == "" }

// Inverse returns the op that undoes op.
func (op EditOp) Inverse() EditOp {
	if op.kind == OpInsert {
		return Delete(op.offset, op.text)
	}
	return Insert(op.offset, op.text)
}

// String returns a human-readable representation of the op.
func (op EditOp) String() string {
	return fmt.Sprintf("%s(%d, %q)", op.kind, op.offset, op.text)
}

// Editor is the mutation surface ops are applied through.
type Editor interface {
	Insert(offset ByteOffset, text string) (buffer.EditResult, error)
	Delete(offset, length ByteOffset) (buffer.EditResult, error)
}

// Apply applies op through ed.
func (op EditOp) Apply(ed Editor) (buffer.EditResult, error) {
	if op.kind == OpInsert {
		return ed.Insert(op.offset, op.text)
	}
	return ed.Delete(op.offset, op.Len())
}

// Apply applies ops in order and returns each result. It stops at the
// first failure.
func Apply(ed Editor, ops []EditOp) ([]buffer.EditResult, error) {
	results := make([]buffer.EditResult, 0, len(ops))
	for _, op := range ops {
		res, err := op.Apply(ed)
		if err != nil {
			return results, fmt.Errorf("apply %s: %w", op, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// ApplyAll applies ops like Apply, but all or nothing: when an op fails,
// the ops already applied are reverted, newest first, before the error is
// returned.
func ApplyAll(ed Editor, ops []EditOp) ([]buffer.EditResult, error) {
	results, err := Apply(ed, ops)
	if err == nil {
		return results, nil
	}
	if rerr := Revert(ed, results); rerr != nil {
		return nil, errors.Join(err, fmt.Errorf("rollback: %w", rerr))
	}
	return nil, err
}

// Revert undoes applied edit results, newest first.
func Revert(ed Editor, results []buffer.EditResult) error {
	for i := len(results) - 1; i >= 0; i-- {
		ops := OpsFromResult(results[i])
		for j := len(ops) - 1; j >= 0; j-- {
			if _, err := ops[j].Inverse().Apply(ed); err != nil {
				return err
			}
		}
	}
	return nil
}

// OpsFromResult converts an edit result into forward ops. A replace
// becomes a delete followed by an insert.
func OpsFromResult(res buffer.EditResult) []EditOp {
	var ops []EditOp
	if res.OldText != "" {
		ops = append(ops, Delete(res.OldRange.Start, res.OldText))
	}
	if res.NewText != "" {
		ops = append(ops, Insert(res.OldRange.Start, res.NewText))
	}
	return ops
}
