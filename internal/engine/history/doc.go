// Package history records buffer edits so they can be undone and redone.
//
// Every mutation is captured as an EditOp paired with its inverse. Undo
// hands back the inverses of the most recent entry in the order they must
// be applied; redo hands back the forward ops. The history never touches a
// buffer itself, callers apply the returned ops through an Editor:
//
//	h := history.New(1000)
//	res, _ := buf.Insert(0, "x")
//	h.RecordResult(res)
//
//	if e, ok := h.Undo(); ok {
//	    history.Apply(buf, e.Backward())
//	}
//
// # Entries and grouping
//
// An Entry is one undo unit. BeginGroup and EndGroup fold every edit
// recorded in between into a single entry, which is how an insert-mode
// session undoes as one step.
//
// # Capacity
//
// Entries live in a fixed-size ring. Recording into a full ring evicts the
// oldest entry. Recording after an undo discards everything that could
// have been redone.
package history
