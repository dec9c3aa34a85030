package buffer

import "fmt"

// EditResult describes the effect of one mutation: the byte range it
// replaced, the range the new text now occupies, and the lines touched.
type EditResult struct {
	OldRange Range  // Replaced range, in pre-edit offsets
	NewRange Range  // Range of the new text, in post-edit offsets
	OldText  string // Text that was removed
	NewText  string // Text that was added

	StartLine  uint32 // Line containing OldRange.Start
	OldEndLine uint32 // Line containing OldRange.End before the edit
	NewEndLine uint32 // Line containing NewRange.End after the edit
}

// String returns a human-readable representation of the result.
func (r EditResult) String() string {
	switch {
	case r.IsNoOp():
		return "NoOp"
	case r.OldText == "":
		return fmt.Sprintf("Insert(%d, %q)", r.NewRange.Start, r.NewText)
	case r.NewText == "":
		return fmt.Sprintf("Delete%s", r.OldRange)
	}
	return fmt.Sprintf("Replace%s with %q", r.OldRange, r.NewText)
}

// IsNoOp returns true if the edit changed nothing.
func (r EditResult) IsNoOp() bool {
	return r.OldText == "" && r.NewText == ""
}

// Delta returns the change in buffer length caused by the edit.
func (r EditResult) Delta() int64 {
	return int64(len(r.NewText)) - int64(len(r.OldText))
}

// LineDelta returns the change in line count caused by the edit.
func (r EditResult) LineDelta() int {
	return int(r.NewEndLine) - int(r.OldEndLine)
}
