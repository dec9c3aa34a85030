package highlight

import "errors"

// ErrSuperseded is returned by Pass.Step when an edit arrived after the
// pass began. The pass must be discarded.
var ErrSuperseded = errors.New("highlight pass superseded by a newer edit")
