package visibility

import "errors"

var (
	// ErrMissingTree is returned when public filtering is attempted without
	// a visibility annotation tree. Callers must treat this as a
	// configuration defect rather than suppress it.
	ErrMissingTree = errors.New("visibility: annotation tree is missing or empty")
)
