package core

type CursorState int

const (
	CursorStateUnknown CursorState = iota
	// CursorStateOpen has unconsumed items or more batches on the server.
	CursorStateOpen
	// CursorStateDraining has a buffered batch left and nothing on the server.
	CursorStateDraining
	CursorStateExhausted
	CursorStateDeleted
	CursorStateFailed
)

func CursorStateFromString(s string) CursorState {
	switch s {
	case CursorStateUnknown.String():
		return CursorStateUnknown

	case CursorStateOpen.String():
		return CursorStateOpen
	case CursorStateDraining.String():
		return CursorStateDraining

	case CursorStateExhausted.String():
		return CursorStateExhausted
	case CursorStateDeleted.String():
		return CursorStateDeleted

	case CursorStateFailed.String():
		return CursorStateFailed

	default:
		return CursorStateUnknown
	}
}

func (s CursorState) String() string {
	switch s {
	case CursorStateUnknown:
		return "unknown"

	case CursorStateOpen:
		return "open"
	case CursorStateDraining:
		return "draining"

	case CursorStateExhausted:
		return "exhausted"
	case CursorStateDeleted:
		return "deleted"

	case CursorStateFailed:
		return "failed"

	default:
		return "unknown"
	}
}

// Done reports whether the cursor can no longer yield items.
func (s CursorState) Done() bool {
	return s == CursorStateExhausted || s == CursorStateDeleted || s == CursorStateFailed
}
