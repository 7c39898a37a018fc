package incentives

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors comparable with errors.Is().
var (
	// ErrIncompleteIncentive indicates an overlay entry missing one of the
	// required fields (id, name, state).
	ErrIncompleteIncentive = constError("incentive entry missing id, name, or state")
)
