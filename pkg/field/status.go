package field

// Status is the validation state of a field.
type Status int

const (
	// Idle: the field is empty and shows no error.
	Idle Status = iota
	// Pending: input changed and the debounce delay has not passed yet.
	Pending
	// Valid: the current text passed validation.
	Valid
	// Invalid: the current text failed validation.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// event drives the status machine.
type event string

const (
	evChanged        event = "changed"
	evDeduped        event = "deduped"
	evSettledEmpty   event = "settled_empty"
	evSettledValid   event = "settled_valid"
	evSettledInvalid event = "settled_invalid"
)

// State is a point-in-time view of a controller.
type State[T any] struct {
	// Raw is the text as last entered, untrimmed.
	Raw    string
	Status Status
	// Value is set only when Status is Valid.
	Value T
	// Err and Message are set only when Status is Invalid.
	Err     error
	Message string
}

// Settled reports whether the state reflects a finished validation of Raw.
func (s State[T]) Settled() bool {
	return s.Status != Pending
}
