package ledger

// Kind classifies a rejection; every failed call aborts atomically with no state change.
type Kind int

const (
	NotFound Kind = iota + 1
	Unauthorized
	InvalidArgument
	PreconditionFailed
	ExternalCallFailure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Unauthorized:
		return "Unauthorized"
	case InvalidArgument:
		return "InvalidArgument"
	case PreconditionFailed:
		return "PreconditionFailed"
	case ExternalCallFailure:
		return "ExternalCallFailure"
	}
	return "Unknown"
}

// Error is a rejection surfaced to the caller, carrying the reason string of
// the original contract revert and the category it belongs to.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error //non-nil only for ExternalCallFailure
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the category of a ledger rejection, or 0 for other errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

func errNotFound(reason string) *Error {
	return &Error{Kind: NotFound, Reason: reason}
}

func errUnauthorized(reason string) *Error {
	return &Error{Kind: Unauthorized, Reason: reason}
}

func errInvalidArgument(reason string) *Error {
	return &Error{Kind: InvalidArgument, Reason: reason}
}

func errPrecondition(reason string) *Error {
	return &Error{Kind: PreconditionFailed, Reason: reason}
}

func errExternalCall(reason string, cause error) *Error {
	return &Error{Kind: ExternalCallFailure, Reason: reason, Cause: cause}
}
