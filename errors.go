package parquetcore

import "fmt"

// Kind classifies every error this package returns (spec.md section 7).
// Callers branch on Kind via errors.Is against the package-level sentinels
// below rather than string-matching error text.
type Kind int

const (
	MalformedFile Kind = iota
	MalformedMetadata
	UnsupportedFeature
	DecodeError
	TypeMismatch
	MissingDictionary
	DuplicateDictionary
	ShortInput
)

func (k Kind) String() string {
	switch k {
	case MalformedFile:
		return "malformed file"
	case MalformedMetadata:
		return "malformed metadata"
	case UnsupportedFeature:
		return "unsupported feature"
	case DecodeError:
		return "decode error"
	case TypeMismatch:
		return "type mismatch"
	case MissingDictionary:
		return "missing dictionary"
	case DuplicateDictionary:
		return "duplicate dictionary"
	case ShortInput:
		return "short input"
	default:
		return "unknown error"
	}
}

// Error is the error type at the root of every error this package returns:
// operations wrap one of the sentinel *Error values below with
// github.com/pkg/errors, which carries the file/column context in its
// message, and errors.As finds the sentinel beneath that chain. Its Kind is
// what callers should branch on. The package itself never sets Cause.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parquetcore: %s: %v", e.Kind, e.Cause)
	}
	return "parquetcore: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports Kind equality so that errors.Is(err, ErrMalformedFile) (etc.)
// matches any *Error of that Kind, regardless of its wrapped cause/context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons; github.com/pkg/errors.Wrap/Wrapf
// build richer, context-carrying instances from these at the point of
// failure.
var (
	ErrMalformedFile       = &Error{Kind: MalformedFile}
	ErrMalformedMetadata   = &Error{Kind: MalformedMetadata}
	ErrUnsupportedFeature  = &Error{Kind: UnsupportedFeature}
	ErrDecode              = &Error{Kind: DecodeError}
	ErrTypeMismatch        = &Error{Kind: TypeMismatch}
	ErrMissingDictionary   = &Error{Kind: MissingDictionary}
	ErrDuplicateDictionary = &Error{Kind: DuplicateDictionary}
	ErrShortInput          = &Error{Kind: ShortInput}
)
