// Package gcerr implements the error taxonomy used across gocodec.
//
// Every failure the codec core and its format adapters produce is wrapped
// into an *Error carrying a Category, so callers can branch on the kind of
// failure (UnknownType vs MalformedInput, say) without string matching.
package gcerr

import (
	"errors"
	"fmt"
)

// Category classifies a codec failure.
type Category int

const (
	// Other is the zero value; used only for errors constructed without a
	// specific category (should not normally escape the package).
	Other Category = iota

	// MalformedInput means the format adapter reported an event inconsistent
	// with what the codec expected (e.g. a scalar where an object was
	// expected).
	MalformedInput

	// UnknownType means nameToClass failed to resolve a dynamic-type
	// envelope's discriminator.
	UnknownType

	// UnknownEnumConstant means the decoded name is not one of the enum's
	// registered constant names.
	UnknownEnumConstant

	// MissingConstructor means no registered or oracle-provided constructor
	// exists for a non-primitive type.
	MissingConstructor

	// MalformedScalar means a primitive decode-time value violated its
	// shape (e.g. the char codec received a multi-rune string).
	MalformedScalar

	// StructuralMismatch means a field was not readable/writable via the
	// oracle, or a field writer rejected the decoded value.
	StructuralMismatch
)

func (c Category) String() string {
	switch c {
	case MalformedInput:
		return "malformed input"
	case UnknownType:
		return "unknown type"
	case UnknownEnumConstant:
		return "unknown enum constant"
	case MissingConstructor:
		return "missing constructor"
	case MalformedScalar:
		return "malformed scalar"
	case StructuralMismatch:
		return "structural mismatch"
	default:
		return "error"
	}
}

// Error is the single failure kind the façade surfaces, per spec: it
// carries a category, a location-or-path, a message, and the underlying
// cause (if any).
type Error struct {
	Category Category
	Location string // adapter Location() string, where available
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("gocodec: %s at %s: %s", e.Category, e.Location, e.Message)
	}
	return fmt.Sprintf("gocodec: %s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same category, so
// errors.Is(err, &gcerr.Error{Category: gcerr.UnknownType}) matches any
// *Error of that category in err's chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category
}

// New constructs an *Error with the given category and formatted message.
func New(cat Category, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a category and location, preserving err as the
// unwrap target. If err is already a *Error, it is returned as is with its
// own category (cat is ignored); only its location is filled in if empty.
func Wrap(cat Category, location string, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		if e.Location == "" {
			e.Location = location
		}
		return e
	}
	return &Error{Category: cat, Location: location, Message: err.Error(), Err: err}
}

// Sentinel category markers, used with errors.As for predicate-style checks
// akin to the teacher's RequiredNotSet/InvalidUTF8 interfaces.
type categoryChecker interface{ GocodecCategory() Category }

func (e *Error) GocodecCategory() Category { return e.Category }

// CategoryOf reports the category of err if it (or something it wraps)
// exposes one, and false otherwise.
func CategoryOf(err error) (Category, bool) {
	var cc categoryChecker
	if errors.As(err, &cc) {
		return cc.GocodecCategory(), true
	}
	return Other, false
}
