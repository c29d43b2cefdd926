// Package format defines the abstract surface the codec core drives to
// read and write a wire representation (spec §4.B, §6). Concrete adapters
// (format/json, format/xml, format/binary, format/msgpack) implement Writer
// and Reader; the core (internal/codec, registry) never imports a concrete
// adapter package.
package format

import "fmt"

// EventType enumerates the structural events a Reader can report.
type EventType int

const (
	EventNone EventType = iota
	EventEOF
	EventNull
	EventBool
	EventNumber
	EventString
	EventStartObject
	EventFieldName
	EventEndObject
	EventStartArray
	EventEndArray
)

func (t EventType) String() string {
	switch t {
	case EventEOF:
		return "EOF"
	case EventNull:
		return "null"
	case EventBool:
		return "bool"
	case EventNumber:
		return "number"
	case EventString:
		return "string"
	case EventStartObject:
		return "startObject"
	case EventFieldName:
		return "fieldName"
	case EventEndObject:
		return "endObject"
	case EventStartArray:
		return "startArray"
	case EventEndArray:
		return "endArray"
	default:
		return "none"
	}
}

// MinLookahead is the minimum lookahead budget (K in spec §4.B) every Reader
// must support: Peek(0), Peek(1), Peek(2).
const MinLookahead = 3

// Event is the payload Peek returns. Name is populated for EventFieldName.
// LastField is populated for EventFieldName and reports whether this field
// is the final field of its enclosing object — adapters know this because
// they buffer at least one object at a time (spec §9 design note), and it
// lets the dynamic-type dispatcher decide "exactly two fields" using only
// the Peek(0..2) budget instead of an unbounded lookahead (see DESIGN.md).
type Event struct {
	Type      EventType
	Name      string
	LastField bool

	// Scalar payloads: Bool for EventBool, Str for EventString, and for
	// EventNumber either I64 or, when IsFloat is set, F64.
	Bool    bool
	I64     int64
	F64     float64
	IsFloat bool
	Str     string
}

// Writer is the push-style output surface. Calls must be well-bracketed by
// the caller (the codec core); a Writer is not responsible for validating
// bracketing, only for emitting the corresponding wire tokens.
type Writer interface {
	WriteNull() error
	WriteBool(v bool) error
	WriteByte(v byte) error
	WriteChar(v rune) error
	WriteShort(v int16) error
	WriteInt(v int32) error
	WriteLong(v int64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error
	WriteString(v string) error

	StartObject() error
	WriteField(name string) error
	EndObject() error

	StartArray() error
	EndArray() error

	// Close releases resources held by the writer (e.g. flushing a
	// buffered sink). Must tolerate being called more than once and must
	// tolerate being called mid-stream on an error path.
	Close() error
}

// Reader is the pull-style input surface with bounded lookahead.
type Reader interface {
	// Peek returns the event `lookahead` structural positions ahead of the
	// current read position without consuming it. 0 <= lookahead <
	// MinLookahead. When the current event is EventStartObject, Peek(1)
	// and Peek(2) report the object's first and second field slots
	// (EventFieldName, or EventEndObject if the object has fewer fields)
	// rather than raw tokens — see Event.LastField.
	Peek(lookahead int) (Event, error)

	ReadNull() error
	ReadBool() (bool, error)
	ReadByte() (byte, error)
	ReadChar() (rune, error)
	ReadShort() (int16, error)
	ReadInt() (int32, error)
	ReadLong() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	ReadString() (string, error)

	StartObject() error
	// ReadFieldName reads the next object field name. If expected is
	// non-empty, the read name must match one of the given names or an
	// error is returned.
	ReadFieldName(expected ...string) (string, error)
	EndObject() error

	StartArray() error
	EndArray() error

	// SkipNode consumes exactly one structural unit: a scalar, a balanced
	// object, or a balanced array.
	SkipNode() error

	// NotEOF reports whether more input remains at the current nesting
	// level (used by collection/map decode loops instead of a fixed
	// count).
	NotEOF() bool

	// Location returns a human-readable position (line/column, byte
	// offset, or similar) for error messages. May return "".
	Location() string

	Close() error
}

// ErrBadLookahead is returned by a Peek implementation given an
// out-of-range lookahead.
func ErrBadLookahead(n int) error {
	return fmt.Errorf("format: lookahead %d out of range [0,%d)", n, MinLookahead)
}
