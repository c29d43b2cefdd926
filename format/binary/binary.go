// Package binary implements the compact byte-framing format.Writer/
// format.Reader adapter of spec §6: a minimal tag-prefixed encoding with no
// third-party counterpart in the example corpus, so — per DESIGN.md — it is
// built directly on the standard library's encoding/binary varint helpers,
// the same primitive a hand-rolled wire codec would reach for in any of the
// example repos that do their own byte framing.
package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	gcformat "github.com/gocodec/gocodec/format"
)

type tag byte

const (
	tagNull tag = iota
	tagFalse
	tagTrue
	tagInt
	tagFloat
	tagString
	tagFieldName
	tagStartObject
	tagEndObject
	tagStartArray
	tagEndArray
)

// NewReader parses data into a finalized Event slice.
func NewReader(data []byte) (gcformat.Reader, error) {
	events, err := parse(data)
	if err != nil {
		return nil, err
	}
	events = gcformat.Finalize(events)
	return gcformat.NewEventReader(events, nil), nil
}

func parse(data []byte) ([]gcformat.Event, error) {
	var events []gcformat.Event
	for len(data) > 0 {
		t := tag(data[0])
		data = data[1:]
		switch t {
		case tagNull:
			events = append(events, gcformat.Event{Type: gcformat.EventNull})
		case tagFalse:
			events = append(events, gcformat.Event{Type: gcformat.EventBool, Bool: false})
		case tagTrue:
			events = append(events, gcformat.Event{Type: gcformat.EventBool, Bool: true})
		case tagInt:
			n, k := binary.Varint(data)
			if k <= 0 {
				return nil, fmt.Errorf("format/binary: truncated varint")
			}
			data = data[k:]
			events = append(events, gcformat.Event{Type: gcformat.EventNumber, I64: n})
		case tagFloat:
			if len(data) < 8 {
				return nil, fmt.Errorf("format/binary: truncated float")
			}
			bits := binary.LittleEndian.Uint64(data[:8])
			data = data[8:]
			events = append(events, gcformat.Event{Type: gcformat.EventNumber, F64: math.Float64frombits(bits), IsFloat: true})
		case tagString, tagFieldName:
			s, rest, err := readString(data)
			if err != nil {
				return nil, err
			}
			data = rest
			if t == tagString {
				events = append(events, gcformat.Event{Type: gcformat.EventString, Str: s})
			} else {
				events = append(events, gcformat.Event{Type: gcformat.EventFieldName, Name: s})
			}
		case tagStartObject:
			events = append(events, gcformat.Event{Type: gcformat.EventStartObject})
		case tagEndObject:
			events = append(events, gcformat.Event{Type: gcformat.EventEndObject})
		case tagStartArray:
			events = append(events, gcformat.Event{Type: gcformat.EventStartArray})
		case tagEndArray:
			events = append(events, gcformat.Event{Type: gcformat.EventEndArray})
		default:
			return nil, fmt.Errorf("format/binary: unknown tag %d", t)
		}
	}
	return events, nil
}

func readString(data []byte) (string, []byte, error) {
	n, k := binary.Varint(data)
	if k <= 0 || n < 0 {
		return "", nil, fmt.Errorf("format/binary: truncated string length")
	}
	data = data[k:]
	if int64(len(data)) < n {
		return "", nil, fmt.Errorf("format/binary: truncated string body")
	}
	return string(data[:n]), data[n:], nil
}

// Writer is a format.Writer that renders directly to a growing byte buffer.
type Writer struct {
	out []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the framed document written so far.
func (w *Writer) Bytes() []byte { return w.out }

func (w *Writer) putTag(t tag) { w.out = append(w.out, byte(t)) }

func (w *Writer) putVarint(n int64) {
	var buf [binary.MaxVarintLen64]byte
	k := binary.PutVarint(buf[:], n)
	w.out = append(w.out, buf[:k]...)
}

func (w *Writer) putString(t tag, s string) {
	w.putTag(t)
	w.putVarint(int64(len(s)))
	w.out = append(w.out, s...)
}

func (w *Writer) WriteNull() error { w.putTag(tagNull); return nil }
func (w *Writer) WriteBool(v bool) error {
	if v {
		w.putTag(tagTrue)
	} else {
		w.putTag(tagFalse)
	}
	return nil
}
func (w *Writer) WriteByte(v byte) error   { w.putTag(tagInt); w.putVarint(int64(v)); return nil }
func (w *Writer) WriteChar(v rune) error   { return w.WriteString(string(v)) }
func (w *Writer) WriteShort(v int16) error { w.putTag(tagInt); w.putVarint(int64(v)); return nil }
func (w *Writer) WriteInt(v int32) error   { w.putTag(tagInt); w.putVarint(int64(v)); return nil }
func (w *Writer) WriteLong(v int64) error  { w.putTag(tagInt); w.putVarint(v); return nil }
func (w *Writer) WriteFloat(v float32) error  { return w.writeFloat(float64(v)) }
func (w *Writer) WriteDouble(v float64) error { return w.writeFloat(v) }
func (w *Writer) writeFloat(v float64) error {
	w.putTag(tagFloat)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	w.out = append(w.out, buf[:]...)
	return nil
}
func (w *Writer) WriteString(v string) error { w.putString(tagString, v); return nil }

func (w *Writer) StartObject() error { w.putTag(tagStartObject); return nil }
func (w *Writer) WriteField(name string) error {
	w.putString(tagFieldName, name)
	return nil
}
func (w *Writer) EndObject() error { w.putTag(tagEndObject); return nil }
func (w *Writer) StartArray() error { w.putTag(tagStartArray); return nil }
func (w *Writer) EndArray() error   { w.putTag(tagEndArray); return nil }
func (w *Writer) Close() error      { return nil }
