// Package msgpack implements the MessagePack format.Writer/format.Reader
// adapter of spec §6, on top of github.com/vmihailenco/msgpack/v5 — the one
// dependency in gocodec's stack with no counterpart anywhere in the example
// corpus (see DESIGN.md): MessagePack framing is a genuinely new domain
// concern the spec introduces, so it is wired to the ecosystem's standard
// library for it rather than hand-rolled.
package msgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	gcformat "github.com/gocodec/gocodec/format"
)

// NewReader decodes data into a generic value tree and flattens it into a
// finalized Event slice, mirroring format/json's DOM adapter.
func NewReader(data []byte) (gcformat.Reader, error) {
	var tree interface{}
	if err := msgpack.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	var events []gcformat.Event
	if err := walkTree(tree, &events); err != nil {
		return nil, err
	}
	events = gcformat.Finalize(events)
	return gcformat.NewEventReader(events, nil), nil
}

func walkTree(v interface{}, out *[]gcformat.Event) error {
	switch t := v.(type) {
	case nil:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNull})
	case bool:
		*out = append(*out, gcformat.Event{Type: gcformat.EventBool, Bool: t})
	case int64:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, I64: t})
	case uint64:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, I64: int64(t)})
	case int8:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, I64: int64(t)})
	case int:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, I64: int64(t)})
	case float32:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, F64: float64(t), IsFloat: true})
	case float64:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, F64: t, IsFloat: true})
	case string:
		*out = append(*out, gcformat.Event{Type: gcformat.EventString, Str: t})
	case []byte:
		*out = append(*out, gcformat.Event{Type: gcformat.EventString, Str: string(t)})
	case []interface{}:
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartArray})
		for _, elem := range t {
			if err := walkTree(elem, out); err != nil {
				return err
			}
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndArray})
	case map[string]interface{}:
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartObject})
		for name, val := range t {
			*out = append(*out, gcformat.Event{Type: gcformat.EventFieldName, Name: name})
			if err := walkTree(val, out); err != nil {
				return err
			}
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndObject})
	default:
		return fmt.Errorf("format/msgpack: unexpected decoded node type %T", v)
	}
	return nil
}

// Writer is a format.Writer that buffers calls as Events (via
// format.EventWriter) and marshals the equivalent tree with msgpack.Marshal
// on Bytes.
type Writer struct {
	ew *gcformat.EventWriter
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{ew: gcformat.NewEventWriter()} }

func (w *Writer) WriteNull() error         { return w.ew.WriteNull() }
func (w *Writer) WriteBool(v bool) error   { return w.ew.WriteBool(v) }
func (w *Writer) WriteByte(v byte) error   { return w.ew.WriteByte(v) }
func (w *Writer) WriteChar(v rune) error   { return w.ew.WriteChar(v) }
func (w *Writer) WriteShort(v int16) error { return w.ew.WriteShort(v) }
func (w *Writer) WriteInt(v int32) error   { return w.ew.WriteInt(v) }
func (w *Writer) WriteLong(v int64) error  { return w.ew.WriteLong(v) }
func (w *Writer) WriteFloat(v float32) error  { return w.ew.WriteFloat(v) }
func (w *Writer) WriteDouble(v float64) error { return w.ew.WriteDouble(v) }
func (w *Writer) WriteString(v string) error  { return w.ew.WriteString(v) }
func (w *Writer) StartObject() error           { return w.ew.StartObject() }
func (w *Writer) WriteField(name string) error { return w.ew.WriteField(name) }
func (w *Writer) EndObject() error             { return w.ew.EndObject() }
func (w *Writer) StartArray() error { return w.ew.StartArray() }
func (w *Writer) EndArray() error   { return w.ew.EndArray() }
func (w *Writer) Close() error      { return nil }

// Bytes builds the generic value tree from the recorded events and
// marshals it with msgpack.Marshal.
func (w *Writer) Bytes() ([]byte, error) {
	tree, _, err := buildTree(gcformat.Finalize(w.ew.Events), 0)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(tree)
}

func buildTree(events []gcformat.Event, i int) (interface{}, int, error) {
	if i >= len(events) {
		return nil, i, fmt.Errorf("format/msgpack: truncated event stream")
	}
	e := events[i]
	switch e.Type {
	case gcformat.EventNull:
		return nil, i + 1, nil
	case gcformat.EventBool:
		return e.Bool, i + 1, nil
	case gcformat.EventNumber:
		if e.IsFloat {
			return e.F64, i + 1, nil
		}
		return e.I64, i + 1, nil
	case gcformat.EventString:
		return e.Str, i + 1, nil
	case gcformat.EventStartArray:
		arr := []interface{}{}
		i++
		for events[i].Type != gcformat.EventEndArray {
			var v interface{}
			var err error
			v, i, err = buildTree(events, i)
			if err != nil {
				return nil, i, err
			}
			arr = append(arr, v)
		}
		return arr, i + 1, nil
	case gcformat.EventStartObject:
		obj := map[string]interface{}{}
		i++
		for events[i].Type != gcformat.EventEndObject {
			name := events[i].Name
			i++
			var v interface{}
			var err error
			v, i, err = buildTree(events, i)
			if err != nil {
				return nil, i, err
			}
			obj[name] = v
		}
		return obj, i + 1, nil
	default:
		return nil, i, fmt.Errorf("format/msgpack: unexpected event %s building tree", e.Type)
	}
}
