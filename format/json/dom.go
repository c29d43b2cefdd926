package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	gcformat "github.com/gocodec/gocodec/format"
)

// NewDOMReader parses data into a generic Go value tree with the standard
// library's json.Decoder (UseNumber, to distinguish integral from
// fractional literals) and flattens that tree into a finalized Event slice.
func NewDOMReader(data []byte) (gcformat.Reader, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	var events []gcformat.Event
	walkTree(tree, &events)
	events = gcformat.Finalize(events)
	return gcformat.NewEventReader(events, nil), nil
}

func walkTree(v interface{}, out *[]gcformat.Event) {
	switch t := v.(type) {
	case nil:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNull})
	case bool:
		*out = append(*out, gcformat.Event{Type: gcformat.EventBool, Bool: t})
	case json.Number:
		s := string(t)
		if strings.ContainsAny(s, ".eE") {
			f, _ := t.Float64()
			*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, F64: f, IsFloat: true})
		} else {
			n, err := t.Int64()
			if err != nil {
				f, _ := t.Float64()
				*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, F64: f, IsFloat: true})
			} else {
				*out = append(*out, gcformat.Event{Type: gcformat.EventNumber, I64: n})
			}
		}
	case string:
		*out = append(*out, gcformat.Event{Type: gcformat.EventString, Str: t})
	case []interface{}:
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartArray})
		for _, elem := range t {
			walkTree(elem, out)
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndArray})
	case map[string]interface{}:
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartObject})
		for name, val := range t {
			*out = append(*out, gcformat.Event{Type: gcformat.EventFieldName, Name: name})
			walkTree(val, out)
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndObject})
	default:
		panic(fmt.Sprintf("format/json: unexpected DOM node type %T", v))
	}
}

// DOMWriter is a format.Writer that accumulates calls as Events (via
// format.EventWriter) and renders the whole tree to bytes only on Bytes,
// mirroring how a tree-building encoder would work in a host language with
// a native generic-object representation.
type DOMWriter struct {
	ew     *gcformat.EventWriter
	indent string
}

// NewDOMWriter returns a DOMWriter. If indent is non-empty, json.MarshalIndent
// is used to render the final document.
func NewDOMWriter(indent string) *DOMWriter {
	return &DOMWriter{ew: gcformat.NewEventWriter(), indent: indent}
}

func (w *DOMWriter) WriteNull() error        { return w.ew.WriteNull() }
func (w *DOMWriter) WriteBool(v bool) error  { return w.ew.WriteBool(v) }
func (w *DOMWriter) WriteByte(v byte) error  { return w.ew.WriteByte(v) }
func (w *DOMWriter) WriteChar(v rune) error  { return w.ew.WriteChar(v) }
func (w *DOMWriter) WriteShort(v int16) error { return w.ew.WriteShort(v) }
func (w *DOMWriter) WriteInt(v int32) error   { return w.ew.WriteInt(v) }
func (w *DOMWriter) WriteLong(v int64) error  { return w.ew.WriteLong(v) }
func (w *DOMWriter) WriteFloat(v float32) error  { return w.ew.WriteFloat(v) }
func (w *DOMWriter) WriteDouble(v float64) error { return w.ew.WriteDouble(v) }
func (w *DOMWriter) WriteString(v string) error  { return w.ew.WriteString(v) }
func (w *DOMWriter) StartObject() error           { return w.ew.StartObject() }
func (w *DOMWriter) WriteField(name string) error { return w.ew.WriteField(name) }
func (w *DOMWriter) EndObject() error              { return w.ew.EndObject() }
func (w *DOMWriter) StartArray() error { return w.ew.StartArray() }
func (w *DOMWriter) EndArray() error   { return w.ew.EndArray() }
func (w *DOMWriter) Close() error      { return nil }

// Bytes builds the generic value tree from the recorded events and marshals
// it with the standard library.
func (w *DOMWriter) Bytes() ([]byte, error) {
	tree, _, err := buildTree(gcformat.Finalize(w.ew.Events), 0)
	if err != nil {
		return nil, err
	}
	if w.indent != "" {
		return json.MarshalIndent(tree, "", w.indent)
	}
	return json.Marshal(tree)
}

func buildTree(events []gcformat.Event, i int) (interface{}, int, error) {
	if i >= len(events) {
		return nil, i, fmt.Errorf("format/json: truncated event stream")
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
		return nil, i, fmt.Errorf("format/json: unexpected event %s building DOM tree", e.Type)
	}
}
