// Package xml implements the XML DOM format.Writer/format.Reader adapter of
// spec §6, parameterised by a caller-supplied root element name. XML has no
// native object/array/scalar type tags the way JSON does, so this adapter
// documents and applies the conventions described in DESIGN.md: an element
// whose children all share one tag name is an array of that many values;
// an element with distinctly-named children is an object; a childless
// element's text is sniffed as bool/number/string, unless it carries the
// xsi:nil="true" attribute, which decodes to null.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	gcformat "github.com/gocodec/gocodec/format"
)

const nilAttrLocal = "nil"

// NewReader parses data, rooted at a single top-level element (its tag name
// is not otherwise significant to decoding), into a finalized Event slice.
func NewReader(data []byte) (gcformat.Reader, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root, err := readElement(dec)
	if err != nil {
		return nil, err
	}
	var events []gcformat.Event
	root.flatten(&events)
	events = gcformat.Finalize(events)
	return gcformat.NewEventReader(events, nil), nil
}

type xmlNode struct {
	name     string
	text     string
	isNil    bool
	hasText  bool
	children []xmlNode
}

// readElement consumes tokens up to and including the next element's
// EndElement, starting from (and consuming) its StartElement.
func readElement(dec *xml.Decoder) (xmlNode, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xmlNode{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		return readElementBody(dec, start)
	}
}

func readElementBody(dec *xml.Decoder, start xml.StartElement) (xmlNode, error) {
	n := xmlNode{name: start.Name.Local}
	for _, a := range start.Attr {
		if a.Name.Local == nilAttrLocal && (a.Value == "true" || a.Value == "1") {
			n.isNil = true
		}
	}
	var text []byte
	for {
		tok, err := dec.Token()
		if err != nil {
			return xmlNode{}, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text = append(text, t...)
		case xml.StartElement:
			child, err := readElementBody(dec, t)
			if err != nil {
				return xmlNode{}, err
			}
			n.children = append(n.children, child)
		case xml.EndElement:
			if len(n.children) == 0 {
				n.text = string(bytes.TrimSpace(text))
				n.hasText = true
			}
			return n, nil
		}
	}
}

func (n xmlNode) flatten(out *[]gcformat.Event) {
	switch {
	case n.isNil:
		*out = append(*out, gcformat.Event{Type: gcformat.EventNull})
	case len(n.children) == 0:
		*out = append(*out, scalarEvent(n.text))
	case allSameTag(n.children):
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartArray})
		for _, c := range n.children {
			c.flatten(out)
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndArray})
	default:
		*out = append(*out, gcformat.Event{Type: gcformat.EventStartObject})
		for _, c := range n.children {
			*out = append(*out, gcformat.Event{Type: gcformat.EventFieldName, Name: c.name})
			c.flatten(out)
		}
		*out = append(*out, gcformat.Event{Type: gcformat.EventEndObject})
	}
}

func allSameTag(children []xmlNode) bool {
	for i := 1; i < len(children); i++ {
		if children[i].name != children[0].name {
			return false
		}
	}
	return true
}

func scalarEvent(text string) gcformat.Event {
	if text == "" {
		return gcformat.Event{Type: gcformat.EventString, Str: ""}
	}
	if text == "true" || text == "false" {
		return gcformat.Event{Type: gcformat.EventBool, Bool: text == "true"}
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return gcformat.Event{Type: gcformat.EventNumber, I64: n}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return gcformat.Event{Type: gcformat.EventNumber, F64: f, IsFloat: true}
	}
	return gcformat.Event{Type: gcformat.EventString, Str: text}
}

// Writer is a format.Writer that buffers calls as Events and renders them
// to an XML document rooted at rootName, using itemName for array entries,
// on Bytes.
type Writer struct {
	ew       *gcformat.EventWriter
	rootName string
	itemName string
}

// NewWriter returns a Writer. rootName names the top-level element;
// itemName names each entry of an array (since XML arrays are conventional,
// not native — see package doc).
func NewWriter(rootName, itemName string) *Writer {
	if itemName == "" {
		itemName = "item"
	}
	return &Writer{ew: gcformat.NewEventWriter(), rootName: rootName, itemName: itemName}
}

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

// Bytes renders the recorded events to an XML document.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	events := gcformat.Finalize(w.ew.Events)
	if _, err := renderElement(enc, events, 0, w.rootName, w.itemName); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderElement(enc *xml.Encoder, events []gcformat.Event, i int, tag, itemName string) (int, error) {
	start := xml.StartElement{Name: xml.Name{Local: tag}}
	e := events[i]
	switch e.Type {
	case gcformat.EventNull:
		start.Attr = []xml.Attr{{Name: xml.Name{Local: nilAttrLocal}, Value: "true"}}
		if err := enc.EncodeToken(start); err != nil {
			return i, err
		}
		return i + 1, enc.EncodeToken(start.End())
	case gcformat.EventBool, gcformat.EventNumber, gcformat.EventString:
		if err := enc.EncodeToken(start); err != nil {
			return i, err
		}
		if err := enc.EncodeToken(xml.CharData(scalarText(e))); err != nil {
			return i, err
		}
		return i + 1, enc.EncodeToken(start.End())
	case gcformat.EventStartArray:
		if err := enc.EncodeToken(start); err != nil {
			return i, err
		}
		i++
		for events[i].Type != gcformat.EventEndArray {
			var err error
			i, err = renderElement(enc, events, i, itemName, itemName)
			if err != nil {
				return i, err
			}
		}
		return i + 1, enc.EncodeToken(start.End())
	case gcformat.EventStartObject:
		if err := enc.EncodeToken(start); err != nil {
			return i, err
		}
		i++
		for events[i].Type != gcformat.EventEndObject {
			name := events[i].Name
			i++
			var err error
			i, err = renderElement(enc, events, i, name, itemName)
			if err != nil {
				return i, err
			}
		}
		return i + 1, enc.EncodeToken(start.End())
	default:
		return i, fmt.Errorf("format/xml: unexpected event %s", e.Type)
	}
}

func scalarText(e gcformat.Event) string {
	switch e.Type {
	case gcformat.EventBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case gcformat.EventNumber:
		if e.IsFloat {
			return strconv.FormatFloat(e.F64, 'g', -1, 64)
		}
		return strconv.FormatInt(e.I64, 10)
	default:
		return e.Str
	}
}
