// Package json implements two format.Writer/format.Reader adapters over
// JSON (spec §6): a streaming adapter (this file, scan.go, render.go) that
// hand-scans/renders JSON bytes directly into and out of format.Event
// values, and a DOM adapter (dom.go) that materializes a generic Go value
// tree via the standard library's encoding/json. Both ultimately
// produce/consume the same []format.Event shape, so the codec core never
// knows which one it is talking to.
package json

import (
	"github.com/gocodec/gocodec/format"
)

// NewStreamReader scans data with the package's scanner and returns a
// format.Reader backed by format.EventReader.
func NewStreamReader(data []byte) (format.Reader, error) {
	events, err := parseStream(data)
	if err != nil {
		return nil, err
	}
	events = format.Finalize(events)
	return format.NewEventReader(events, nil), nil
}

// StreamWriter is a format.Writer that renders directly to bytes via a
// renderer as calls arrive, rather than buffering an Event slice first —
// the "streaming" counterpart to the DOM writer's tree-then-marshal
// approach.
type StreamWriter struct {
	r *renderer
}

// NewStreamWriter returns a StreamWriter. If indent is non-empty, nested
// entries are pretty-printed (tabs/spaces only, per renderer).
func NewStreamWriter(indent string) (*StreamWriter, error) {
	r, err := newRenderer(indent)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{r: r}, nil
}

// Bytes returns the rendered document. Valid after the matching sequence of
// writes has completed; Close does not alter the output.
func (w *StreamWriter) Bytes() []byte { return w.r.Bytes() }

func (w *StreamWriter) WriteNull() error          { w.r.WriteNull(); return nil }
func (w *StreamWriter) WriteBool(v bool) error    { w.r.WriteBool(v); return nil }
func (w *StreamWriter) WriteByte(v byte) error    { w.r.WriteInt(int64(v)); return nil }
func (w *StreamWriter) WriteChar(v rune) error    { return w.r.WriteString(string(v)) }
func (w *StreamWriter) WriteShort(v int16) error  { w.r.WriteInt(int64(v)); return nil }
func (w *StreamWriter) WriteInt(v int32) error    { w.r.WriteInt(int64(v)); return nil }
func (w *StreamWriter) WriteLong(v int64) error   { w.r.WriteInt(v); return nil }
func (w *StreamWriter) WriteFloat(v float32) error {
	w.r.WriteFloat(float64(v), 32)
	return nil
}
func (w *StreamWriter) WriteDouble(v float64) error {
	w.r.WriteFloat(v, 64)
	return nil
}
func (w *StreamWriter) WriteString(v string) error { return w.r.WriteString(v) }

func (w *StreamWriter) StartObject() error          { w.r.StartObject(); return nil }
func (w *StreamWriter) WriteField(name string) error { return w.r.WriteName(name) }
func (w *StreamWriter) EndObject() error            { w.r.EndObject(); return nil }

func (w *StreamWriter) StartArray() error { w.r.StartArray(); return nil }
func (w *StreamWriter) EndArray() error   { w.r.EndArray(); return nil }

func (w *StreamWriter) Close() error { return nil }
