package format

import (
	"fmt"
	"io"
)

// EventWriter is a Writer that records every call as an Event, in order.
// Concrete adapters drive the codec core against an EventWriter and then
// render the resulting Events slice into their own wire bytes — this keeps
// the bracket-tracking and event-shape logic in one place instead of
// duplicated per format.
type EventWriter struct {
	Events []Event
	depth  []EventType // stack of StartObject/StartArray, for Close bookkeeping only
}

// NewEventWriter returns an empty EventWriter.
func NewEventWriter() *EventWriter { return &EventWriter{} }

func (w *EventWriter) push(e Event) { w.Events = append(w.Events, e) }

func (w *EventWriter) WriteNull() error              { w.push(Event{Type: EventNull}); return nil }
func (w *EventWriter) WriteBool(v bool) error         { w.push(Event{Type: EventBool, Bool: v}); return nil }
func (w *EventWriter) WriteByte(v byte) error         { w.push(Event{Type: EventNumber, I64: int64(v)}); return nil }
func (w *EventWriter) WriteChar(v rune) error         { w.push(Event{Type: EventString, Str: string(v)}); return nil }
func (w *EventWriter) WriteShort(v int16) error       { w.push(Event{Type: EventNumber, I64: int64(v)}); return nil }
func (w *EventWriter) WriteInt(v int32) error         { w.push(Event{Type: EventNumber, I64: int64(v)}); return nil }
func (w *EventWriter) WriteLong(v int64) error        { w.push(Event{Type: EventNumber, I64: v}); return nil }
func (w *EventWriter) WriteFloat(v float32) error {
	w.push(Event{Type: EventNumber, F64: float64(v), IsFloat: true})
	return nil
}
func (w *EventWriter) WriteDouble(v float64) error {
	w.push(Event{Type: EventNumber, F64: v, IsFloat: true})
	return nil
}
func (w *EventWriter) WriteString(v string) error { w.push(Event{Type: EventString, Str: v}); return nil }

func (w *EventWriter) StartObject() error {
	w.push(Event{Type: EventStartObject})
	w.depth = append(w.depth, EventStartObject)
	return nil
}
func (w *EventWriter) WriteField(name string) error {
	w.push(Event{Type: EventFieldName, Name: name})
	return nil
}
func (w *EventWriter) EndObject() error {
	w.push(Event{Type: EventEndObject})
	if len(w.depth) > 0 {
		w.depth = w.depth[:len(w.depth)-1]
	}
	return nil
}
func (w *EventWriter) StartArray() error {
	w.push(Event{Type: EventStartArray})
	w.depth = append(w.depth, EventStartArray)
	return nil
}
func (w *EventWriter) EndArray() error {
	w.push(Event{Type: EventEndArray})
	if len(w.depth) > 0 {
		w.depth = w.depth[:len(w.depth)-1]
	}
	return nil
}
func (w *EventWriter) Close() error { return nil }

// Finalize fills in Event.LastField on every EventFieldName so that a later
// EventReader built from these Events can answer the dynamic-dispatcher's
// "exactly two fields" question from Peek(1)/Peek(2) alone.
func Finalize(events []Event) []Event {
	match := matchBrackets(events)
	for i, e := range events {
		if e.Type != EventFieldName {
			continue
		}
		// The field's value span follows immediately; find where it ends,
		// then check whether the next token is EndObject.
		valIdx := i + 1
		var after int
		if valIdx < len(events) && (events[valIdx].Type == EventStartObject || events[valIdx].Type == EventStartArray) {
			after = match[valIdx] + 1
		} else {
			after = valIdx + 1
		}
		events[i].LastField = after < len(events) && events[after].Type == EventEndObject
	}
	return events
}

// matchBrackets returns, for each Start* index, the index of its matching
// End* event; -1 elsewhere.
func matchBrackets(events []Event) []int {
	match := make([]int, len(events))
	for i := range match {
		match[i] = -1
	}
	var stack []int
	for i, e := range events {
		switch e.Type {
		case EventStartObject, EventStartArray:
			stack = append(stack, i)
		case EventEndObject, EventEndArray:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				match[top] = i
			}
		}
	}
	return match
}

// EventReader is a Reader over a flat, pre-tokenized Event slice produced
// by an adapter's parser (already run through Finalize). It implements the
// full lookahead/skip contract generically so each format only has to
// implement "parse bytes into Events" and "render Events into bytes".
type EventReader struct {
	events []Event
	match  []int
	cur    int
	loc    func(pos int) string
}

// NewEventReader wraps a finalized Event slice. loc, if non-nil, formats a
// location string for a given event index (used for error messages).
func NewEventReader(events []Event, loc func(pos int) string) *EventReader {
	return &EventReader{events: events, match: matchBrackets(events), loc: loc}
}

func (r *EventReader) Location() string {
	if r.loc == nil {
		return ""
	}
	return r.loc(r.cur)
}

func (r *EventReader) at(i int) Event {
	if i < 0 || i >= len(r.events) {
		return Event{Type: EventEOF}
	}
	return r.events[i]
}

func (r *EventReader) skipSpan(i int) int {
	e := r.at(i)
	if e.Type == EventStartObject || e.Type == EventStartArray {
		return r.match[i] + 1
	}
	return i + 1
}

// Peek implements Reader.
func (r *EventReader) Peek(n int) (Event, error) {
	if n < 0 || n >= MinLookahead {
		return Event{}, ErrBadLookahead(n)
	}
	if n == 0 {
		return r.at(r.cur), nil
	}
	cur := r.at(r.cur)
	if cur.Type != EventStartObject {
		// Outside the envelope-detection use case, Peek(n>0) answers
		// "the nth following sibling" generically.
		idx := r.cur
		for i := 0; i < n; i++ {
			idx = r.skipSpan(idx)
		}
		return r.at(idx), nil
	}
	targetSlot := n - 1
	idx := r.cur + 1
	for slot := 0; ; slot++ {
		e := r.at(idx)
		if e.Type == EventEndObject || e.Type == EventEOF {
			return Event{Type: EventEndObject}, nil
		}
		if slot == targetSlot {
			return e, nil
		}
		idx = r.skipSpan(idx + 1)
	}
}

func (r *EventReader) next() Event {
	e := r.at(r.cur)
	r.cur++
	return e
}

func (r *EventReader) expect(want EventType) (Event, error) {
	e := r.at(r.cur)
	if e.Type != want {
		return e, fmt.Errorf("format: expected %s, got %s at %s", want, e.Type, r.Location())
	}
	return r.next(), nil
}

func (r *EventReader) ReadNull() error {
	_, err := r.expect(EventNull)
	return err
}

func (r *EventReader) ReadBool() (bool, error) {
	e, err := r.expect(EventBool)
	if err != nil {
		return false, err
	}
	return e.Bool, nil
}

func (r *EventReader) readNumber() (Event, error) { return r.expect(EventNumber) }

func (r *EventReader) ReadByte() (byte, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return byte(e.F64), nil
	}
	return byte(e.I64), nil
}

func (r *EventReader) ReadChar() (rune, error) {
	e, err := r.expect(EventString)
	if err != nil {
		return 0, err
	}
	runes := []rune(e.Str)
	if len(runes) != 1 {
		return 0, fmt.Errorf("format: char must be exactly one code point, got %d at %s", len(runes), r.Location())
	}
	return runes[0], nil
}

func (r *EventReader) ReadShort() (int16, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return int16(e.F64), nil
	}
	return int16(e.I64), nil
}

func (r *EventReader) ReadInt() (int32, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return int32(e.F64), nil
	}
	return int32(e.I64), nil
}

func (r *EventReader) ReadLong() (int64, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return int64(e.F64), nil
	}
	return e.I64, nil
}

func (r *EventReader) ReadFloat() (float32, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return float32(e.F64), nil
	}
	return float32(e.I64), nil
}

func (r *EventReader) ReadDouble() (float64, error) {
	e, err := r.readNumber()
	if err != nil {
		return 0, err
	}
	if e.IsFloat {
		return e.F64, nil
	}
	return float64(e.I64), nil
}

func (r *EventReader) ReadString() (string, error) {
	e, err := r.expect(EventString)
	if err != nil {
		return "", err
	}
	return e.Str, nil
}

func (r *EventReader) StartObject() error {
	_, err := r.expect(EventStartObject)
	return err
}

func (r *EventReader) ReadFieldName(expected ...string) (string, error) {
	e, err := r.expect(EventFieldName)
	if err != nil {
		return "", err
	}
	if len(expected) == 0 {
		return e.Name, nil
	}
	for _, want := range expected {
		if e.Name == want {
			return e.Name, nil
		}
	}
	return "", fmt.Errorf("format: expected field name in %v, got %q at %s", expected, e.Name, r.Location())
}

func (r *EventReader) EndObject() error {
	_, err := r.expect(EventEndObject)
	return err
}

func (r *EventReader) StartArray() error {
	_, err := r.expect(EventStartArray)
	return err
}

func (r *EventReader) EndArray() error {
	_, err := r.expect(EventEndArray)
	return err
}

func (r *EventReader) SkipNode() error {
	e := r.at(r.cur)
	if e.Type == EventEOF {
		return io.ErrUnexpectedEOF
	}
	r.cur = r.skipSpan(r.cur)
	return nil
}

func (r *EventReader) NotEOF() bool {
	e := r.at(r.cur)
	return e.Type != EventEndObject && e.Type != EventEndArray && e.Type != EventEOF
}

func (r *EventReader) Close() error { return nil }
