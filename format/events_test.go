package format

import "testing"

// twoFieldObject emits {"a": 1, "b": 2} via an EventWriter and finalizes it.
func twoFieldObject() []Event {
	w := NewEventWriter()
	w.StartObject()
	w.WriteField("a")
	w.WriteInt(1)
	w.WriteField("b")
	w.WriteInt(2)
	w.EndObject()
	return Finalize(w.Events)
}

func TestFinalizeMarksLastField(t *testing.T) {
	events := twoFieldObject()
	var fieldEvents []Event
	for _, e := range events {
		if e.Type == EventFieldName {
			fieldEvents = append(fieldEvents, e)
		}
	}
	if len(fieldEvents) != 2 {
		t.Fatalf("got %d field events, want 2", len(fieldEvents))
	}
	if fieldEvents[0].LastField {
		t.Errorf("field %q: LastField = true, want false", fieldEvents[0].Name)
	}
	if !fieldEvents[1].LastField {
		t.Errorf("field %q: LastField = false, want true", fieldEvents[1].Name)
	}
}

func TestFinalizeLastFieldAcrossNestedValue(t *testing.T) {
	w := NewEventWriter()
	w.StartObject()
	w.WriteField("a")
	w.StartArray()
	w.WriteInt(1)
	w.WriteInt(2)
	w.EndArray()
	w.WriteField("b")
	w.WriteString("x")
	w.EndObject()
	events := Finalize(w.Events)

	var fields []Event
	for _, e := range events {
		if e.Type == EventFieldName {
			fields = append(fields, e)
		}
	}
	if fields[0].LastField {
		t.Errorf("field %q (array-valued): LastField = true, want false", fields[0].Name)
	}
	if !fields[1].LastField {
		t.Errorf("field %q: LastField = false, want true", fields[1].Name)
	}
}

func TestEventReaderRoundTripsScalarsAndStructure(t *testing.T) {
	events := twoFieldObject()
	r := NewEventReader(events, nil)

	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject: %v", err)
	}
	name, err := r.ReadFieldName()
	if err != nil || name != "a" {
		t.Fatalf("ReadFieldName = (%q, %v), want (a, nil)", name, err)
	}
	v, err := r.ReadInt()
	if err != nil || v != 1 {
		t.Fatalf("ReadInt = (%d, %v), want (1, nil)", v, err)
	}
	name, err = r.ReadFieldName()
	if err != nil || name != "b" {
		t.Fatalf("ReadFieldName = (%q, %v), want (b, nil)", name, err)
	}
	v, err = r.ReadInt()
	if err != nil || v != 2 {
		t.Fatalf("ReadInt = (%d, %v), want (2, nil)", v, err)
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject: %v", err)
	}
}

func TestEventReaderPeekReportsFieldSlotsAndLastField(t *testing.T) {
	events := twoFieldObject()
	r := NewEventReader(events, nil)

	p0, err := r.Peek(0)
	if err != nil || p0.Type != EventStartObject {
		t.Fatalf("Peek(0) = (%v, %v), want (startObject, nil)", p0.Type, err)
	}
	p1, err := r.Peek(1)
	if err != nil || p1.Type != EventFieldName || p1.Name != "a" || p1.LastField {
		t.Fatalf("Peek(1) = %+v, err %v, want field 'a' not-last", p1, err)
	}
	p2, err := r.Peek(2)
	if err != nil || p2.Type != EventFieldName || p2.Name != "b" || !p2.LastField {
		t.Fatalf("Peek(2) = %+v, err %v, want field 'b' last", p2, err)
	}
}

func TestEventReaderPeekOnSingleFieldObjectReportsEndObject(t *testing.T) {
	w := NewEventWriter()
	w.StartObject()
	w.WriteField("only")
	w.WriteBool(true)
	w.EndObject()
	events := Finalize(w.Events)
	r := NewEventReader(events, nil)

	p2, err := r.Peek(2)
	if err != nil {
		t.Fatalf("Peek(2): %v", err)
	}
	if p2.Type != EventEndObject {
		t.Fatalf("Peek(2) on single-field object = %v, want EventEndObject (no second field slot)", p2.Type)
	}
}

func TestEventReaderPeekOutOfRange(t *testing.T) {
	r := NewEventReader(twoFieldObject(), nil)
	if _, err := r.Peek(-1); err == nil {
		t.Fatalf("Peek(-1) = nil error, want ErrBadLookahead")
	}
	if _, err := r.Peek(MinLookahead); err == nil {
		t.Fatalf("Peek(MinLookahead) = nil error, want ErrBadLookahead")
	}
}

func TestEventReaderSkipNodeSkipsNestedValue(t *testing.T) {
	events := Finalize(func() []Event {
		w := NewEventWriter()
		w.StartObject()
		w.WriteField("skip")
		w.StartArray()
		w.WriteInt(1)
		w.StartObject()
		w.WriteField("x")
		w.WriteBool(false)
		w.EndObject()
		w.EndArray()
		w.WriteField("next")
		w.WriteString("here")
		w.EndObject()
		return w.Events
	}())
	r := NewEventReader(events, nil)

	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject: %v", err)
	}
	if _, err := r.ReadFieldName(); err != nil {
		t.Fatalf("ReadFieldName: %v", err)
	}
	if err := r.SkipNode(); err != nil {
		t.Fatalf("SkipNode: %v", err)
	}
	name, err := r.ReadFieldName()
	if err != nil || name != "next" {
		t.Fatalf("after SkipNode, ReadFieldName = (%q, %v), want (next, nil)", name, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "here" {
		t.Fatalf("ReadString = (%q, %v), want (here, nil)", s, err)
	}
}

func TestEventReaderNotEOF(t *testing.T) {
	events := Finalize(func() []Event {
		w := NewEventWriter()
		w.StartArray()
		w.WriteInt(1)
		w.WriteInt(2)
		w.EndArray()
		return w.Events
	}())
	r := NewEventReader(events, nil)
	if err := r.StartArray(); err != nil {
		t.Fatalf("StartArray: %v", err)
	}
	count := 0
	for r.NotEOF() {
		if _, err := r.ReadInt(); err != nil {
			t.Fatalf("ReadInt: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("read %d elements, want 2", count)
	}
	if err := r.EndArray(); err != nil {
		t.Fatalf("EndArray: %v", err)
	}
}

func TestEventReaderReadFieldNameRejectsUnexpected(t *testing.T) {
	r := NewEventReader(twoFieldObject(), nil)
	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject: %v", err)
	}
	if _, err := r.ReadFieldName("nope"); err == nil {
		t.Fatalf("ReadFieldName(\"nope\") = nil error, want mismatch error")
	}
}

// TestEventReaderNumericWidening exercises ReadLong against a float-typed
// event (IsFloat), which must truncate rather than error, mirroring JSON's
// single numeric type.
func TestEventReaderNumericWidening(t *testing.T) {
	w := NewEventWriter()
	w.WriteDouble(3.5)
	events := Finalize(w.Events)
	r := NewEventReader(events, nil)

	v, err := r.ReadLong()
	if err != nil {
		t.Fatalf("ReadLong: %v", err)
	}
	if v != 3 {
		t.Fatalf("ReadLong = %d, want 3 (truncated from 3.5)", v)
	}
}
