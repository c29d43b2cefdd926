package codec

import (
	"reflect"
	"testing"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/typeinfo"
)

type point struct {
	X int32
	Y int32
}

func primLookup(t reflect.Type) (Codec, error) {
	switch t.Kind() {
	case reflect.Int32:
		return PrimitiveCodec(typeinfo.PrimInt, t), nil
	case reflect.String:
		return StringCodec(t), nil
	}
	panic("unsupported type in test lookup: " + t.String())
}

func newEmptyStruct(t reflect.Type) func() reflect.Value {
	return func() reflect.Value { return reflect.New(t).Elem() }
}

func TestObjectCodecRoundTrip(t *testing.T) {
	pt := reflect.TypeOf(point{})
	desc := []typeinfo.FieldDescriptor{
		{Name: "x", Type: reflect.TypeOf(int32(0)), Index: []int{0}},
		{Name: "y", Type: reflect.TypeOf(int32(0)), Index: []int{1}},
	}
	c, err := ObjectCodec(pt, desc, primLookup, newEmptyStruct(pt), false)
	if err != nil {
		t.Fatalf("ObjectCodec: %v", err)
	}

	events := encodeToEvents(t, c, reflect.ValueOf(point{X: 3, Y: 4}))
	got := decodeFromEvents(t, c, events).Interface().(point)
	if got != (point{X: 3, Y: 4}) {
		t.Fatalf("got %+v, want {3 4}", got)
	}
}

func TestObjectCodecSkipsUnknownFieldsByDefault(t *testing.T) {
	pt := reflect.TypeOf(point{})
	desc := []typeinfo.FieldDescriptor{
		{Name: "x", Type: reflect.TypeOf(int32(0)), Index: []int{0}},
	}
	c, err := ObjectCodec(pt, desc, primLookup, newEmptyStruct(pt), false)
	if err != nil {
		t.Fatalf("ObjectCodec: %v", err)
	}

	w := format.NewEventWriter()
	w.StartObject()
	w.WriteField("x")
	w.WriteInt(1)
	w.WriteField("extra")
	w.WriteString("ignored")
	w.EndObject()
	events := format.Finalize(w.Events)

	got := decodeFromEvents(t, c, events).Interface().(point)
	if got.X != 1 {
		t.Fatalf("got %+v, want X=1 with unknown field skipped", got)
	}
}

func TestObjectCodecFailOnUnknownFields(t *testing.T) {
	pt := reflect.TypeOf(point{})
	desc := []typeinfo.FieldDescriptor{
		{Name: "x", Type: reflect.TypeOf(int32(0)), Index: []int{0}},
	}
	c, err := ObjectCodec(pt, desc, primLookup, newEmptyStruct(pt), true)
	if err != nil {
		t.Fatalf("ObjectCodec: %v", err)
	}

	w := format.NewEventWriter()
	w.StartObject()
	w.WriteField("x")
	w.WriteInt(1)
	w.WriteField("extra")
	w.WriteString("nope")
	w.EndObject()
	events := format.Finalize(w.Events)

	r := format.NewEventReader(events, nil)
	if _, err := c.Decode(r); err == nil {
		t.Fatalf("Decode with unknown field and FailOnUnknownFields=true = nil error, want StructuralMismatch")
	}
}

func TestObjectCodecSkipsNestedUnknownStructure(t *testing.T) {
	pt := reflect.TypeOf(point{})
	desc := []typeinfo.FieldDescriptor{
		{Name: "y", Type: reflect.TypeOf(int32(0)), Index: []int{1}},
	}
	c, err := ObjectCodec(pt, desc, primLookup, newEmptyStruct(pt), false)
	if err != nil {
		t.Fatalf("ObjectCodec: %v", err)
	}

	w := format.NewEventWriter()
	w.StartObject()
	w.WriteField("nested")
	w.StartObject()
	w.WriteField("deep")
	w.StartArray()
	w.WriteInt(1)
	w.WriteInt(2)
	w.EndArray()
	w.EndObject()
	w.WriteField("y")
	w.WriteInt(9)
	w.EndObject()
	events := format.Finalize(w.Events)

	got := decodeFromEvents(t, c, events).Interface().(point)
	if got.Y != 9 {
		t.Fatalf("got %+v, want Y=9 (nested unknown field fully skipped)", got)
	}
}
