// Package codec implements the format-independent codec families (spec
// §4.C–§4.G): primitive/array leaves, collection/map/enum factories, the
// object codec synthesiser, the dynamic-type dispatcher, and the
// forwarding reference used to break cyclic codec graphs.
//
// Nothing in this package imports the registry: factories receive a Lookup
// closure instead, so the registry (which owns the lock discipline and the
// forwarding-reference bookkeeping of spec §4.G) can sit "above" codec
// without an import cycle.
package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
)

// Codec is a pair of operations bound to a concrete Go type and the format
// adapter's surface (spec §3: "A pair of operations (encode, decode)").
type Codec interface {
	Encode(w format.Writer, v reflect.Value) error
	Decode(r format.Reader) (reflect.Value, error)
}

// Lookup resolves the Codec for a type, synthesising and caching it on
// first use. Supplied by the registry; recursive codec factories call back
// through it for field/element/key/value sub-codecs.
type Lookup func(t reflect.Type) (Codec, error)

// Namer bridges between a reflect.Type and the wire name used in dynamic-
// type envelopes (spec: classToName / nameToClass).
type Namer interface {
	NameOf(t reflect.Type) string
	TypeOf(name string) (reflect.Type, bool)
}

// Options carries the subset of registry.Config that DynamicCodec needs for
// its envelope field names, without the codec package importing registry.
// Every other factory (ObjectCodec's failOnUnknownFields, MapCodec's
// keyField/valueField, and so on) takes its own config directly as a plain
// parameter instead, since each only ever needs one or two of
// registry.Config's fields — Options exists solely for DynamicCodec, which
// needs both envelope field names (TypeField and ValueField).
type Options struct {
	TypeField  string
	ValueField string
}

// CodecFunc adapts a pair of plain functions to the Codec interface.
type CodecFunc struct {
	EncodeFunc func(w format.Writer, v reflect.Value) error
	DecodeFunc func(r format.Reader) (reflect.Value, error)
}

func (f CodecFunc) Encode(w format.Writer, v reflect.Value) error { return f.EncodeFunc(w, v) }
func (f CodecFunc) Decode(r format.Reader) (reflect.Value, error) { return f.DecodeFunc(r) }
