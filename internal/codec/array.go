package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
)

// ArrayCodec builds the codec for KindPrimitiveArray and KindObjectArray:
// encoded as an array of the element codec; length is not pre-declared,
// decode reads until EndArray (spec §4.C). sliceType may be a reflect.Slice
// or reflect.Array; for a fixed-size Go array, decode errors if the wire
// array's length does not match sliceType.Len().
func ArrayCodec(sliceType reflect.Type, elem Codec) Codec {
	isArray := sliceType.Kind() == reflect.Array

	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			if err := w.StartArray(); err != nil {
				return err
			}
			for i := 0; i < v.Len(); i++ {
				if err := elem.Encode(w, v.Index(i)); err != nil {
					return err
				}
			}
			return w.EndArray()
		},
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			if err := r.StartArray(); err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			var elems []reflect.Value
			for r.NotEOF() {
				ev, err := elem.Decode(r)
				if err != nil {
					return reflect.Value{}, err
				}
				elems = append(elems, ev)
			}
			if err := r.EndArray(); err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}

			if isArray {
				out := reflect.New(sliceType).Elem()
				if len(elems) != sliceType.Len() {
					return reflect.Value{}, gcerr.New(gcerr.StructuralMismatch,
						"array %s expects %d elements, wire value has %d", sliceType, sliceType.Len(), len(elems))
				}
				for i, ev := range elems {
					out.Index(i).Set(ev)
				}
				return out, nil
			}

			out := reflect.MakeSlice(sliceType, len(elems), len(elems))
			for i, ev := range elems {
				out.Index(i).Set(ev)
			}
			return out, nil
		},
	}
}
