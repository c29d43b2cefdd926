package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
)

// CollectionCodec builds the codec for KindCollection (spec §4.D): encoded
// as an array of the element codec, preserving iteration order. Decode
// constructs an empty collection via newEmpty, then appends each decoded
// element in wire order.
func CollectionCodec(newEmpty func() reflect.Value, elem Codec) Codec {
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
			out := newEmpty()
			for r.NotEOF() {
				ev, err := elem.Decode(r)
				if err != nil {
					return reflect.Value{}, err
				}
				out = reflect.Append(out, ev)
			}
			if err := r.EndArray(); err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			return out, nil
		},
	}
}
