package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
)

// NullableCodec wraps inner for a pointer-kinded field: nil encodes as the
// format's null representation and decodes back to nil; a non-nil value is
// delegated to inner against the pointer's element. This is the "nullable
// codec" layer of spec §3 applied to the one Go slot shape that actually
// carries a nil/non-nil distinction distinct from a zero value: pointers
// (interfaces are handled by DynamicCodec instead, since only interfaces
// carry a dynamic type that can diverge from the static type in Go).
func NullableCodec(ptrType reflect.Type, inner Codec) Codec {
	elemType := ptrType.Elem()
	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			if v.IsNil() {
				return w.WriteNull()
			}
			return inner.Encode(w, v.Elem())
		},
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			p, err := r.Peek(0)
			if err != nil {
				return reflect.Value{}, err
			}
			if p.Type == format.EventNull {
				if err := r.ReadNull(); err != nil {
					return reflect.Value{}, err
				}
				return reflect.Zero(ptrType), nil
			}
			ev, err := inner.Decode(r)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(elemType)
			out.Elem().Set(ev)
			return out, nil
		},
	}
}
