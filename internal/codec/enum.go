package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
)

// EnumCodec builds the codec for KindEnum (spec §4.D): encodes as the
// constant's name string; decode looks the name up in the descriptor
// (case-sensitive, exact match). Unknown name -> UnknownEnumConstant.
func EnumCodec(enumType reflect.Type, names []string) Codec {
	indexOf := make(map[string]int64, len(names))
	for i, n := range names {
		indexOf[n] = int64(i)
	}

	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			ord := v.Int()
			if ord < 0 || int(ord) >= len(names) {
				return gcerr.New(gcerr.UnknownEnumConstant, "ordinal %d out of range for %s", ord, enumType)
			}
			return w.WriteString(names[ord])
		},
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			name, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			ord, ok := indexOf[name]
			if !ok {
				return reflect.Value{}, gcerr.New(gcerr.UnknownEnumConstant, "%q is not a constant of %s", name, enumType)
			}
			return reflect.ValueOf(ord).Convert(enumType), nil
		},
	}
}
