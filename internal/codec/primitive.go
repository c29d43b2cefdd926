package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
	"github.com/gocodec/gocodec/typeinfo"
)

// PrimitiveCodec returns the null-safe leaf codec for one of the eight
// primitive shapes (spec §4.C). Primitives cannot be null; the decode side
// never checks for EventNull.
func PrimitiveCodec(p typeinfo.Primitive, goType reflect.Type) Codec {
	switch p {
	case typeinfo.PrimBool:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteBool(v.Bool()) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				b, err := r.ReadBool()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(b).Convert(goType), nil
			},
		}
	case typeinfo.PrimByte:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteByte(byte(v.Uint())) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				b, err := r.ReadByte()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(b).Convert(goType), nil
			},
		}
	case typeinfo.PrimChar:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteChar(rune(v.Int())) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				c, err := r.ReadChar()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedScalar, r.Location(), err)
				}
				return reflect.ValueOf(int32(c)).Convert(goType), nil
			},
		}
	case typeinfo.PrimShort:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteShort(int16(v.Int())) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				s, err := r.ReadShort()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(s).Convert(goType), nil
			},
		}
	case typeinfo.PrimInt:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteInt(int32(v.Int())) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				i, err := r.ReadInt()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(i).Convert(goType), nil
			},
		}
	case typeinfo.PrimLong:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteLong(v.Int()) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				l, err := r.ReadLong()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(l).Convert(goType), nil
			},
		}
	case typeinfo.PrimFloat:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteFloat(float32(v.Float())) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				f, err := r.ReadFloat()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(f).Convert(goType), nil
			},
		}
	case typeinfo.PrimDouble:
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteDouble(v.Float()) },
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				d, err := r.ReadDouble()
				if err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return reflect.ValueOf(d).Convert(goType), nil
			},
		}
	default:
		panic("gocodec: unsupported primitive kind")
	}
}

// StringCodec is the built-in leaf codec for string-kinded types. It
// neither writes nor reads null: Go's string zero value (empty string)
// cannot be distinguished from "field absent" at this layer, so null
// handling happens at the pointer/interface level instead, where the
// registry wraps codecs in NullableCodec or DynamicCodec — see DESIGN.md.
func StringCodec(goType reflect.Type) Codec {
	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error { return w.WriteString(v.String()) },
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			s, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			return reflect.ValueOf(s).Convert(goType), nil
		},
	}
}
