package codec

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
)

// MapCodec builds the codec for KindMap (spec §4.D). stringKeyed selects
// between the two wire shapes:
//
//   - string keys:     object { key: valueCodec(v), ... }
//   - non-string keys: array of 2-field objects [ {"@key":K,"@value":V}, ... ]
//
// Go maps do not preserve insertion order (unlike, say, a Java
// LinkedHashMap), so — exactly as encoding/json does for map keys — both
// shapes encode keys in a deterministic sorted order rather than the
// undefined native iteration order; see DESIGN.md.
func MapCodec(mapType reflect.Type, stringKeyed bool, keyField, valueField string, newEmpty func() reflect.Value, keyCodec, valueCodec Codec) Codec {
	keyType := mapType.Key()

	if stringKeyed {
		return CodecFunc{
			EncodeFunc: func(w format.Writer, v reflect.Value) error {
				if err := w.StartObject(); err != nil {
					return err
				}
				keys := sortedKeys(v)
				for _, k := range keys {
					if err := w.WriteField(k.String()); err != nil {
						return err
					}
					if err := valueCodec.Encode(w, v.MapIndex(k)); err != nil {
						return err
					}
				}
				return w.EndObject()
			},
			DecodeFunc: func(r format.Reader) (reflect.Value, error) {
				if err := r.StartObject(); err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				out := newEmpty()
				for r.NotEOF() {
					name, err := r.ReadFieldName()
					if err != nil {
						return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
					}
					val, err := valueCodec.Decode(r)
					if err != nil {
						return reflect.Value{}, err
					}
					out.SetMapIndex(reflect.ValueOf(name).Convert(keyType), val)
				}
				if err := r.EndObject(); err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				return out, nil
			},
		}
	}

	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			if err := w.StartArray(); err != nil {
				return err
			}
			for _, k := range sortedKeys(v) {
				if err := w.StartObject(); err != nil {
					return err
				}
				if err := w.WriteField(keyField); err != nil {
					return err
				}
				if err := keyCodec.Encode(w, k); err != nil {
					return err
				}
				if err := w.WriteField(valueField); err != nil {
					return err
				}
				if err := valueCodec.Encode(w, v.MapIndex(k)); err != nil {
					return err
				}
				if err := w.EndObject(); err != nil {
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
				if err := r.StartObject(); err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				var k, val reflect.Value
				for r.NotEOF() {
					name, err := r.ReadFieldName(keyField, valueField)
					if err != nil {
						return reflect.Value{}, gcerr.Wrap(gcerr.StructuralMismatch, r.Location(), err)
					}
					switch name {
					case keyField:
						k, err = keyCodec.Decode(r)
					case valueField:
						val, err = valueCodec.Decode(r)
					}
					if err != nil {
						return reflect.Value{}, err
					}
				}
				if err := r.EndObject(); err != nil {
					return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
				}
				if !k.IsValid() || !val.IsValid() {
					return reflect.Value{}, gcerr.New(gcerr.StructuralMismatch,
						"map entry missing %q or %q field", keyField, valueField)
				}
				out.SetMapIndex(k, val)
			}
			if err := r.EndArray(); err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			return out, nil
		},
	}
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}
