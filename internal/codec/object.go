package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
	"github.com/gocodec/gocodec/typeinfo"
)

// field pairs a FieldDescriptor with its resolved sub-codec, chosen once at
// synthesis time via the registry's Lookup (spec §4.E: "chosen by shape of
// the field's declared type... recursive lookup").
type field struct {
	typeinfo.FieldDescriptor
	codec Codec
}

// ObjectCodec builds the composite codec for KindObject (spec §4.E).
// newEmpty constructs the decode accumulator (a zero-valued, addressable
// struct); failOnUnknownFields controls the tolerant-decoding policy of
// spec §7.
func ObjectCodec(structType reflect.Type, descFields []typeinfo.FieldDescriptor, lookup Lookup, newEmpty func() reflect.Value, failOnUnknownFields bool) (Codec, error) {
	fields := make([]field, len(descFields))
	byName := make(map[string]int, len(descFields))
	for i, fd := range descFields {
		c, err := lookup(fd.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = field{FieldDescriptor: fd, codec: c}
		byName[fd.Name] = i
	}

	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			if err := w.StartObject(); err != nil {
				return err
			}
			for _, f := range fields {
				if err := w.WriteField(f.Name); err != nil {
					return err
				}
				fv := v.FieldByIndex(f.Index)
				if err := f.codec.Encode(w, fv); err != nil {
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
				idx, ok := byName[name]
				if !ok {
					if failOnUnknownFields {
						return reflect.Value{}, gcerr.New(gcerr.StructuralMismatch, "unknown field %q for %s", name, structType)
					}
					if err := r.SkipNode(); err != nil {
						return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
					}
					continue
				}
				f := fields[idx]
				fv, err := f.codec.Decode(r)
				if err != nil {
					return reflect.Value{}, err
				}
				target := out.FieldByIndex(f.Index)
				if !target.CanSet() {
					return reflect.Value{}, gcerr.New(gcerr.StructuralMismatch, "field %q of %s is not settable", name, structType)
				}
				target.Set(fv)
			}
			if err := r.EndObject(); err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			return out, nil
		},
	}, nil
}
