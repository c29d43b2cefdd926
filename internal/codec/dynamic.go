package codec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
)

// DynamicCodec wraps the codec for an interface-kinded static type S,
// adding the {typeField, valueField} envelope whenever the concrete value's
// dynamic type differs from S (spec §4.F).
//
// In Go, only an interface-kinded slot can hold a value whose dynamic type
// differs from its static type — a *Struct field always holds exactly
// *Struct, never a "subtype" pointer, since Go has no struct inheritance.
// DynamicCodec is therefore only ever constructed for reflect.Interface
// fields/elements; staticProxy is the TypeProxyTable's resolution of S
// (registry.RegisterTypeProxy), used for the case dyn(v) == staticProxy: no
// envelope is needed because the receiving end already knows what concrete
// type to build (spec §3: "used e.g. for interfaces resolved to a concrete
// implementation").
func DynamicCodec(staticIface reflect.Type, staticProxy reflect.Type, lookup Lookup, namer Namer, opts *Options) Codec {
	var proxyCodec Codec // lazily resolved; may remain nil if no proxy registered

	resolveProxyCodec := func() (Codec, error) {
		if staticProxy == nil {
			return nil, gcerr.New(gcerr.MissingConstructor,
				"no concrete type registered for interface %s (register a type proxy or supply an envelope)", staticIface)
		}
		if proxyCodec == nil {
			c, err := lookup(staticProxy)
			if err != nil {
				return nil, err
			}
			proxyCodec = c
		}
		return proxyCodec, nil
	}

	return CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			if v.Kind() != reflect.Interface {
				return gcerr.New(gcerr.StructuralMismatch, "DynamicCodec used on non-interface value of kind %s", v.Kind())
			}
			if v.IsNil() {
				return w.WriteNull()
			}
			dyn := v.Elem()
			dynType := dyn.Type()

			if staticProxy != nil && dynType == staticProxy {
				c, err := resolveProxyCodec()
				if err != nil {
					return err
				}
				return c.Encode(w, dyn)
			}

			dc, err := lookup(dynType)
			if err != nil {
				return err
			}
			if err := w.StartObject(); err != nil {
				return err
			}
			if err := w.WriteField(opts.TypeField); err != nil {
				return err
			}
			if err := w.WriteString(namer.NameOf(dynType)); err != nil {
				return err
			}
			if err := w.WriteField(opts.ValueField); err != nil {
				return err
			}
			if err := dc.Encode(w, dyn); err != nil {
				return err
			}
			return w.EndObject()
		},
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			p0, err := r.Peek(0)
			if err != nil {
				return reflect.Value{}, err
			}
			if p0.Type == format.EventNull {
				if err := r.ReadNull(); err != nil {
					return reflect.Value{}, err
				}
				return reflect.Zero(staticIface), nil
			}
			if p0.Type == format.EventStartObject {
				if isEnvelope, err := detectEnvelope(r, opts.TypeField, opts.ValueField); err != nil {
					return reflect.Value{}, err
				} else if isEnvelope {
					return decodeEnvelope(r, opts, lookup, namer, staticIface)
				}
			}
			c, err := resolveProxyCodec()
			if err != nil {
				return reflect.Value{}, err
			}
			val, err := c.Decode(r)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(staticIface).Elem()
			out.Set(val)
			return out, nil
		},
	}
}

// detectEnvelope implements the "exactly two fields, typeField and
// valueField, in either order" rule of spec §4.F using only the Peek(0..2)
// budget (spec §4.B, §9).
func detectEnvelope(r format.Reader, typeField, valueField string) (bool, error) {
	p1, err := r.Peek(1)
	if err != nil {
		return false, err
	}
	p2, err := r.Peek(2)
	if err != nil {
		return false, err
	}
	if p1.Type != format.EventFieldName || p2.Type != format.EventFieldName {
		return false, nil
	}
	if !p2.LastField {
		return false, nil
	}
	return (p1.Name == typeField && p2.Name == valueField) ||
		(p1.Name == valueField && p2.Name == typeField), nil
}

func decodeEnvelope(r format.Reader, opts *Options, lookup Lookup, namer Namer, staticIface reflect.Type) (reflect.Value, error) {
	if err := r.StartObject(); err != nil {
		return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
	}
	var typeName string
	var dynType reflect.Type
	var value reflect.Value
	for i := 0; i < 2; i++ {
		name, err := r.ReadFieldName(opts.TypeField, opts.ValueField)
		if err != nil {
			return reflect.Value{}, gcerr.Wrap(gcerr.StructuralMismatch, r.Location(), err)
		}
		switch name {
		case opts.TypeField:
			typeName, err = r.ReadString()
			if err != nil {
				return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
			}
			var ok bool
			dynType, ok = namer.TypeOf(typeName)
			if !ok {
				return reflect.Value{}, gcerr.New(gcerr.UnknownType, "no registered type for discriminator %q", typeName)
			}
		case opts.ValueField:
			if dynType == nil {
				// @value appeared before @type on the wire. detectEnvelope
				// accepts either order, but the value's events are not
				// buffered and cannot be decoded before the dynamic type is
				// known, so this ordering is rejected.
				return reflect.Value{}, gcerr.New(gcerr.StructuralMismatch,
					"%q field must follow %q on decode", opts.ValueField, opts.TypeField)
			}
			dc, err := lookup(dynType)
			if err != nil {
				return reflect.Value{}, err
			}
			value, err = dc.Decode(r)
			if err != nil {
				return reflect.Value{}, err
			}
		}
	}
	if err := r.EndObject(); err != nil {
		return reflect.Value{}, gcerr.Wrap(gcerr.MalformedInput, r.Location(), err)
	}
	out := reflect.New(staticIface).Elem()
	out.Set(value)
	return out, nil
}
