// Package gocodec is the public façade of a generic, format-pluggable
// object serialization engine (spec §1, §4.H): callers declare a static
// type when encoding or decoding, and the engine bridges to the value's
// actual dynamic type by embedding a discriminator only when the two
// differ.
//
// A Core is a single, independent codec-core instance (spec §9: "the
// registry is therefore per codec-core instance, not process-wide").
// Construct one with New, register any custom codecs/enums/proxies before
// first use, then call Encode/Decode (or the generic Encode[T]/Decode[T]
// helpers) against any format.Writer/format.Reader implementation.
package gocodec

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/gcerr"
	"github.com/gocodec/gocodec/internal/codec"
	"github.com/gocodec/gocodec/registry"
	"github.com/gocodec/gocodec/typeinfo"
)

// Codec is the pair of operations a custom codec must implement to be
// installed via Core.RegisterCodec (spec §3, §4.I). It is a type alias for
// the core's internal Codec interface, so any concrete type satisfying it
// is usable directly — see internal/codec.Codec.
type Codec = codec.Codec

// Char is the named type to use for struct fields that want spec "char"
// semantics (a single code point, encoded as a one-rune string) instead of
// a plain int32, which maps to the "int" primitive.
type Char = typeinfo.Char

// Option configures a Core at construction (spec §6 Config table).
type Option = registry.Option

var (
	WithTypeField           = registry.WithTypeField
	WithKeyField            = registry.WithKeyField
	WithValueField          = registry.WithValueField
	WithFailOnUnknownFields = registry.WithFailOnUnknownFields
	WithMaxParserLookahead  = registry.WithMaxParserLookahead
	WithLogger              = registry.WithLogger
)

// Core is one independent serialization engine instance.
type Core struct {
	reg *registry.Core
}

// New constructs a Core with its own registry, type-proxy table,
// constructor table, and config.
func New(opts ...Option) *Core {
	return &Core{reg: registry.New(typeinfo.NewReflectOracle(), opts...)}
}

// RegisterType declares the wire name used for t's dynamic-type
// discriminator (spec §3 classToName/nameToClass). Every concrete type
// that may appear as the dynamic type behind an interface-kinded field
// must be registered before it is first encoded, or before any envelope
// naming it is decoded.
func (c *Core) RegisterType(sample interface{}, name string) {
	c.reg.RegisterType(reflect.TypeOf(sample), name)
}

// RegisterTypeProxy makes concrete the default implementation of the
// interface type iface (spec §3 TypeProxyTable, §4.I): a value of that
// dynamic type is encoded without an envelope, and un-enveloped input
// decodes as concrete. Pass a typed nil pointer to the interface and a
// value of the concrete type, e.g.:
//
//	c.RegisterTypeProxy((*Shape)(nil), Circle{})
func (c *Core) RegisterTypeProxy(iface, concrete interface{}) {
	c.reg.RegisterTypeProxy(elemType(iface), valueType(concrete))
}

// RegisterCodec installs a caller-supplied Codec for sample's type,
// overriding any synthesised codec (spec §4.I).
func (c *Core) RegisterCodec(sample interface{}, cd Codec) {
	c.reg.RegisterCodec(valueType(sample), cd)
}

// RegisterStringProxyCodec registers a codec for sample's type that
// round-trips through a string (spec §4.I).
func (c *Core) RegisterStringProxyCodec(sample interface{}, toString func(reflect.Value) string, fromString func(string) (reflect.Value, error)) {
	c.reg.RegisterStringProxyCodec(valueType(sample), toString, fromString)
}

// RegisterTypeConstructor overrides the default constructor for sample's
// type (spec §4.I).
func (c *Core) RegisterTypeConstructor(sample interface{}, ctor func() (reflect.Value, error)) {
	c.reg.RegisterTypeConstructor(valueType(sample), ctor)
}

// RegisterEnum declares the ordered constant names for an enum-shaped
// type, which Go reflection cannot otherwise recover (spec §3).
func (c *Core) RegisterEnum(sample interface{}, names []string) {
	c.reg.RegisterEnum(valueType(sample), names)
}

// Encode writes value, declared under staticType, to w (spec §4.H).
// If value is nil (or a nil pointer/interface/map/slice), the format's
// null representation is emitted regardless of static type, bypassing the
// resolved codec's own null handling.
func (c *Core) Encode(staticType reflect.Type, value interface{}, w format.Writer) error {
	cd, err := c.reg.Lookup(staticType)
	if err != nil {
		return err
	}

	holder := reflect.New(staticType).Elem()
	if value != nil {
		rv := reflect.ValueOf(value)
		if staticType.Kind() == reflect.Interface {
			if !rv.Type().Implements(staticType) {
				return gcerr.New(gcerr.StructuralMismatch, "%s does not implement static type %s", rv.Type(), staticType)
			}
		} else if rv.Type() != staticType {
			if !rv.Type().ConvertibleTo(staticType) {
				return gcerr.New(gcerr.StructuralMismatch, "%s is not assignable to static type %s", rv.Type(), staticType)
			}
			rv = rv.Convert(staticType)
		}
		holder.Set(rv)
	}

	if isNilish(holder) {
		return w.WriteNull()
	}
	return cd.Encode(w, holder)
}

// Decode reads a value declared under staticType from r (spec §4.H).
func (c *Core) Decode(staticType reflect.Type, r format.Reader) (interface{}, error) {
	cd, err := c.reg.Lookup(staticType)
	if err != nil {
		return nil, err
	}
	rv, err := cd.Decode(r)
	if err != nil {
		return nil, err
	}
	if !rv.IsValid() {
		return nil, nil
	}
	return rv.Interface(), nil
}

func isNilish(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

func valueType(sample interface{}) reflect.Type {
	if t, ok := sample.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(sample)
}

// elemType supports passing a typed nil pointer, e.g. (*Shape)(nil), to
// name an interface type that has no zero value of its own.
func elemType(sample interface{}) reflect.Type {
	t := valueType(sample)
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// Encode is a generic convenience wrapper over Core.Encode that infers the
// static type from T.
func Encode[T any](c *Core, value T, w format.Writer) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return c.Encode(t, value, w)
}

// Decode is a generic convenience wrapper over Core.Decode that infers the
// static type from T.
func Decode[T any](c *Core, r format.Reader) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := c.Decode(t, r)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}
