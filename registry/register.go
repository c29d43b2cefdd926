package registry

import (
	"reflect"

	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/internal/codec"
)

// RegisterCodec installs a caller-supplied Codec under t, overriding any
// synthesised codec. Per spec §4.I, an explicit registration always wins:
// it may be called before or after t has been used (if called after, any
// codec embedding a *already-resolved* forwarding reference to the old
// synthesised codec keeps using it — see DESIGN.md).
func (c *Core) RegisterCodec(t reflect.Type, cd codec.Codec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codecs[t] = cd
}

// RegisterTypeConstructor overrides the default constructor for t (spec
// §4.I). The collection, map and object codecs consult the constructor
// table each time they decode a value of t, so a registration takes effect
// on the next decode.
func (c *Core) RegisterTypeConstructor(t reflect.Type, ctor func() (reflect.Value, error)) {
	c.ctorMu.Lock()
	defer c.ctorMu.Unlock()
	c.ctors[t] = ctor
}

// RegisterStringProxyCodec registers a Codec for t that round-trips
// through a string representation (spec §4.I: "sugar for a codec that
// round-trips through a string").
func (c *Core) RegisterStringProxyCodec(t reflect.Type, toString func(reflect.Value) string, fromString func(string) (reflect.Value, error)) {
	c.RegisterCodec(t, codec.CodecFunc{
		EncodeFunc: func(w format.Writer, v reflect.Value) error {
			return w.WriteString(toString(v))
		},
		DecodeFunc: func(r format.Reader) (reflect.Value, error) {
			s, err := r.ReadString()
			if err != nil {
				return reflect.Value{}, err
			}
			return fromString(s)
		},
	})
}

// RegisterEnum declares the ordered constant names for an enum-shaped type,
// forwarding to the oracle (see typeinfo.ReflectOracle.RegisterEnum).
func (c *Core) RegisterEnum(t reflect.Type, names []string) {
	c.oracle.RegisterEnum(t, names)
}
