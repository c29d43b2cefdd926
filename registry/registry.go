// Package registry implements the codec registry and lazy-forwarding
// lookup algorithm of spec §4.G, plus the public constructor/registration
// surface of spec §4.I. It is the one package that is allowed to import
// both typeinfo (the oracle) and internal/codec (the codec families),
// wiring them together behind the Lookup closure codec factories expect.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gocodec/gocodec/internal/codec"
	"github.com/gocodec/gocodec/typeinfo"
)

// Core is a single, independent codec-core instance: its own registry,
// type-proxy table, constructor table, and config (spec §9 design note:
// "the registry is therefore per codec-core instance, not process-wide").
type Core struct {
	oracle *typeinfo.ReflectOracle
	cfg    Config

	mu     sync.RWMutex
	codecs map[reflect.Type]codec.Codec

	// synthMu is the "single registry-wide monitor" of spec §5, covering
	// only the presence-check + forwarding-insert step; the expensive
	// synthesis work itself runs outside this lock.
	synthMu sync.Mutex

	proxyMu sync.RWMutex
	proxies map[reflect.Type]reflect.Type

	ctorMu sync.RWMutex
	ctors  map[reflect.Type]func() (reflect.Value, error)

	nameMu      sync.RWMutex
	classToName map[reflect.Type]string
	nameToClass map[string]reflect.Type
}

// New constructs an independent Core with its own registry and config.
func New(oracle *typeinfo.ReflectOracle, opts ...Option) *Core {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Core{
		oracle:      oracle,
		cfg:         cfg,
		codecs:      make(map[reflect.Type]codec.Codec),
		proxies:     make(map[reflect.Type]reflect.Type),
		ctors:       make(map[reflect.Type]func() (reflect.Value, error)),
		classToName: make(map[reflect.Type]string),
		nameToClass: make(map[string]reflect.Type),
	}
}

// Config returns the core's effective configuration.
func (c *Core) Config() Config { return c.cfg }

// --- spec §4.A: type identity & name mapping -------------------------------

// NameOf implements codec.Namer: the canonical wire name for a type,
// consulting the classToName override table before falling back to
// typeinfo.NameOf.
func (c *Core) NameOf(t reflect.Type) string {
	c.nameMu.RLock()
	name, ok := c.classToName[t]
	c.nameMu.RUnlock()
	if ok {
		return name
	}
	return typeinfo.NameOf(t)
}

// TypeOf implements codec.Namer: resolves a wire discriminator string back
// to a reflect.Type, consulting the nameToClass override table. Only types
// registered via RegisterType can be resolved this way; Lookup does not add
// entries to the table.
func (c *Core) TypeOf(name string) (reflect.Type, bool) {
	c.nameMu.RLock()
	defer c.nameMu.RUnlock()
	t, ok := c.nameToClass[name]
	return t, ok
}

// RegisterType records an explicit name<->type mapping, both for dynamic-
// envelope discriminators (TypeOf) and to override the default name a
// type's codec is given (NameOf). Register every concrete type that may
// appear as the dynamic type of an interface-kinded field before it is
// first encoded or any envelope referencing it is decoded.
func (c *Core) RegisterType(t reflect.Type, name string) {
	c.nameMu.Lock()
	defer c.nameMu.Unlock()
	c.classToName[t] = name
	c.nameToClass[name] = t
}

// RegisterTypeProxy routes lookups for t through proxyType (spec §4.A,
// §4.I): `lookup(T) = registry[proxy(name(T))]`, applied exactly once at
// lookup entry, not recursively. For an interface type t, Lookup keeps t
// itself and the DynamicCodec synthesised for t takes proxyType as its
// default concrete implementation: values of that dynamic type are encoded
// without an envelope, and un-enveloped input decodes as proxyType.
func (c *Core) RegisterTypeProxy(t, proxyType reflect.Type) {
	c.proxyMu.Lock()
	defer c.proxyMu.Unlock()
	c.proxies[t] = proxyType
}

func (c *Core) resolveProxy(t reflect.Type) reflect.Type {
	c.proxyMu.RLock()
	defer c.proxyMu.RUnlock()
	if p, ok := c.proxies[t]; ok {
		return p
	}
	return t
}

// --- spec §4.G: codec registry & lazy forwarding ---------------------------

// Lookup resolves (synthesising if necessary) the Codec for t, implementing
// the algorithm of spec §4.G:
//  1. fast path: lock-free-ish read (RLock) returns a cached codec.
//  2. slow path: acquire synthMu (the registry-wide monitor), re-check,
//     insert a forwarding Ref under the key, release synthMu.
//  3. synthesise outside any lock; recursive Lookup calls for the same or
//     dependent keys observe the Ref and return it immediately.
//  4. resolve the Ref and replace the registry entry with the real codec.
func (c *Core) Lookup(t reflect.Type) (codec.Codec, error) {
	// An interface type keeps its own key: its proxy is applied by the
	// DynamicCodec that synthesize builds for it.
	if t.Kind() != reflect.Interface {
		t = c.resolveProxy(t)
	}

	c.mu.RLock()
	cd, ok := c.codecs[t]
	c.mu.RUnlock()
	if ok {
		return cd, nil
	}

	c.synthMu.Lock()
	c.mu.RLock()
	cd, ok = c.codecs[t]
	c.mu.RUnlock()
	if ok {
		c.synthMu.Unlock()
		return cd, nil
	}
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debugw("gocodec: codec cache miss, synthesising", "type", t.String())
	}
	ref := codec.NewRef()
	c.mu.Lock()
	c.codecs[t] = ref
	c.mu.Unlock()
	c.synthMu.Unlock()

	built, err := c.synthesize(t)
	if err != nil {
		// Leave the forwarding ref unresolved but remove it from the
		// registry so a later call can retry instead of panicking on a
		// dangling Ref.
		c.mu.Lock()
		delete(c.codecs, t)
		c.mu.Unlock()
		if c.cfg.Logger != nil {
			c.cfg.Logger.Debugw("gocodec: codec synthesis failed", "type", t.String(), "error", err)
		}
		return nil, err
	}
	ref.Resolve(built)

	c.mu.Lock()
	c.codecs[t] = built
	c.mu.Unlock()
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debugw("gocodec: forwarding reference resolved", "type", t.String())
	}

	return built, nil
}

func (c *Core) options() *codec.Options {
	return &codec.Options{
		TypeField:  c.cfg.TypeField,
		ValueField: c.cfg.ValueField,
	}
}

func (c *Core) newValue(t reflect.Type) (reflect.Value, error) {
	c.ctorMu.RLock()
	ctor, ok := c.ctors[t]
	c.ctorMu.RUnlock()
	if ok {
		return ctor()
	}
	desc, err := c.oracle.Describe(t)
	if err != nil {
		return reflect.Value{}, err
	}
	if desc.New == nil {
		return reflect.Value{}, fmt.Errorf("gocodec: no constructor available for %s", t)
	}
	return desc.New(), nil
}

// synthesize builds a brand-new Codec for t. It is the one place that maps
// a reflect.Type's shape onto the codec families of internal/codec
// (components C–F).
func (c *Core) synthesize(t reflect.Type) (codec.Codec, error) {
	switch t.Kind() {
	case reflect.Ptr:
		inner, err := c.Lookup(t.Elem())
		if err != nil {
			return nil, err
		}
		return codec.NullableCodec(t, inner), nil

	case reflect.Interface:
		proxy := c.resolveProxy(t)
		if proxy == t {
			proxy = nil // no proxy registered; envelopes only
		}
		return codec.DynamicCodec(t, proxy, c.Lookup, c, c.options()), nil
	}

	desc, err := c.oracle.Describe(t)
	if err != nil {
		return nil, err
	}

	// newEmpty builds the decode accumulator, preferring a registered
	// constructor over the oracle's default.
	newEmpty := func() reflect.Value {
		v, err := c.newValue(t)
		if err != nil {
			return desc.New()
		}
		return v
	}

	switch desc.Kind {
	case typeinfo.KindPrimitive:
		if desc.Prim == typeinfo.PrimInvalid {
			return codec.StringCodec(t), nil
		}
		return codec.PrimitiveCodec(desc.Prim, t), nil

	case typeinfo.KindPrimitiveArray, typeinfo.KindObjectArray:
		elemCodec, err := c.Lookup(desc.Elem.Type)
		if err != nil {
			return nil, err
		}
		return codec.ArrayCodec(t, elemCodec), nil

	case typeinfo.KindCollection:
		elemCodec, err := c.Lookup(desc.Elem.Type)
		if err != nil {
			return nil, err
		}
		return codec.CollectionCodec(newEmpty, elemCodec), nil

	case typeinfo.KindMap:
		keyCodec, err := c.Lookup(desc.Key.Type)
		if err != nil {
			return nil, err
		}
		valCodec, err := c.Lookup(desc.Value.Type)
		if err != nil {
			return nil, err
		}
		stringKeyed := desc.Key.Type.Kind() == reflect.String
		return codec.MapCodec(t, stringKeyed, c.cfg.KeyField, c.cfg.ValueField, newEmpty, keyCodec, valCodec), nil

	case typeinfo.KindEnum:
		return codec.EnumCodec(t, desc.EnumNames), nil

	case typeinfo.KindObject:
		return codec.ObjectCodec(t, desc.Fields, c.Lookup, newEmpty, c.cfg.FailOnUnknownFields)

	default:
		return nil, fmt.Errorf("gocodec: cannot synthesise a codec for %s (kind %s)", t, desc.Kind)
	}
}

// Oracle exposes the core's type oracle, mainly so callers can
// RegisterEnum before first use.
func (c *Core) Oracle() *typeinfo.ReflectOracle { return c.oracle }
