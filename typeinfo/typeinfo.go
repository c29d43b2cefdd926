// Package typeinfo implements the type oracle (spec §3): the structural
// metadata the codec core needs to synthesise codecs for user types.
//
// TypeKey is realized directly as reflect.Type: Go's reflect.Type already
// gives structural, comparable identity for simple types and for
// parameterised container types ([]T, map[K]V, [N]T), so no hand-rolled
// tuple key is needed (see DESIGN.md).
package typeinfo

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeKey is the registry's lookup key.
type TypeKey = reflect.Type

// Kind classifies the structural shape of a type, mirroring spec §3's
// TypeDescriptor.kind enumeration.
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindPrimitiveArray
	KindObjectArray
	KindEnum
	KindCollection
	KindMap
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindPrimitiveArray:
		return "primitive-array"
	case KindObjectArray:
		return "object-array"
	case KindEnum:
		return "enum"
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Primitive identifies one of the eight primitive shapes.
type Primitive int

const (
	PrimInvalid Primitive = iota
	PrimBool
	PrimByte
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

func (p Primitive) String() string {
	switch p {
	case PrimBool:
		return "bool"
	case PrimByte:
		return "byte"
	case PrimChar:
		return "char"
	case PrimShort:
		return "short"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	default:
		return "invalid"
	}
}

// Char is the named type user code uses when it wants spec char semantics
// (a single code point, encoded as a one-rune string) instead of a plain
// int32 (which maps to PrimInt). Go has no distinct rune-vs-int32 type at
// the reflect level, so char opts in explicitly — see DESIGN.md.
type Char int32

var charType = reflect.TypeOf(Char(0))

// FieldDescriptor describes one field of an object type, in declaration
// order (embedded/"superclass" fields preceding the embedding struct's own
// fields, per spec §3).
type FieldDescriptor struct {
	Name    string       // wire name, after collision disambiguation
	Type    reflect.Type // declared field type
	Index   []int        // reflect.Value.FieldByIndex path
	OmitNil bool         // true for pointer/interface fields: nil -> omit/null
}

// TypeDescriptor is the oracle's structural description of a type.
type TypeDescriptor struct {
	Kind Kind
	Type reflect.Type

	Prim Primitive // valid when Kind is KindPrimitive or KindPrimitiveArray

	Elem *TypeDescriptor // KindPrimitiveArray, KindObjectArray, KindCollection

	Key   *TypeDescriptor // KindMap
	Value *TypeDescriptor // KindMap

	EnumNames []string // KindEnum, ordered constant names

	Fields []FieldDescriptor // KindObject, declaration order

	// New returns a fresh, empty value of Type (addressable), used by the
	// object/collection/map codecs as the decode accumulator.
	New func() reflect.Value
}

// Oracle is the structural-metadata source the registry consults to
// synthesise codecs. Describe must be pure and may cache internally; once a
// type has been described, subsequent calls for the same type must return
// an equivalent descriptor (spec §3 invariant).
type Oracle interface {
	Describe(t reflect.Type) (*TypeDescriptor, error)
}

// ReflectOracle is the default Oracle, deriving TypeDescriptor from
// reflect.Type. It caches each type's descriptor after first computation,
// realizing the "first view is authoritative" invariant.
type ReflectOracle struct {
	mu    sync.Mutex
	cache map[reflect.Type]*TypeDescriptor

	enumsMu sync.RWMutex
	enums   map[reflect.Type][]string
}

// NewReflectOracle constructs an empty ReflectOracle.
func NewReflectOracle() *ReflectOracle {
	return &ReflectOracle{
		cache: make(map[reflect.Type]*TypeDescriptor),
		enums: make(map[reflect.Type][]string),
	}
}

// RegisterEnum declares the ordered constant names for an enum-shaped type
// (any integer-kinded named type). Go reflection cannot recover constant
// names from an iota-based type at runtime, so the host must supply them
// explicitly before the enum's first use (spec §9 design note: "a derive
// mechanism... where the user declares fields explicitly").
func (o *ReflectOracle) RegisterEnum(t reflect.Type, names []string) {
	o.enumsMu.Lock()
	defer o.enumsMu.Unlock()
	cp := make([]string, len(names))
	copy(cp, names)
	o.enums[t] = cp
}

func (o *ReflectOracle) enumNames(t reflect.Type) ([]string, bool) {
	o.enumsMu.RLock()
	defer o.enumsMu.RUnlock()
	names, ok := o.enums[t]
	return names, ok
}

// Describe implements Oracle.
func (o *ReflectOracle) Describe(t reflect.Type) (*TypeDescriptor, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if d, ok := o.cache[t]; ok {
		return d, nil
	}
	d, err := o.describe(t)
	if err != nil {
		return nil, err
	}
	o.cache[t] = d
	return d, nil
}

func (o *ReflectOracle) describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == charType {
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimChar}, nil
	}
	if names, ok := o.enumNames(t); ok {
		return &TypeDescriptor{Kind: KindEnum, Type: t, EnumNames: names}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimBool}, nil
	case reflect.Uint8:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimByte}, nil
	case reflect.Int16:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimShort}, nil
	case reflect.Int32:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimInt}, nil
	case reflect.Int, reflect.Int64:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimLong}, nil
	case reflect.Float32:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimFloat}, nil
	case reflect.Float64:
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimDouble}, nil
	case reflect.String:
		// Strings are reference-typed leaves; not one of the eight
		// primitives, handled by a dedicated nullable leaf codec (see
		// internal/codec/primitive.go), but still reported here so the
		// registry can pick the right factory without a second switch.
		return &TypeDescriptor{Kind: KindPrimitive, Type: t, Prim: PrimInvalid}, nil

	case reflect.Array:
		elemDesc, err := o.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		kind := KindObjectArray
		prim := PrimInvalid
		if elemDesc.Kind == KindPrimitive && elemDesc.Prim != PrimInvalid {
			kind = KindPrimitiveArray
			prim = elemDesc.Prim
		}
		return &TypeDescriptor{Kind: kind, Type: t, Prim: prim, Elem: elemDesc}, nil

	case reflect.Slice:
		elemDesc, err := o.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		if elemDesc.Kind == KindPrimitive && elemDesc.Prim != PrimInvalid {
			return &TypeDescriptor{Kind: KindPrimitiveArray, Type: t, Prim: elemDesc.Prim, Elem: elemDesc}, nil
		}
		return &TypeDescriptor{
			Kind: KindCollection,
			Type: t,
			Elem: elemDesc,
			New:  func() reflect.Value { return reflect.MakeSlice(t, 0, 0) },
		}, nil

	case reflect.Map:
		keyDesc, err := o.describe(t.Key())
		if err != nil {
			return nil, err
		}
		valDesc, err := o.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		return &TypeDescriptor{
			Kind:  KindMap,
			Type:  t,
			Key:   keyDesc,
			Value: valDesc,
			New:   func() reflect.Value { return reflect.MakeMap(t) },
		}, nil

	case reflect.Ptr:
		elemDesc, err := o.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		// A pointer to a described type reuses the element descriptor's
		// shape; the nullable wrapping (internal/codec) handles the
		// indirection.
		cp := *elemDesc
		cp.Type = t
		return &cp, nil

	case reflect.Struct:
		fields, err := structFields(t, nil, make(map[string]int))
		if err != nil {
			return nil, err
		}
		return &TypeDescriptor{
			Kind:   KindObject,
			Type:   t,
			Fields: fields,
			New:    func() reflect.Value { return reflect.New(t).Elem() },
		}, nil

	case reflect.Interface:
		// Interface-typed slots are resolved entirely by the dynamic-type
		// dispatcher at encode/decode time; the descriptor only needs to
		// carry the static type for name lookups.
		return &TypeDescriptor{Kind: KindObject, Type: t, New: func() reflect.Value {
			return reflect.New(t).Elem()
		}}, nil

	default:
		return nil, fmt.Errorf("typeinfo: unsupported kind %s for type %s", t.Kind(), t)
	}
}

// structFields walks t's fields in declaration order, promoting embedded
// struct fields ahead of t's own fields (spec §3: "superclass fields
// preceding subclass fields"), disambiguating name collisions by
// prefixing "*" once per collision.
func structFields(t reflect.Type, indexPrefix []int, seen map[string]int) ([]FieldDescriptor, error) {
	var out []FieldDescriptor

	// First pass: embedded struct fields contribute their own fields first,
	// as if promoted from a superclass.
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.PkgPath == "" {
			idx := append(append([]int{}, indexPrefix...), i)
			embedded, err := structFields(sf.Type, idx, seen)
			if err != nil {
				return nil, err
			}
			out = append(out, embedded...)
		}
	}

	// Second pass: this struct's own (non-embedded-struct) fields.
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			continue // already promoted above
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("codec"); ok && tag != "" && tag != "-" {
			name = tag
		}
		for seen[name] > 0 {
			name = "*" + name
		}
		seen[name]++

		idx := append(append([]int{}, indexPrefix...), i)
		out = append(out, FieldDescriptor{
			Name:    name,
			Type:    sf.Type,
			Index:   idx,
			OmitNil: sf.Type.Kind() == reflect.Ptr || sf.Type.Kind() == reflect.Interface,
		})
	}
	return out, nil
}

// NameOf returns the default canonical name for a type: its package path
// joined with its local name. Unnamed types (slices, maps, pointers) fall
// back to t.String(). Used only by the dynamic-type dispatcher to build
// discriminator strings; registry lookups use reflect.Type directly.
func NameOf(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
