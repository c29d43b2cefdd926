package codec

import (
	"reflect"
	"sync/atomic"

	"github.com/gocodec/gocodec/format"
)

// Ref is a forwarding reference (spec §4.G / §9): a late-bound indirection
// stored in the registry while a type's codec is being synthesised, so that
// a recursive lookup for the same or a mutually-dependent type observes Ref
// instead of deadlocking or recursing forever. It is resolved exactly once;
// resolution publishes via atomic.Value so concurrent readers never see a
// half-initialised cell (release-acquire boundary, spec §5).
type Ref struct {
	box atomic.Value // holds codecBox
}

type codecBox struct{ c Codec }

// NewRef returns an unresolved forwarding reference.
func NewRef() *Ref { return &Ref{} }

// Resolve sets the reference's target. Must be called exactly once.
func (r *Ref) Resolve(c Codec) {
	r.box.Store(codecBox{c: c})
}

// Resolved reports whether Resolve has been called.
func (r *Ref) Resolved() bool {
	return r.box.Load() != nil
}

func (r *Ref) inner() Codec {
	v := r.box.Load()
	if v == nil {
		panic("gocodec: forwarding reference dereferenced before resolution")
	}
	return v.(codecBox).c
}

// Encode implements Codec by forwarding to the resolved target.
func (r *Ref) Encode(w format.Writer, v reflect.Value) error { return r.inner().Encode(w, v) }

// Decode implements Codec by forwarding to the resolved target.
func (r *Ref) Decode(rd format.Reader) (reflect.Value, error) { return r.inner().Decode(rd) }
