package threadsafe

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrAbsentWrite is the panic value for writes through the zero Value. The
// zero Value is a readable absent container; like a nil map, it must be
// replaced by a constructed one before it can store anything.
var ErrAbsentWrite = errors.New("write through zero Value; construct with New or NewShared first")

// Sharer marks payload types whose copies alias the same underlying state,
// such as handles around a shared connection or registry. Containers over a
// Sharer payload never fork: mutation is already visible through every copy
// of the payload, so container-level copy-on-write could not provide the
// isolation that value semantics promises. The marker is consulted once, at
// construction, from the payload's static type.
type Sharer interface {
	SharedAcrossCopies()
}

// equaler is satisfied by payload types carrying their own equality, such as
// time.Time.
type equaler[T any] interface {
	Equal(T) bool
}

// Value is a handle on a guarded cell: a single value of type T behind a
// reader-writer lock, plus the bookkeeping that forks the cell when a Clone
// writes for the first time. The zero Value is the absent container: Get
// returns the zero T, IsZero reports true, and writes panic.
//
// Values are cheap to pass and store by value. Assignment aliases the same
// cell and lineage; Clone starts a new lineage.
type Value[T any] struct {
	h *handle[T]
}

// New returns a container holding initial with copy tracking enabled: a
// Clone of it diverges on the clone's first write. If T (or *T) declares the
// Sharer marker, tracking is disabled and New is equivalent to NewShared.
func New[T any](initial T) Value[T] {
	return Value[T]{h: newHandle(initial, sharedAcrossCopies[T]())}
}

// NewShared returns a container holding initial with copy tracking disabled:
// every Clone permanently shares the same cell, and a write through any
// handle is observed by all of them.
func NewShared[T any](initial T) Value[T] {
	return Value[T]{h: newHandle(initial, true)}
}

var sharerType = reflect.TypeOf((*Sharer)(nil)).Elem()

// sharedAcrossCopies reports whether T or *T declares the Sharer marker. The
// check is by static type, so an interface-typed T that embeds Sharer counts
// even before any concrete value is stored.
func sharedAcrossCopies[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.Implements(sharerType) || reflect.PointerTo(t).Implements(sharerType)
}

// Get returns a copy of the current value. It blocks only while a writer
// holds the cell. On the zero Value it returns the zero T.
func (v Value[T]) Get() T {
	if v.h == nil {
		var zero T
		return zero
	}
	return v.h.load()
}

// Set replaces the current value. If this handle was produced by Clone and
// has not written since, Set first forks the cell so the origin keeps its
// value. Set panics with ErrAbsentWrite on the zero Value.
func (v Value[T]) Set(x T) {
	if v.h == nil {
		panic(ErrAbsentWrite)
	}
	v.h.store(x)
}

// Update applies f to the current value and stores the result, all within
// one exclusive critical section, and returns the stored result. Concurrent
// Updates never lose increments the way a Get/Set pair can. f must not touch
// this container (the lock is held) and should be brief. A panic in f
// propagates with the lock released and the value unchanged.
func (v Value[T]) Update(f func(T) T) T {
	if v.h == nil {
		panic(ErrAbsentWrite)
	}
	_, next := v.h.commit(f)
	return next
}

// Swap stores x and returns the value it replaced, atomically with respect
// to other accesses of the cell.
func (v Value[T]) Swap(x T) T {
	if v.h == nil {
		panic(ErrAbsentWrite)
	}
	prev, _ := v.h.commit(func(T) T { return x })
	return prev
}

// Clone duplicates the container. The clone reads the shared cell until its
// own first write, which forks it onto fresh storage seeded with the written
// value; the original and any other clones are unaffected. For containers
// with tracking disabled the clone is a permanent alias. Cloning the zero
// Value yields the zero Value.
func (v Value[T]) Clone() Value[T] {
	if v.h == nil {
		return Value[T]{}
	}
	return Value[T]{h: v.h.clone()}
}

// IsZero reports whether the container is absent or holds T's zero value,
// delegating to T's own IsZero method when it has one. encoding/json's
// omitzero and yaml.v3's omitempty both consult it.
func (v Value[T]) IsZero() bool {
	if v.h == nil {
		return true
	}
	x := v.h.load()
	if z, ok := any(x).(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return reflect.ValueOf(&x).Elem().IsZero()
}

// Equal reports whether both containers currently observe equal values,
// delegating to T's Equal method when it has one and falling back to
// reflect.DeepEqual. Handle identity is irrelevant: a container and its
// clone stay equal until their values diverge, and the absent container
// compares as the zero T.
func (v Value[T]) Equal(o Value[T]) bool {
	a, b := v.Get(), o.Get()
	if eq, ok := any(a).(equaler[T]); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// String formats the current value as fmt.Sprint would, making the wrapper
// invisible in printed output.
func (v Value[T]) String() string {
	return fmt.Sprint(v.Get())
}
