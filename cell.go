package threadsafe

import (
	"sync"
	"sync/atomic"

	"github.com/yeungkaho/ThreadSafe/internal/lineage"
)

// box exclusively holds one current value. It is read and mutated only while
// the lock of the cell that owns it is held.
type box[T any] struct {
	value T
}

// cell binds a box to the lock guarding it and records the lineage slot that
// created it. A cell is immutable once published; a fork publishes a new cell
// instead of rewiring the old one, so handles still bound to the old cell
// keep a consistent box/lock pair.
type cell[T any] struct {
	box   *box[T]
	mu    *sync.RWMutex
	owner lineage.Token
}

func newCell[T any](initial T, owner lineage.Token) *cell[T] {
	return &cell[T]{
		box:   &box[T]{value: initial},
		mu:    new(sync.RWMutex),
		owner: owner,
	}
}

// handle is the state behind a Value. Copying a Value copies the handle
// pointer, so plain assignment aliases the same lineage; Clone allocates a
// new handle with a fresh slot.
type handle[T any] struct {
	state  atomic.Pointer[cell[T]]
	slot   lineage.Token
	shared bool
}

func newHandle[T any](initial T, shared bool) *handle[T] {
	h := &handle[T]{slot: lineage.Next(), shared: shared}
	h.state.Store(newCell(initial, h.slot))
	return h
}

// clone shares the current cell under a fresh lineage slot. The clone keeps
// sharing until its own first write forks it off (never, for shared handles).
func (h *handle[T]) clone() *handle[T] {
	nh := &handle[T]{slot: lineage.Next(), shared: h.shared}
	nh.state.Store(h.state.Load())
	return nh
}

// load copies the current value out under the shared lock. Reads never fork:
// a handle that was duplicated but not yet written still reads its origin's
// storage.
func (h *handle[T]) load() T {
	c := h.state.Load()
	c.mu.RLock()
	v := c.box.value
	c.mu.RUnlock()
	return v
}

// commit runs f on the current value and installs the result, forking first
// when this handle was duplicated since the cell was last written through
// this lineage. The binding is re-checked after the lock is acquired because
// another goroutine writing through this same handle may have forked it
// while we waited; the loop retries on the current cell. At most one fork
// happens per duplication, so the retry cannot live-lock.
func (h *handle[T]) commit(f func(T) T) (prev, next T) {
	for {
		c := h.state.Load()
		if p, n, ok := h.tryCommit(c, f); ok {
			return p, n
		}
	}
}

// tryCommit performs one locked commit attempt against c, reporting false
// when the handle was rebound away from c before the lock was acquired. The
// identity check, the fork, and the write share c's exclusive section: if
// this handle's slot no longer matches the cell's owner, a duplication
// happened since the cell was last written through this lineage, and the
// result is seeded into a fresh box and lock and the handle rebound before
// the old lock is released. Handles still bound to the old cell are
// untouched. The unlock is deferred, so a panic out of f releases the lock
// and commits nothing.
func (h *handle[T]) tryCommit(c *cell[T], f func(T) T) (prev, next T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h.state.Load() != c {
		return prev, next, false
	}
	prev = c.box.value
	next = f(prev)
	if !h.shared && h.slot != c.owner {
		h.state.Store(newCell(next, h.slot))
	} else {
		c.box.value = next
	}
	return prev, next, true
}

// store replaces the current value, forking first when needed.
func (h *handle[T]) store(v T) {
	h.commit(func(T) T { return v })
}
