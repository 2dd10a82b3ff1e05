// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: registry.go — atomic version slots + protected handles
//
// Purpose:
//   - Holds one atomic pointer per table. Readers acquire a protected
//     Handle, run their batched lookups against Handle.Value(), and
//     release it; a writer publishes a freshly built version and retires
//     whatever the slot held before.
//
// Grounded on:
//   - folly::hazptr_obj_base / hazptr_holder's retire-then-reclaim-after-
//     drain contract (see LergMapping.cpp: Data::~Data logs "Reclaiming
//     memory", and the Builder::commit exchange+retire sequence).
//   - The teacher's control package: lock-free atomic flags, no locks, no
//     blocking on the read path.
//
// Notes:
//   - Go is garbage collected, so a reachable *version[T] is never
//     actually freed early regardless of this package's bookkeeping —
//     what this refcount buys is the *observable* "reclaim only after
//     every handle acquired before retirement has been released"
//     property the spec tests for, plus a hook (onReclaim) to log it the
//     way the C++ destructor does. See DESIGN.md.
// ─────────────────────────────────────────────────────────────────────────────

package registry

import "sync/atomic"

// version wraps one immutable table snapshot with a reference count. refs
// starts at 1, owned by the slot itself; each acquired Handle adds one more.
type version[T any] struct {
	data   T
	refs   atomic.Int64
	onZero func(T)
}

// Slot is one table's atomic version pointer. The zero value is a valid,
// empty slot (IsAvailable reports false until the first Publish).
type Slot[T any] struct {
	cur atomic.Pointer[version[T]]
}

// IsAvailable reports whether any version has ever been published to this
// slot (spec §4.9's is_available()).
func (s *Slot[T]) IsAvailable() bool {
	return s.cur.Load() != nil
}

// Publish atomically installs data as the slot's current version and
// retires whatever version occupied the slot before, invoking onReclaim
// once that version's last outstanding Handle (if any) is released.
// onReclaim may be nil.
func (s *Slot[T]) Publish(data T, onReclaim func(T)) {
	nv := &version[T]{data: data, onZero: onReclaim}
	nv.refs.Store(1)
	old := s.cur.Swap(nv)
	if old != nil {
		release(old)
	}
}

// Handle is a reader's protected reference to one version. It must be
// released exactly once; a released Handle must not be reused.
type Handle[T any] struct {
	v *version[T]
}

// Acquire loads the slot's current version and protects it against
// reclamation for the handle's lifetime. ok is false if the slot has never
// been published to (tables.NotAvailable at the call site).
//
// Acquire validates its increment against a second load (protect-then-
// validate, the same shape hazard pointers use) so a concurrent Publish
// racing the load can never hand back a version whose reclaim callback has
// already fired. The increment itself is conditional on refs still being
// positive (tryAcquireRef): a plain Add(1) would resurrect a refcount that
// a concurrent release has already driven to zero, and the matching
// release() from the failed revalidation below would then drive it to
// zero a second time and fire onZero twice for the same retirement.
func (s *Slot[T]) Acquire() (Handle[T], bool) {
	for {
		v := s.cur.Load()
		if v == nil {
			return Handle[T]{}, false
		}
		if !tryAcquireRef(v) {
			// v's refcount already hit zero via a concurrent release,
			// which only happens once v has been swapped out of cur;
			// retry against whatever version is current now.
			continue
		}
		if s.cur.Load() == v {
			return Handle[T]{v: v}, true
		}
		release(v)
	}
}

// tryAcquireRef increments v.refs unless it has already reached zero,
// using a compare-and-swap loop so it never resurrects a retired version's
// refcount.
func tryAcquireRef[T any](v *version[T]) bool {
	for {
		old := v.refs.Load()
		if old <= 0 {
			return false
		}
		if v.refs.CompareAndSwap(old, old+1) {
			return true
		}
	}
}

// Value returns the protected version's payload. Safe to call any number
// of times before Release.
func (h Handle[T]) Value() T {
	return h.v.data
}

// Valid reports whether the handle actually protects a version (false for
// a Handle returned alongside ok=false from Acquire).
func (h Handle[T]) Valid() bool { return h.v != nil }

// Release drops this handle's protection. Once every handle acquired
// before a version's retirement has been released, onReclaim fires.
func (h Handle[T]) Release() {
	if h.v == nil {
		return
	}
	release(h.v)
}

func release[T any](v *version[T]) {
	if v.refs.Add(-1) == 0 && v.onZero != nil {
		v.onZero(v.data)
	}
}
