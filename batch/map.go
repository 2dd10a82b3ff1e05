// ═══════════════════════════════════════════════════════════════════════════
// ROBIN HOOD HASH DIRECTORY — uint64-keyed, generic payload
// ───────────────────────────────────────────────────────────────────────────
// Adapted from localidx.Hash: parallel key/value arrays, Robin Hood
// displacement, early-terminating probe on lookup miss. Generalized from
// fixed uint32 keys/values to uint64 phone-derived keys and an arbitrary
// payload type, and given the ability to grow past its initial size hint
// (the original was sized once at bootstrap for a known, fixed pool count;
// a CSV builder only gets a size *hint*, so growth-on-load-factor is new).
//
// Key 0 is reserved as the empty-slot sentinel: every key this package sees
// is a canonical phone number or a truncation of one, and NPA never hits
// zero (200-999), so ordinary table keys never collide with the sentinel.
// ═══════════════════════════════════════════════════════════════════════════

package batch

import "callfwd/utils"

// Map is a fixed-growth Robin Hood hash directory keyed by uint64.
type Map[V any] struct {
	keys []uint64
	vals []V
	mask uint64
	size int
}

func nextPow2(n int) uint64 {
	s := uint64(1)
	for s < uint64(n) {
		s <<= 1
	}
	return s
}

// New allocates a directory sized for capacity entries at a safe load
// factor (2x headroom, rounded to the next power of 2).
func New[V any](capacity int) *Map[V] {
	if capacity < 1 {
		capacity = 1
	}
	sz := nextPow2(capacity * 2)
	return &Map[V]{
		keys: make([]uint64, sz),
		vals: make([]V, sz),
		mask: sz - 1,
	}
}

// Len returns the number of distinct keys stored.
func (m *Map[V]) Len() int { return m.size }

// Prehash computes the probe token for key, used to split the batched
// lookup primitive into a prehash pass and a probe pass (see Lookup).
//
//go:nosplit
//go:inline
func Prehash(key uint64) uint64 { return utils.Mix64(key) }

func (m *Map[V]) grow() {
	old := m
	grown := &Map[V]{
		keys: make([]uint64, len(old.keys)*2),
		vals: make([]V, len(old.vals)*2),
		mask: uint64(len(old.keys)*2 - 1),
	}
	for i, k := range old.keys {
		if k != 0 {
			grown.insert(k, old.vals[i])
		}
	}
	*m = *grown
}

// Insert adds key/val if key is new. It reports dup=true (and leaves the
// map unmodified) if key was already present — builders use this to
// surface tables.DuplicateKey.
func (m *Map[V]) Insert(key uint64, val V) (dup bool) {
	if m.size+1 > (len(m.keys)*3)/4 {
		m.grow()
	}
	return m.insert(key, val)
}

func (m *Map[V]) insert(key uint64, val V) (dup bool) {
	h := utils.Mix64(key)
	i := h & m.mask
	dist := uint64(0)

	for {
		k := m.keys[i]
		if k == 0 {
			m.keys[i], m.vals[i] = key, val
			m.size++
			return false
		}
		if k == key {
			return true
		}

		kDist := (i + m.mask + 1 - (utils.Mix64(k) & m.mask)) & m.mask
		if kDist < dist {
			key, m.keys[i] = m.keys[i], key
			val, m.vals[i] = m.vals[i], val
			dist = kDist
		}
		i = (i + 1) & m.mask
		dist++
	}
}

// Get performs a single-key lookup without a prehash token.
//
//go:nosplit
//go:inline
func (m *Map[V]) Get(key uint64) (V, bool) {
	return m.GetHashed(key, utils.Mix64(key))
}

// GetHashed performs the probe pass of the batched lookup primitive using a
// token computed ahead of time by Prehash. Splitting hash computation from
// probing lets callers prehash a whole window of keys before looking any of
// them up (see batch.Lookup), overlapping the two passes the way the spec's
// prefetch-then-probe loop does.
//
//go:nosplit
//go:inline
func (m *Map[V]) GetHashed(key, token uint64) (V, bool) {
	i := token & m.mask
	dist := uint64(0)

	for {
		k := m.keys[i]
		if k == 0 {
			var zero V
			return zero, false
		}
		if k == key {
			return m.vals[i], true
		}

		kDist := (i + m.mask + 1 - (utils.Mix64(k) & m.mask)) & m.mask
		if kDist < dist {
			var zero V
			return zero, false
		}
		i = (i + 1) & m.mask
		dist++
	}
}
