// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: window.go — shared batched lookup primitive
//
// Purpose:
//   - Implements the two-pass, window-buffered lookup loop every table
//     query path is built on: prehash a window of W keys, then probe all
//     of them. Grounded directly on the original C++ getLergs()/F14Map
//     prehash-token loop: "compute hash and prefetch... fill output
//     vector" over windows of FLAGS_lerg_f14map_prefetch keys.
//
// Notes:
//   - Go exposes no portable software-prefetch intrinsic, so this keeps
//     the two-pass shape (and its cache-locality benefit: the window's
//     working set — tokens plus the small number of buckets they touch —
//     stays resident across both passes) without claiming an explicit
//     prefetch instruction fires. See DESIGN.md.
// ─────────────────────────────────────────────────────────────────────────────

package batch

// Lookup runs the windowed prehash/probe primitive against a single
// dictionary with a single key transform, writing into out/found in place.
// W is clamped to at least 1.
func Lookup[V any](m *Map[V], keys []uint64, transform func(uint64) uint64, w int, out []V, found []bool) {
	if w < 1 {
		w = 1
	}
	n := len(keys)
	tokens := make([]uint64, w)
	tkeys := make([]uint64, w)

	for lo := 0; lo < n; lo += w {
		hi := lo + w
		if hi > n {
			hi = n
		}
		width := hi - lo

		// Prehash pass.
		for j := 0; j < width; j++ {
			k := transform(keys[lo+j])
			tkeys[j] = k
			tokens[j] = Prehash(k)
		}
		// Probe pass.
		for j := 0; j < width; j++ {
			v, ok := m.GetHashed(tkeys[j], tokens[j])
			out[lo+j] = v
			found[lo+j] = ok
		}
	}
}

// ForEachWindow drives a custom two-pass body (used by tables whose
// lookup tries several dictionaries per key, e.g. DNO and LERG) over
// windows of width w. prehash is called once per key in the window first
// (in key order), then probe is called once per key in the same order —
// matching the shared prehash-then-probe shape without fixing it to a
// single Map.
func ForEachWindow(n, w int, prehash func(i int), probe func(i int)) {
	if w < 1 {
		w = 1
	}
	for lo := 0; lo < n; lo += w {
		hi := lo + w
		if hi > n {
			hi = n
		}
		for i := lo; i < hi; i++ {
			prehash(i)
		}
		for i := lo; i < hi; i++ {
			probe(i)
		}
	}
}
