// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: phone.go — zero-alloc NANP phone number codec
//
// Purpose:
//   - Parses E.164-ish phone strings into the canonical 10-digit form.
//   - Derives the NPA / NPA-NXX / NPA-NXX-X truncations every table keys on.
//
// Notes:
//   - No strconv: digits are scanned and accumulated by hand, mirroring
//     the teacher repository's ParseHexU64 scan-and-accumulate style
//     (that function is not part of this module).
//   - NONE (zero value) means "absent" everywhere in this package.
// ─────────────────────────────────────────────────────────────────────────────

package phone

// NONE is the sentinel for "not a phone number" / "absent".
const NONE uint64 = 0

// Valid bounds for a canonical 10-digit NANP number: [2e9, 1e10).
const (
	minPN uint64 = 2_000_000_000
	maxPN uint64 = 10_000_000_000
)

// Parse strips an optional leading "+1" or "1" country code and any
// dashes/spaces, then reads the first 10 consecutive decimal digits. It
// returns NONE if fewer than 10 digits remain or the result falls outside
// [2e9, 1e10).
//
//go:nosplit
//go:inline
func Parse(s string) uint64 {
	if len(s) > 0 && s[0] == '+' {
		s = s[1:]
	}
	// Strip a single leading "1" country code when it leaves >=10 digits.
	digits := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits++
		}
	}
	if digits == 11 {
		// Drop the first digit seen (must be the "1" country code).
		for i := 0; i < len(s); i++ {
			if s[i] >= '0' && s[i] <= '9' {
				s = s[i+1:]
				break
			}
		}
	} else if digits < 10 {
		return NONE
	}

	var v uint64
	got := 0
	for i := 0; i < len(s) && got < 10; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		v = v*10 + uint64(c-'0')
		got++
	}
	if got < 10 {
		return NONE
	}
	if v < minPN || v >= maxPN {
		return NONE
	}
	return v
}

// Format renders pn as a plain decimal string with no separators. Returns
// "" for NONE.
func Format(pn uint64) string {
	if pn == NONE {
		return ""
	}
	var buf [10]byte
	i := len(buf)
	for v := pn; v > 0; v /= 10 {
		i--
		buf[i] = byte('0' + v%10)
	}
	return string(buf[i:])
}

// NPA returns the 3-digit area code: floor(pn / 1e7).
//
//go:nosplit
//go:inline
func NPA(pn uint64) uint64 { return pn / 10_000_000 }

// NPANXX returns the 6-digit NPA-NXX: floor(pn / 1e4).
//
//go:nosplit
//go:inline
func NPANXX(pn uint64) uint64 { return pn / 10_000 }

// NPANXXX returns the 7-digit NPA-NXX-X: floor(pn / 1e3).
//
//go:nosplit
//go:inline
func NPANXXX(pn uint64) uint64 { return pn / 1_000 }
