// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: dno.go — hierarchical do-not-originate table
//
// Purpose:
//   - Four independent presence dictionaries keyed at different
//     granularities (identity, NPA, NPA-NXX, NPA-NXX-X); a phone is
//     "on the list" if it matches at any granularity.
//
// Grounded on:
//   - DnoMapping.cpp: four F14ValueMaps (dict, dict_npa, dict_npa_nxx,
//     dict_npa_nxx_x) and its getDNOs() fallback loop.
//
// Notes:
//   - The original source's fallback loop tests coarsest-first (npa,
//     then npa_nxx, then npa_nxx_x, then identity last) — almost
//     certainly a copy-paste artifact, since a phone that matches at the
//     NPA level is already "on the list" regardless of order and testing
//     identity last just wastes the common case's cheapest check. This
//     implementation orders fallback most-specific-first (identity,
//     NPA-NXX-X, NPA-NXX, NPA), matching how DESIGN.md resolves the
//     ordering question, but the fallback order is data, not hardcoded
//     control flow — see Order.
// ─────────────────────────────────────────────────────────────────────────────

package dno

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/tables"
	"callfwd/types"
	"callfwd/utils"
)

// Level identifies one of the four key granularities.
type Level int

const (
	Identity Level = iota
	NPA
	NPANXX
	NPANXXX
	numLevels
)

// Order is the fallback sequence GetDNOs tries, most-specific first.
var Order = [numLevels]Level{Identity, NPANXXX, NPANXX, NPA}

func keyFor(lvl Level, pn uint64) uint64 {
	switch lvl {
	case NPA:
		return phone.NPA(pn)
	case NPANXX:
		return phone.NPANXX(pn)
	case NPANXXX:
		return phone.NPANXXX(pn)
	default:
		return pn
	}
}

// Data is one immutable, finalized DNO version.
type Data struct {
	Meta  map[string]string
	dicts [numLevels]*batch.Map[struct{}]
}

// IsListed reports whether pn is on the list at any granularity.
func (d *Data) IsListed(pn uint64) bool {
	for _, lvl := range Order {
		if _, ok := d.dicts[lvl].Get(keyFor(lvl, pn)); ok {
			return true
		}
	}
	return false
}

// GetDNOs runs the batched fallback lookup over a window of w keys at a
// time: each window is fully prehashed across all four granularities
// before any of them are probed.
func (d *Data) GetDNOs(keys []uint64, w int, found []bool) {
	if w < 1 {
		w = 1
	}
	type slot struct {
		keys   [numLevels]uint64
		tokens [numLevels]uint64
	}
	buf := make([]slot, w)

	batch.ForEachWindow(len(keys), w,
		func(i int) {
			s := &buf[i%w]
			pn := keys[i]
			for li, lvl := range Order {
				k := keyFor(lvl, pn)
				s.keys[li] = k
				s.tokens[li] = batch.Prehash(k)
			}
		},
		func(i int) {
			s := &buf[i%w]
			found[i] = false
			for li, lvl := range Order {
				if _, ok := d.dicts[lvl].GetHashed(s.keys[li], s.tokens[li]); ok {
					found[i] = true
					return
				}
			}
		},
	)
}

// Builder assembles one draft DNO version, one granularity at a time.
type Builder struct {
	meta  map[string]string
	rows  [numLevels][]uint64
	dicts [numLevels]*batch.Map[struct{}]
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{}
	for i := range b.dicts {
		b.dicts[i] = batch.New[struct{}](1)
	}
	return b
}

// SizeHint preallocates capacity for numRecords rows at each granularity.
func (b *Builder) SizeHint(numRecords int) {
	for i := range b.dicts {
		b.rows[i] = make([]uint64, 0, numRecords)
		b.dicts[i] = batch.New[struct{}](numRecords)
	}
}

// SetMetadata attaches free-form metadata to the draft.
func (b *Builder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one key at the given granularity level (the key is
// already truncated to that granularity by the caller, e.g. an NPA-NXX
// value for lvl==NPANXX). Returns tables.DuplicateKey or tables.Overflow.
func (b *Builder) AddRow(lvl Level, key uint64) error {
	if len(b.rows[lvl]) >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dicts[lvl].Insert(key, struct{}{}); dup {
		return tables.DuplicateKey
	}
	b.rows[lvl] = append(b.rows[lvl], key)
	return nil
}

// FromCSV consumes up to limit lines from r, each a three-column row whose
// first column is a hyphenated phone number (e.g. "212-555-0001,?,?"); the
// other two columns are unused by this table. Hyphens are stripped from
// column 0 before parsing. Blank lines and lines not starting with a digit
// are skipped silently.
func (b *Builder) FromCSV(r io.Reader, lvl Level, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() != 3 {
			return tables.BadColumns
		}
		number := utils.DeleteByte(row.Col(0), '-')
		pn := phone.Parse(utils.B2s(number))
		if pn == phone.NONE {
			return tables.BadColumns
		}
		return b.AddRow(lvl, keyFor(lvl, pn))
	})
}

// Build returns the immutable version and resets the builder to a fresh
// empty state (mirrors DnoMapping::Builder::build's swap-out-data_ idiom —
// see lrn.Builder.Build).
func (b *Builder) Build() *Data {
	d := &Data{Meta: b.meta, dicts: b.dicts}

	b.meta = nil
	for i := range b.rows {
		b.rows[i] = nil
		b.dicts[i] = batch.New[struct{}](1)
	}
	return d
}
