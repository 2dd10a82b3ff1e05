// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: lrn.go — portability (LRN) table: phone → routing number
//
// Purpose:
//   - Forward: batched identity-keyed lookup, phone -> routing number.
//   - Reverse: range scan over routing numbers, yielding every ported
//     phone whose routing number falls in a half-open interval.
//
// Grounded on:
//   - LergMapping.cpp / DncMapping.cpp's Builder/Data/Cursor shape and
//     F14Map-prehash getX() loop (here: batch.Lookup), generalized onto
//     revindex's shared reverse-index primitive for the inverse scan.
// ─────────────────────────────────────────────────────────────────────────────

package lrn

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/revindex"
	"callfwd/tables"
	"callfwd/types"
)

// Data is one immutable, finalized LRN version.
type Data struct {
	Meta map[string]string

	dict      *batch.Map[uint64]
	primary   []revindex.Entry // phone column, chained by routing number
	secondary []revindex.Entry // routing-number column, unique heads
}

// Size returns the number of rows in this version.
func (d *Data) Size() int { return len(d.primary) }

func identity(k uint64) uint64 { return k }

// GetRNs runs the batched forward lookup: out[i]/found[i] for keys[i]'s
// routing number. w is the prehash window width.
func (d *Data) GetRNs(keys []uint64, w int, out []uint64, found []bool) {
	batch.Lookup(d.dict, keys, identity, w, out, found)
}

// GetRN looks up a single phone's routing number. Returns phone.NONE if
// not ported.
func (d *Data) GetRN(pn uint64) uint64 {
	if v, ok := d.dict.Get(pn); ok {
		return v
	}
	return phone.NONE
}

// InverseRNs returns a cursor over every (pn, rn) pair with
// rn in [rnLo, rnHi), ascending by rn, then by original insertion order.
func (d *Data) InverseRNs(rnLo, rnHi uint64) *revindex.Cursor {
	return revindex.NewCursor(d.primary, d.secondary, rnLo, rnHi)
}

// Builder assembles one draft LRN version from (pn, rn) rows.
type Builder struct {
	meta map[string]string
	pns  []uint64
	rns  []uint64
	dict *batch.Map[uint64]
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{dict: batch.New[uint64](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *Builder) SizeHint(numRecords int) {
	b.pns = make([]uint64, 0, numRecords)
	b.rns = make([]uint64, 0, numRecords)
	b.dict = batch.New[uint64](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *Builder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one (pn, rn) row. Returns tables.DuplicateKey if pn is
// already present, or tables.Overflow at the row-count ceiling.
func (b *Builder) AddRow(pn, rn uint64) error {
	if len(b.pns) >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dict.Insert(pn, rn); dup {
		return tables.DuplicateKey
	}
	b.pns = append(b.pns, pn)
	b.rns = append(b.rns, rn)
	return nil
}

// FromCSV consumes up to limit lines of "pn,rn" rows from r, advancing
// *line by the number of lines read. Blank lines and lines not starting
// with a digit are skipped silently; any other line without exactly 2
// columns fails with tables.BadColumns.
func (b *Builder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() != 2 {
			return tables.BadColumns
		}
		pn := phone.Parse(string(row.Col(0)))
		rn := phone.Parse(string(row.Col(1)))
		if pn == phone.NONE || rn == phone.NONE {
			return tables.BadColumns
		}
		return b.AddRow(pn, rn)
	})
}

// Build runs finalization, returns the immutable version, and resets the
// builder to a fresh empty state, mirroring LergMapping::Builder::build's
// std::swap(data, data_) — the draft's rows move into the returned
// version and the builder is left ready to assemble the next one.
func (b *Builder) Build() *Data {
	d := &Data{
		Meta: b.meta,
		dict: b.dict,
	}
	d.primary, d.secondary = revindex.Build(b.pns, b.rns)

	b.meta = nil
	b.pns = nil
	b.rns = nil
	b.dict = batch.New[uint64](1)
	return d
}
