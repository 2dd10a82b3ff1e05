// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: membership.go — simple phone→{0,1} presence tables
//
// Purpose:
//   - Shared implementation for the DNC and Toll-free tables: a single
//     dictionary keyed by phone, forward lookup returns presence.
//
// Grounded on:
//   - DncMapping.cpp: Builder::addRow(pn, dnc) always calling through
//     with dnc=1 from fromCSV, and the same pnColumn/dncIndex dual-column
//     reverse index LergMapping.cpp builds. Since the secondary value is
//     always the constant 1, its "reverse index" degenerates to a single
//     bucket holding every member in insertion order — which this package
//     keeps (via revindex) and exposes as AllMembers, a full-membership
//     enumeration cursor, rather than dropping it as dead weight.
// ─────────────────────────────────────────────────────────────────────────────

package membership

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/revindex"
	"callfwd/tables"
	"callfwd/types"
)

// presenceKey is the constant secondary key every row shares (mirrors the
// original source's addRow(pn, 1) call).
const presenceKey = 1

// Data is one immutable, finalized membership version.
type Data struct {
	Meta map[string]string

	dict      *batch.Map[struct{}]
	primary   []revindex.Entry
	secondary []revindex.Entry
}

// Size returns the number of member rows in this version.
func (d *Data) Size() int { return len(d.primary) }

// IsMember reports whether pn is present in this version.
func (d *Data) IsMember(pn uint64) bool {
	_, ok := d.dict.Get(pn)
	return ok
}

func identity(k uint64) uint64 { return k }

// GetMemberships runs the batched forward lookup: found[i] reports
// whether keys[i] is a member.
func (d *Data) GetMemberships(keys []uint64, w int, found []bool) {
	out := make([]struct{}, len(keys))
	batch.Lookup(d.dict, keys, identity, w, out, found)
}

// AllMembers returns a cursor over every member phone, in original
// insertion order.
func (d *Data) AllMembers() *revindex.Cursor {
	return revindex.NewCursor(d.primary, d.secondary, presenceKey, presenceKey+1)
}

// Builder assembles one draft membership version from phone rows.
type Builder struct {
	meta map[string]string
	pns  []uint64
	dict *batch.Map[struct{}]
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{dict: batch.New[struct{}](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *Builder) SizeHint(numRecords int) {
	b.pns = make([]uint64, 0, numRecords)
	b.dict = batch.New[struct{}](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *Builder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one phone. Returns tables.DuplicateKey if pn is already
// present, or tables.Overflow at the row-count ceiling.
func (b *Builder) AddRow(pn uint64) error {
	if len(b.pns) >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dict.Insert(pn, struct{}{}); dup {
		return tables.DuplicateKey
	}
	b.pns = append(b.pns, pn)
	return nil
}

// FromCSV consumes up to limit lines of single-column phone rows from r,
// advancing *line by the number of lines read. Blank lines and lines not
// starting with a digit are skipped silently; any other line without
// exactly 1 column fails with tables.BadColumns. This is the DNC schema;
// Toll-free uses FromCSVColumns with 3 columns (see DncMapping.cpp vs.
// TollFreeMapping.cpp's fromCSV, which differ only in expected column
// count).
func (b *Builder) FromCSV(r io.Reader, line *int, limit int) error {
	return b.FromCSVColumns(r, 1, line, limit)
}

// FromCSVColumns consumes up to limit lines from r, each expected to have
// exactly cols columns with the phone number in column 0 (remaining
// columns, if any, are unused). Blank lines and lines not starting with a
// digit are skipped silently; any other line with a different column
// count fails with tables.BadColumns.
func (b *Builder) FromCSVColumns(r io.Reader, cols int, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() != cols {
			return tables.BadColumns
		}
		pn := phone.Parse(string(row.Col(0)))
		if pn == phone.NONE {
			return tables.BadColumns
		}
		return b.AddRow(pn)
	})
}

// Build runs finalization, returns the immutable version, and resets the
// builder to a fresh empty state (mirrors DncMapping::Builder::build's
// swap-out-data_ idiom — see lrn.Builder.Build).
func (b *Builder) Build() *Data {
	secondaryKeys := make([]uint64, len(b.pns))
	for i := range secondaryKeys {
		secondaryKeys[i] = presenceKey
	}
	d := &Data{Meta: b.meta, dict: b.dict}
	d.primary, d.secondary = revindex.Build(b.pns, secondaryKeys)

	b.meta = nil
	b.pns = nil
	b.dict = batch.New[struct{}](1)
	return d
}
