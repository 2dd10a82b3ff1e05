// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: ftc.go — FTC complaint history table, keyed by phone
//
// Grounded on:
//   - FtcMapping.cpp: single dict<pn, FtcData>, the phone column sits at
//     index 1 (not 0) in the source CSV, rows require >= 5 columns.
// ─────────────────────────────────────────────────────────────────────────────

package phonerec

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/tables"
	"callfwd/types"
)

// FtcRecord is one complaint-history row.
type FtcRecord struct {
	PN              uint64
	FirstComplaint  string
	LastComplaint   string
	ComplaintCount  string
}

// FtcData is one immutable, finalized FTC version.
type FtcData struct {
	Meta map[string]string
	dict *batch.Map[FtcRecord]
}

// GetFtc looks up a single phone's complaint-history record.
func (d *FtcData) GetFtc(pn uint64) FtcRecord {
	if r, ok := d.dict.Get(pn); ok {
		return r
	}
	return FtcRecord{}
}

// GetFtcs runs the batched lookup over a window of w keys.
func (d *FtcData) GetFtcs(keys []uint64, w int, out []FtcRecord, found []bool) {
	batch.Lookup(d.dict, keys, identity, w, out, found)
}

// FtcBuilder assembles one draft FTC version.
type FtcBuilder struct {
	meta map[string]string
	dict *batch.Map[FtcRecord]
	n    int
}

// NewFtcBuilder returns an empty FtcBuilder.
func NewFtcBuilder() *FtcBuilder {
	return &FtcBuilder{dict: batch.New[FtcRecord](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *FtcBuilder) SizeHint(numRecords int) {
	b.dict = batch.New[FtcRecord](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *FtcBuilder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one FTC record, keyed by rec.PN.
func (b *FtcBuilder) AddRow(rec FtcRecord) error {
	if b.n >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dict.Insert(rec.PN, rec); dup {
		return tables.DuplicateKey
	}
	b.n++
	return nil
}

// FromCSV consumes up to limit lines of FTC rows from r: the phone
// column is index 1 (already a pre-cleaned 10-digit value), first/last
// complaint dates at 2 and 3, complaint count at 5; rows need >= 5
// columns. Lines not starting with a digit are skipped silently.
func (b *FtcBuilder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() < 5 {
			return tables.BadColumns
		}
		pn := phone.Parse(string(row.Col(1)))
		if pn == phone.NONE {
			return tables.BadColumns
		}
		return b.AddRow(FtcRecord{
			PN:             pn,
			FirstComplaint: string(row.Col(2)),
			LastComplaint:  string(row.Col(3)),
			ComplaintCount: string(row.Col(5)),
		})
	})
}

// Build returns the immutable version and resets the builder to a fresh
// empty state (mirrors FtcMapping::Builder::build's swap-out-data_ idiom —
// see lrn.Builder.Build).
func (b *FtcBuilder) Build() *FtcData {
	d := &FtcData{Meta: b.meta, dict: b.dict}

	b.meta = nil
	b.dict = batch.New[FtcRecord](1)
	b.n = 0
	return d
}
