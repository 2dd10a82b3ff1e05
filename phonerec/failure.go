// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: failure.go — call-failure history tables (F404, F606)
//
// Purpose:
//   - F404 and F606 are structurally identical: phone -> {first_seen,
//     last_seen}, ingested from an 11-digit leading column with the
//     country-code "1" stripped. One generic implementation backs both;
//     the composition layer holds two separate registry slots.
//
// Grounded on:
//   - F404Mapping.cpp / F606Mapping.cpp: single dict<pn, {first,last}>,
//     duplicate rows and row-count overflow are silently ignored rather
//     than rejected (both comment out their runtime_error and just
//     return *this) — the one place in the original source where
//     add_row degrades instead of failing; kept here as AddRow having no
//     error return.
// ─────────────────────────────────────────────────────────────────────────────

package phonerec

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/tables"
	"callfwd/types"
)

// FailureRecord is one call-failure history row.
type FailureRecord struct {
	PN        uint64
	FirstSeen string
	LastSeen  string
}

// FailureData is one immutable, finalized F404/F606 version.
type FailureData struct {
	Meta map[string]string
	dict *batch.Map[FailureRecord]
}

// GetFailure looks up a single phone's failure-history record.
func (d *FailureData) GetFailure(pn uint64) FailureRecord {
	if r, ok := d.dict.Get(pn); ok {
		return r
	}
	return FailureRecord{}
}

// GetFailures runs the batched lookup over a window of w keys.
func (d *FailureData) GetFailures(keys []uint64, w int, out []FailureRecord, found []bool) {
	batch.Lookup(d.dict, keys, identity, w, out, found)
}

// FailureBuilder assembles one draft F404/F606 version.
type FailureBuilder struct {
	meta map[string]string
	dict *batch.Map[FailureRecord]
	n    int
}

// NewFailureBuilder returns an empty FailureBuilder.
func NewFailureBuilder() *FailureBuilder {
	return &FailureBuilder{dict: batch.New[FailureRecord](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *FailureBuilder) SizeHint(numRecords int) {
	b.dict = batch.New[FailureRecord](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *FailureBuilder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one failure record, keyed by rec.PN. Unlike every other
// table, a duplicate key or row-count overflow here is not an error: the
// row is silently dropped, matching the original source's degrade-not-
// fail behavior for these two tables.
func (b *FailureBuilder) AddRow(rec FailureRecord) {
	if b.n >= tables.MaxRows {
		return
	}
	if dup := b.dict.Insert(rec.PN, rec); dup {
		return
	}
	b.n++
}

// FromCSV consumes up to limit lines from r, each starting with an
// 11-digit phone (leading "1" stripped) followed by first/last-seen
// columns; rows need >= 3 columns. Lines not starting with '1' are
// skipped silently. A row with fewer than 3 columns or a leading column
// shorter than 11 characters fails with tables.BadColumns; duplicate
// phones are dropped rather than failing the ingest (see AddRow).
func (b *FailureBuilder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if len(row.Line) == 0 || row.Line[0] != '1' {
			return nil
		}
		if row.Len() < 3 {
			return tables.BadColumns
		}
		col0 := row.Col(0)
		if len(col0) < 11 {
			return tables.BadColumns
		}
		pn := parseDigitsN(col0[1:11])
		b.AddRow(FailureRecord{
			PN:        pn,
			FirstSeen: string(row.Col(1)),
			LastSeen:  string(row.Col(2)),
		})
		return nil
	})
}

// parseDigitsN reads an unsigned decimal integer from b.
//
//go:nosplit
//go:inline
func parseDigitsN(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			continue
		}
		v = v*10 + uint64(c-'0')
	}
	return v
}

// Build returns the immutable version and resets the builder to a fresh
// empty state (mirrors F404Mapping/F606Mapping::Builder::build's
// swap-out-data_ idiom — see lrn.Builder.Build).
func (b *FailureBuilder) Build() *FailureData {
	d := &FailureData{Meta: b.meta, dict: b.dict}

	b.meta = nil
	b.dict = batch.New[FailureRecord](1)
	b.n = 0
	return d
}
