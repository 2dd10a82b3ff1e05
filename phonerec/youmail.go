// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: youmail.go — Youmail spam-score table, keyed by phone
//
// Grounded on:
//   - YoumailMapping.cpp: single dict<pn, YoumailData>, "+1" stripped once
//     from the leading column, 4- or 5-column rows (a bare trailing comma
//     after "unlawful" means tcpafraud is blank rather than absent).
// ─────────────────────────────────────────────────────────────────────────────

package phonerec

import (
	"bytes"
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/tables"
	"callfwd/types"
)

// YoumailRecord is one spam-scoring row. PN is phone.NONE when the row
// was never found (the "absent" sentinel per spec §4.7).
type YoumailRecord struct {
	PN               uint64
	SpamScore        string
	FraudProbability string
	Unlawful         string
	TCPAFraud        string
}

// YoumailData is one immutable, finalized Youmail version.
type YoumailData struct {
	Meta map[string]string
	dict *batch.Map[YoumailRecord]
}

// GetYoumail looks up a single phone's spam-scoring record.
func (d *YoumailData) GetYoumail(pn uint64) YoumailRecord {
	if r, ok := d.dict.Get(pn); ok {
		return r
	}
	return YoumailRecord{}
}

func identity(k uint64) uint64 { return k }

// GetYoumails runs the batched lookup over a window of w keys.
func (d *YoumailData) GetYoumails(keys []uint64, w int, out []YoumailRecord, found []bool) {
	batch.Lookup(d.dict, keys, identity, w, out, found)
}

// YoumailBuilder assembles one draft Youmail version.
type YoumailBuilder struct {
	meta map[string]string
	dict *batch.Map[YoumailRecord]
	n    int
}

// NewYoumailBuilder returns an empty YoumailBuilder.
func NewYoumailBuilder() *YoumailBuilder {
	return &YoumailBuilder{dict: batch.New[YoumailRecord](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *YoumailBuilder) SizeHint(numRecords int) {
	b.dict = batch.New[YoumailRecord](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *YoumailBuilder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one Youmail record, keyed by rec.PN.
func (b *YoumailBuilder) AddRow(rec YoumailRecord) error {
	if b.n >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dict.Insert(rec.PN, rec); dup {
		return tables.DuplicateKey
	}
	b.n++
	return nil
}

// stripLeadingPlusOne removes a single leading "+1" from s, once.
func stripLeadingPlusOne(s []byte) []byte {
	if bytes.HasPrefix(s, []byte("+1")) {
		return s[2:]
	}
	return s
}

// FromCSV consumes up to limit lines from r: "+1<pn>,score,fraud,unlawful"
// (4 columns, trailing comma) or "+1<pn>,score,fraud,unlawful,tcpafraud"
// (5 columns). Lines not starting with '+' are skipped silently.
func (b *YoumailBuilder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if len(row.Line) == 0 || row.Line[0] != '+' {
			return nil
		}
		n := row.Len()
		if n != 5 && !(n == 4 && len(row.Line) > 0 && row.Line[len(row.Line)-1] == ',') {
			return tables.BadColumns
		}
		pn := phone.Parse(string(stripLeadingPlusOne(row.Col(0))))
		if pn == phone.NONE {
			return tables.BadColumns
		}
		rec := YoumailRecord{
			PN:               pn,
			SpamScore:        string(row.Col(1)),
			FraudProbability: string(row.Col(2)),
			Unlawful:         string(row.Col(3)),
		}
		if n == 5 {
			rec.TCPAFraud = string(row.Col(4))
		}
		return b.AddRow(rec)
	})
}

// Build returns the immutable version and resets the builder to a fresh
// empty state (mirrors YoumailMapping::Builder::build's swap-out-data_
// idiom — see lrn.Builder.Build).
func (b *YoumailBuilder) Build() *YoumailData {
	d := &YoumailData{Meta: b.meta, dict: b.dict}

	b.meta = nil
	b.dict = batch.New[YoumailRecord](1)
	b.n = 0
	return d
}
