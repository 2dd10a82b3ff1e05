// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: lerg.go — LERG carrier/rate-center directory
//
// Purpose:
//   - Two dictionaries keyed at different prefix granularities
//     (NPA-NXX-X, NPA-NXX); a query tries the fine key first and falls
//     back to the coarse key.
//
// Grounded on:
//   - LergMapping.cpp's dic_npa_nxx_x / dic_npa_nxx pair and its
//     getLergs() two-token prehash loop, reshaped onto
//     batch.ForEachWindow's prehash-then-probe driver.
// ─────────────────────────────────────────────────────────────────────────────

package prefixrec

import (
	"io"

	"callfwd/batch"
	"callfwd/csvload"
	"callfwd/phone"
	"callfwd/tables"
	"callfwd/types"
)

// LergRecord is one carrier/rate-center row.
type LergRecord struct {
	Key        uint64
	State      string
	Company    string
	OCN        string
	RateCenter string
	OCNType    string
	LATA       string
	Country    string
}

// LergData is one immutable, finalized LERG version.
type LergData struct {
	Meta   map[string]string
	fine   *batch.Map[LergRecord] // NPA-NXX-X
	coarse *batch.Map[LergRecord] // NPA-NXX
}

// GetLerg looks up a single phone's carrier record, preferring the
// NPA-NXX-X entry and falling back to NPA-NXX.
func (d *LergData) GetLerg(pn uint64) (LergRecord, bool) {
	fineKey := phone.NPANXXX(pn)
	if r, ok := d.fine.Get(fineKey); ok {
		return r, true
	}
	return d.coarse.Get(fineKey / 10)
}

// GetLergs runs the batched fallback lookup over a window of w keys.
func (d *LergData) GetLergs(keys []uint64, w int, out []LergRecord, found []bool) {
	if w < 1 {
		w = 1
	}
	type slot struct {
		fineKey, coarseKey, fineTok, coarseTok uint64
	}
	buf := make([]slot, w)

	batch.ForEachWindow(len(keys), w,
		func(i int) {
			s := &buf[i%w]
			fineKey := phone.NPANXXX(keys[i])
			s.fineKey = fineKey
			s.coarseKey = fineKey / 10
			s.fineTok = batch.Prehash(fineKey)
			s.coarseTok = batch.Prehash(s.coarseKey)
		},
		func(i int) {
			s := &buf[i%w]
			if r, ok := d.fine.GetHashed(s.fineKey, s.fineTok); ok {
				out[i], found[i] = r, true
				return
			}
			if r, ok := d.coarse.GetHashed(s.coarseKey, s.coarseTok); ok {
				out[i], found[i] = r, true
				return
			}
			found[i] = false
		},
	)
}

// LergBuilder assembles one draft LERG version.
type LergBuilder struct {
	meta   map[string]string
	fine   *batch.Map[LergRecord]
	coarse *batch.Map[LergRecord]
	fineN  int
	coarseN int
}

// NewLergBuilder returns an empty LergBuilder.
func NewLergBuilder() *LergBuilder {
	return &LergBuilder{
		fine:   batch.New[LergRecord](1),
		coarse: batch.New[LergRecord](1),
	}
}

// SizeHint preallocates capacity for numRecords rows in each dictionary.
func (b *LergBuilder) SizeHint(numRecords int) {
	b.fine = batch.New[LergRecord](numRecords)
	b.coarse = batch.New[LergRecord](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *LergBuilder) SetMetadata(meta map[string]string) { b.meta = meta }

// addFine inserts rec keyed by its NPA-NXX-X key.
func (b *LergBuilder) addFine(rec LergRecord) error {
	if b.fineN >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.fine.Insert(rec.Key, rec); dup {
		return tables.DuplicateKey
	}
	b.fineN++
	return nil
}

// addCoarse inserts rec keyed by its NPA-NXX key.
func (b *LergBuilder) addCoarse(rec LergRecord) error {
	if b.coarseN >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.coarse.Insert(rec.Key, rec); dup {
		return tables.DuplicateKey
	}
	b.coarseN++
	return nil
}

// FromCSV consumes up to limit lines of 10-column LERG rows from r:
// npa,nxx,x,<unused>,company,ocn,rate_center,ocn_type,lata,country. A
// blank third column routes the row to the NPA-NXX dictionary; otherwise
// it's inserted at NPA-NXX-X. Lines not starting with a digit are
// skipped silently.
func (b *LergBuilder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() != 10 {
			return tables.BadColumns
		}
		npaVal := parseDigits(row.Col(0))
		nxxVal := parseDigits(row.Col(1))
		rec := LergRecord{
			Company:    string(row.Col(4)),
			OCN:        string(row.Col(5)),
			RateCenter: string(row.Col(6)),
			OCNType:    string(row.Col(7)),
			LATA:       string(row.Col(8)),
			Country:    string(row.Col(9)),
		}

		if len(row.Col(2)) == 0 {
			rec.Key = npaVal*1000 + nxxVal
			return b.addCoarse(rec)
		}
		xVal := parseDigits(row.Col(2))
		rec.Key = npaVal*10000 + nxxVal*10 + xVal
		return b.addFine(rec)
	})
}

// parseDigits reads an unsigned decimal integer from b, hand-scanned the
// same way phone.Parse reads digits.
//
//go:nosplit
//go:inline
func parseDigits(b []byte) uint64 {
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
// empty state (mirrors LergMapping::Builder::build's swap-out-data_
// idiom — see lrn.Builder.Build).
func (b *LergBuilder) Build() *LergData {
	d := &LergData{Meta: b.meta, fine: b.fine, coarse: b.coarse}

	b.meta = nil
	b.fine = batch.New[LergRecord](1)
	b.coarse = batch.New[LergRecord](1)
	b.fineN = 0
	b.coarseN = 0
	return d
}
