// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: geo.go — geographic locale table, keyed by NPA-NXX
//
// Grounded on:
//   - GeoMapping.cpp's single dict<NPA-NXX, GeoData> and getGeos()'s
//     single-token prehash loop.
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

// GeoRecord is one geographic-locale row.
type GeoRecord struct {
	NPANXX    uint64
	Zipcode   string
	County    string
	City      string
	Latitude  string
	Longitude string
	Timezone  string
}

// GeoData is one immutable, finalized Geo version.
type GeoData struct {
	Meta map[string]string
	dict *batch.Map[GeoRecord]
}

// GetGeo looks up a single phone's geographic record by its NPA-NXX.
func (d *GeoData) GetGeo(pn uint64) (GeoRecord, bool) {
	return d.dict.Get(phone.NPANXX(pn))
}

func npaNxx(pn uint64) uint64 { return phone.NPANXX(pn) }

// GetGeos runs the batched lookup over a window of w keys.
func (d *GeoData) GetGeos(keys []uint64, w int, out []GeoRecord, found []bool) {
	batch.Lookup(d.dict, keys, npaNxx, w, out, found)
}

// GeoBuilder assembles one draft Geo version.
type GeoBuilder struct {
	meta map[string]string
	dict *batch.Map[GeoRecord]
	n    int
}

// NewGeoBuilder returns an empty GeoBuilder.
func NewGeoBuilder() *GeoBuilder {
	return &GeoBuilder{dict: batch.New[GeoRecord](1)}
}

// SizeHint preallocates capacity for numRecords rows.
func (b *GeoBuilder) SizeHint(numRecords int) {
	b.dict = batch.New[GeoRecord](numRecords)
}

// SetMetadata attaches free-form metadata to the draft.
func (b *GeoBuilder) SetMetadata(meta map[string]string) { b.meta = meta }

// AddRow inserts one Geo record, keyed by rec.NPANXX.
func (b *GeoBuilder) AddRow(rec GeoRecord) error {
	if b.n >= tables.MaxRows {
		return tables.Overflow
	}
	if dup := b.dict.Insert(rec.NPANXX, rec); dup {
		return tables.DuplicateKey
	}
	b.n++
	return nil
}

// FromCSV consumes up to limit lines of Geo rows from r. The source file
// has 20 columns; this engine only needs NPA-NXX (col 0), zipcode (col
// 1), city (col 6), latitude (col 9), county (col 10), longitude (col
// 11), and timezone (col 19) — the rest are carried by upstream file
// discovery, out of this table's scope. Lines not starting with a digit
// are skipped silently.
func (b *GeoBuilder) FromCSV(r io.Reader, line *int, limit int) error {
	return csvload.ScanLines(r, line, limit, func(row types.Row) error {
		if !csvload.StartsWithDigit(row.Line) {
			return nil
		}
		if row.Len() < 20 {
			return tables.BadColumns
		}
		npanxx := parseDigits(row.Col(0))
		if npanxx == 0 {
			return tables.BadColumns
		}
		return b.AddRow(GeoRecord{
			NPANXX:    npanxx,
			Zipcode:   string(row.Col(1)),
			City:      string(row.Col(6)),
			Latitude:  string(row.Col(9)),
			County:    string(row.Col(10)),
			Longitude: string(row.Col(11)),
			Timezone:  string(row.Col(19)),
		})
	})
}

// Build returns the immutable version and resets the builder to a fresh
// empty state (mirrors GeoMapping::Builder::build's swap-out-data_ idiom —
// see lrn.Builder.Build).
func (b *GeoBuilder) Build() *GeoData {
	d := &GeoData{Meta: b.meta, dict: b.dict}

	b.meta = nil
	b.dict = batch.New[GeoRecord](1)
	b.n = 0
	return d
}
