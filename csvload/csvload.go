// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: csvload.go — shared CSV ingest plumbing for table builders
//
// Purpose:
//   - Scans up to `limit` lines from an already-open byte stream, handing
//     each trimmed line to a table-specific row callback.
//   - CSV file discovery and the raw io.Reader are the HTTP/CLI layer's
//     job (spec.md §1's "out of scope" CSV plumbing); this package only
//     consumes the stream.
//
// Notes:
//   - Column splitting reuses utils.SplitCSVLine's hand-rolled comma scan
//     (no encoding/csv) — the teacher's parser.go idiom of scanning a
//     buffer by hand rather than reaching for an allocation-heavy stdlib
//     reader, applied here to commas instead of JSON field tags.
// ─────────────────────────────────────────────────────────────────────────────

package csvload

import (
	"bufio"
	"io"

	"callfwd/types"
	"callfwd/utils"
)

// RowFunc handles one non-blank CSV line. cols is reused across calls by
// ScanLines — copy anything that must outlive the call (see types.Row's
// doc comment). Returning a non-nil error aborts the scan.
type RowFunc func(row types.Row) error

// ScanLines reads up to `limit` lines from r, advancing *line by the number
// of lines actually read (blank lines count). Each non-blank line is split
// on commas and handed to fn as a types.Row. Scanning stops early if fn
// returns an error, which ScanLines then returns unchanged.
func ScanLines(r io.Reader, line *int, limit int, fn RowFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	cols := make([][]byte, 0, 16)
	read := 0
	for read < limit && sc.Scan() {
		read++
		raw := utils.TrimCR(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		cols = utils.SplitCSVLine(raw, cols)
		if err := fn(types.Row{Cols: cols, Line: raw}); err != nil {
			*line += read
			return err
		}
	}
	*line += read
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}

// StartsWithDigit reports whether b's first byte is an ASCII decimal
// digit. Every table schema except Youmail (leading '+') and F404/F606
// (leading '1', handled by their own predicates) uses this to silently
// skip header rows and blank/garbage lines.
//
//go:nosplit
//go:inline
func StartsWithDigit(b []byte) bool {
	return len(b) > 0 && b[0] >= '0' && b[0] <= '9'
}
