// Package tables holds the error kinds and shared tunables common to every
// enrichment table's builder and query path.
package tables

import "errors"

// Row/key-space limits shared by every table (see builder invariants).
const (
	// MaxRows is the largest row count a single version may hold: the
	// reverse-index "next" field is 30 bits wide, so row indices must fit.
	MaxRows = (1 << 30) - 1

	// NoNext marks the end of a reverse-index linked list.
	NoNext = MaxRows

	// DefaultWindow is the default prefetch/batch window width for the
	// batched lookup primitive (spec default: 16).
	DefaultWindow = 16
)

// Kind enumerates the engine-internal error conditions a builder or query
// can raise. Kind implements error so callers can compare with errors.Is.
type Kind string

const (
	// DuplicateKey: a builder row collides with an existing key in the
	// same dictionary.
	DuplicateKey Kind = "duplicate key"
	// Overflow: inserting the row would exceed MaxRows.
	Overflow Kind = "row count overflow"
	// BadColumns: a CSV row has an unexpected column count.
	BadColumns Kind = "bad column count"
	// NotAvailable: a query was issued against a table whose registry
	// slot is still null (no version has ever been published).
	NotAvailable Kind = "table not available"
)

func (k Kind) Error() string { return string(k) }

// Is lets errors.Is match a wrapped Kind against its bare form.
func (k Kind) Is(target error) bool {
	var other Kind
	if errors.As(target, &other) {
		return other == k
	}
	return false
}
