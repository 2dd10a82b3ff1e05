// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — zero-alloc logging helper for cold paths
//
// Purpose:
//   - Logs builder/registry milestones and failures without heap pressure:
//     table publish, CSV ingest errors, startup and shutdown.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - Uses stackless logging model: no alloc, no interfaces.
//
// ⚠️ Never invoke from the batched lookup path — cold-path diagnostics only.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "callfwd/utils"

// DropError logs an error with a custom alloc-free print strategy, writing
// directly to stderr. Used on CSV ingest failure (tables.BadColumns,
// tables.DuplicateKey, tables.Overflow) and reload abort.
//
//go:nosplit
//go:inline
//go:registerparams
func DropError(prefix string, err error) {
	if err != nil {
		msg := prefix + ": " + err.Error() + "\n"
		utils.PrintWarning(msg)
	} else {
		msg := prefix + "\n"
		utils.PrintWarning(msg)
	}
}

// DropMessage logs an informational message with zero-allocation print
// strategy. Used by cmd/callfwdd for table-published, missing-source,
// startup and shutdown messages.
//
//go:nosplit
//go:inline
//go:registerparams
func DropMessage(prefix, message string) {
	msg := prefix + ": " + message + "\n"
	utils.PrintInfo(msg)
}
