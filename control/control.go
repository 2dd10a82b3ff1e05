// control.go — Global reload/shutdown signaling for the registry
// ============================================================================
// SYSTEM CONTROL ORCHESTRATION
// ============================================================================
//
// Lightweight global signaling infrastructure coordinating reload activity
// and graceful shutdown across the HTTP query layer and the background CSV
// reload worker, with zero-allocation operations.
//
// Architecture overview:
//   • Global reloading/stop flags for lock-free inter-goroutine signaling
//   • Zero-allocation flag access for hot request-handling code
//   • Graceful shutdown coordination across all HTTP connections
//
// Threading model:
//   • SignalReload()/ClearReload() set and clear the reloading flag; no
//     code in this module outside its tests calls them or reads Flags().
//     The query path never consults these flags.
//   • Shutdown() is called once by cmd/callfwdd's signal handler.
//
// Safety guarantees:
//   • Race-free flag access via sync/atomic.
//   • Deterministic shutdown behavior across all goroutines.
package control

import "sync/atomic"

// ============================================================================
// GLOBAL STATE MANAGEMENT
// ============================================================================

var (
	reloading uint32 // 1 while any table's builder is mid-commit
	stop      uint32 // 1 once graceful shutdown has been requested
)

// ============================================================================
// RELOAD SIGNALING
// ============================================================================

// SignalReload marks a registry commit as in flight by setting the
// reloading flag.
//
//go:nosplit
//go:inline
func SignalReload() {
	atomic.StoreUint32(&reloading, 1)
}

// ClearReload marks the in-flight commit as finished.
//
//go:nosplit
//go:inline
func ClearReload() {
	atomic.StoreUint32(&reloading, 0)
}

// ============================================================================
// SYSTEM SHUTDOWN (GRACEFUL TERMINATION)
// ============================================================================

// Shutdown initiates graceful system termination by setting the global stop
// flag. The HTTP handlers do not read it; cmd/callfwdd stops the server
// itself via http.Server.Shutdown.
//
//go:nosplit
//go:inline
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// ============================================================================
// FLAG ACCESS
// ============================================================================

// Flags returns direct pointers to the global coordination flags for
// zero-allocation polling: (*reloading, *stop).
//
//go:nosplit
//go:inline
func Flags() (*uint32, *uint32) {
	return &reloading, &stop
}
