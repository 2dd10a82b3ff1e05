package control

import (
	"sync/atomic"
	"testing"
)

func resetFlags() {
	atomic.StoreUint32(&reloading, 0)
	atomic.StoreUint32(&stop, 0)
}

func TestSignalReloadSetsFlag(t *testing.T) {
	resetFlags()
	defer resetFlags()

	SignalReload()
	r, _ := Flags()
	if atomic.LoadUint32(r) != 1 {
		t.Fatal("expected reloading flag set after SignalReload")
	}
}

func TestClearReloadResetsFlag(t *testing.T) {
	resetFlags()
	defer resetFlags()

	SignalReload()
	ClearReload()
	r, _ := Flags()
	if atomic.LoadUint32(r) != 0 {
		t.Fatal("expected reloading flag cleared after ClearReload")
	}
}

func TestShutdownSetsStopFlag(t *testing.T) {
	resetFlags()
	defer resetFlags()

	Shutdown()
	_, s := Flags()
	if atomic.LoadUint32(s) != 1 {
		t.Fatal("expected stop flag set after Shutdown")
	}
}

func TestFlagsReturnsLiveAddresses(t *testing.T) {
	resetFlags()
	defer resetFlags()

	r, s := Flags()
	if r != &reloading || s != &stop {
		t.Fatal("Flags should return addresses of the package globals, not copies")
	}

	SignalReload()
	if atomic.LoadUint32(r) != 1 {
		t.Fatal("pointer returned by Flags should observe later SignalReload calls")
	}
}
