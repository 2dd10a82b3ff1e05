// ════════════════════════════════════════════════════════════════════════════════════════════════
// North American Phone Enrichment Engine - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: process orchestration — flag parsing, CSV load, registry
// publish, HTTP server lifecycle, graceful shutdown.
//
// Architecture:
//   - Phase 1: load Config, open every CSV file present on disk
//   - Phase 2: build and publish each table's first version
//   - Phase 3: serve HTTP until SIGINT/SIGTERM
//
// This is the illustrative HTTP front-end collaborator, not the engine
// itself — kept intentionally thin.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"callfwd/compose"
	"callfwd/config"
	"callfwd/control"
	"callfwd/debug"
	"callfwd/dno"
	"callfwd/httpapi"
	"callfwd/lrn"
	"callfwd/membership"
	"callfwd/phonerec"
	"callfwd/prefixrec"
	"callfwd/telemetry"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		debug.DropError("CONFIG", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.New(reg)

	var engine compose.Engine
	loadAll(&engine, metrics)

	mux := http.NewServeMux()
	mux.Handle("/", httpapi.NewRouter(&engine, cfg.MaxQueryKeys, cfg.PrefetchWindow))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		debug.DropMessage("READY", "listening on "+server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			debug.DropError("SERVE", err)
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	debug.DropMessage("SIGNAL", "received interrupt, shutting down")
	control.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		debug.DropError("SHUTDOWN", err)
	}
	debug.DropMessage("SIGNAL", "shutdown complete")
}

// loadAll builds and publishes every table whose source CSV is present
// under ./data. Each table loads independently; one missing or malformed
// file never blocks the others.
func loadAll(e *compose.Engine, metrics *telemetry.Metrics) {
	loadUSLRN(e, "data/us_lrn.csv", "us_lrn", metrics)
	loadCALRN(e, "data/ca_lrn.csv", "ca_lrn", metrics)
	loadDNC(e, "data/dnc.csv", "dnc", metrics)
	loadTollFree(e, "data/tollfree.csv", "tollfree", metrics)
	loadDNO(e, metrics)
	loadLerg(e, metrics)
	loadGeo(e, metrics)
	loadYoumail(e, metrics)
	loadFtc(e, metrics)
	loadF404(e, "data/f404.csv", "f404", metrics)
	loadF606(e, "data/f606.csv", "f606", metrics)
}

func loadUSLRN(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := lrn.NewBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishUSLRN(b.Build())
	debug.DropMessage(table, "published")
}

func loadCALRN(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := lrn.NewBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishCALRN(b.Build())
	debug.DropMessage(table, "published")
}

func loadDNC(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := membership.NewBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishDNC(b.Build())
	debug.DropMessage(table, "published")
}

func loadTollFree(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := membership.NewBuilder()
	line := 0
	if err := b.FromCSVColumns(f, 3, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishTollFree(b.Build())
	debug.DropMessage(table, "published")
}

func loadDNO(e *compose.Engine, metrics *telemetry.Metrics) {
	files := []struct {
		path string
		lvl  dno.Level
	}{
		{"data/dno_identity.csv", dno.Identity},
		{"data/dno_npa.csv", dno.NPA},
		{"data/dno_npa_nxx.csv", dno.NPANXX},
		{"data/dno_npa_nxx_x.csv", dno.NPANXXX},
	}

	done := metrics.TimeReload("dno")
	defer done()

	b := dno.NewBuilder()
	loadedAny := false
	for _, f := range files {
		r, err := os.Open(f.path)
		if err != nil {
			continue
		}
		loadedAny = true
		line := 0
		err = b.FromCSV(r, f.lvl, &line, 1<<30)
		r.Close()
		if err != nil {
			debug.DropError("dno", err)
		}
	}
	if !loadedAny {
		debug.DropMessage("dno", "no source files, table left unavailable")
		return
	}
	e.PublishDNO(b.Build())
	debug.DropMessage("dno", "published")
}

func loadLerg(e *compose.Engine, metrics *telemetry.Metrics) {
	f, err := os.Open("data/lerg.csv")
	if err != nil {
		debug.DropMessage("lerg", "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload("lerg")
	defer done()

	b := prefixrec.NewLergBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError("lerg", err)
		return
	}
	e.PublishLerg(b.Build())
	debug.DropMessage("lerg", "published")
}

func loadGeo(e *compose.Engine, metrics *telemetry.Metrics) {
	f, err := os.Open("data/geo.csv")
	if err != nil {
		debug.DropMessage("geo", "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload("geo")
	defer done()

	b := prefixrec.NewGeoBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError("geo", err)
		return
	}
	e.PublishGeo(b.Build())
	debug.DropMessage("geo", "published")
}

func loadYoumail(e *compose.Engine, metrics *telemetry.Metrics) {
	f, err := os.Open("data/youmail.csv")
	if err != nil {
		debug.DropMessage("youmail", "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload("youmail")
	defer done()

	b := phonerec.NewYoumailBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError("youmail", err)
		return
	}
	e.PublishYoumail(b.Build())
	debug.DropMessage("youmail", "published")
}

func loadFtc(e *compose.Engine, metrics *telemetry.Metrics) {
	f, err := os.Open("data/ftc.csv")
	if err != nil {
		debug.DropMessage("ftc", "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload("ftc")
	defer done()

	b := phonerec.NewFtcBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError("ftc", err)
		return
	}
	e.PublishFtc(b.Build())
	debug.DropMessage("ftc", "published")
}

func loadF404(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := phonerec.NewFailureBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishF404(b.Build())
	debug.DropMessage(table, "published")
}

func loadF606(e *compose.Engine, path, table string, metrics *telemetry.Metrics) {
	f, err := os.Open(path)
	if err != nil {
		debug.DropMessage(table, "no source file, table left unavailable")
		return
	}
	defer f.Close()

	done := metrics.TimeReload(table)
	defer done()

	b := phonerec.NewFailureBuilder()
	line := 0
	if err := b.FromCSV(f, &line, 1<<30); err != nil {
		debug.DropError(table, err)
		return
	}
	e.PublishF606(b.Build())
	debug.DropMessage(table, "published")
}
