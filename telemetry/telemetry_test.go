package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordLookupsIncrementsByTable(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordLookups("lrn", 3, 1)
	m.RecordLookups("dnc", 0, 4)

	var metric dto.Metric
	if err := m.TableHit.WithLabelValues("lrn").Write(&metric); err != nil {
		t.Fatal(err)
	}
	if metric.GetCounter().GetValue() != 3 {
		t.Fatalf("expected 3 hits for lrn, got %v", metric.GetCounter().GetValue())
	}
}

func TestTimeReloadBumpsGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	done := m.TimeReload("geo")
	done()

	var metric dto.Metric
	if err := m.RegistryGeneration.WithLabelValues("geo").Write(&metric); err != nil {
		t.Fatal(err)
	}
	if metric.GetGauge().GetValue() != 1 {
		t.Fatalf("expected generation 1 after one reload, got %v", metric.GetGauge().GetValue())
	}
}
