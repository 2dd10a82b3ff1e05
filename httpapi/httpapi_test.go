package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"callfwd/compose"
	"callfwd/lrn"
)

func testEngine(t *testing.T) *compose.Engine {
	t.Helper()
	b := lrn.NewBuilder()
	if err := b.AddRow(2125550001, 2125559999); err != nil {
		t.Fatal(err)
	}
	var e compose.Engine
	e.USLRN.Publish(b.Build(), nil)
	return &e
}

func TestLookupReturnsServiceUnavailableBeforePublish(t *testing.T) {
	var e compose.Engine
	router := NewRouter(&e, 100, 4)

	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader(url.Values{"phone[]": {"2125550001"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestLookupTextResponse(t *testing.T) {
	router := NewRouter(testEngine(t), 100, 4)

	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader(url.Values{"phone[]": {"2125550001"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lrn=2125559999") {
		t.Fatalf("expected resolved lrn in body, got %q", rec.Body.String())
	}
}

func TestReverseRejectsOverlongPrefix(t *testing.T) {
	router := NewRouter(testEngine(t), 100, 4)

	req := httptest.NewRequest(http.MethodGet, "/v1/reverse/12345678901", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlong prefix, got %d", rec.Code)
	}
}

func TestReverseScansMatchingPrefix(t *testing.T) {
	router := NewRouter(testEngine(t), 100, 4)

	req := httptest.NewRequest(http.MethodGet, "/v1/reverse/212", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "2125550001,2125559999") {
		t.Fatalf("expected matching row in body, got %q", rec.Body.String())
	}
}
