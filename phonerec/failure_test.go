package phonerec

import (
	"strings"
	"testing"
)

func TestFailureStripsLeadingCountryCode(t *testing.T) {
	b := NewFailureBuilder()
	line := 0
	in := "12125550001,2021-02-09 04:11:39,2021-07-03 14:53:37,\\N\n"
	if err := b.FromCSV(strings.NewReader(in), &line, 100); err != nil {
		t.Fatal(err)
	}
	d := b.Build()

	r := d.GetFailure(2125550001)
	if r.PN != 2125550001 || r.FirstSeen != "2021-02-09 04:11:39" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestFailureSkipsLinesNotStartingWithOne(t *testing.T) {
	b := NewFailureBuilder()
	line := 0
	in := "phone,first,last\n12125550001,2021-02-09,2021-07-03\n"
	if err := b.FromCSV(strings.NewReader(in), &line, 100); err != nil {
		t.Fatal(err)
	}
	d := b.Build()
	if d.GetFailure(2125550001).PN == 0 {
		t.Fatal("expected data row to be ingested")
	}
}

func TestFailureDuplicateIsSilentlyDropped(t *testing.T) {
	b := NewFailureBuilder()
	b.AddRow(FailureRecord{PN: 2125550001, FirstSeen: "a"})
	b.AddRow(FailureRecord{PN: 2125550001, FirstSeen: "b"})
	d := b.Build()

	if r := d.GetFailure(2125550001); r.FirstSeen != "a" {
		t.Fatalf("expected first insert to win, got %+v", r)
	}
}
