package lrn

import (
	"strings"
	"testing"

	"callfwd/phone"
	"callfwd/tables"
)

func TestForwardLookup(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRow(2125550001, 2125559999); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRow(3105550002, phone.NONE+1); err != nil {
		t.Fatal(err)
	}
	d := b.Build()

	keys := []uint64{2125550001, 3105550002, 4155550003}
	out := make([]uint64, len(keys))
	found := make([]bool, len(keys))
	d.GetRNs(keys, 2, out, found)

	if !found[0] || out[0] != 2125559999 {
		t.Fatalf("row 0: got %d, %v", out[0], found[0])
	}
	if found[2] {
		t.Fatalf("row 2 should be absent")
	}
	if d.GetRN(4155550003) != phone.NONE {
		t.Fatal("expected NONE for unported number")
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRow(2125550001, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRow(2125550001, 200); err != tables.DuplicateKey {
		t.Fatalf("expected DuplicateKey, got %v", err)
	}
}

func TestBuildLeavesBuilderEmpty(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRow(2125550001, 2125559999); err != nil {
		t.Fatal(err)
	}
	b.Build()

	if err := b.AddRow(2125550001, 2125559999); err != nil {
		t.Fatalf("expected builder to accept a fresh row after Build, got %v", err)
	}
	d := b.Build()
	if d.Size() != 1 {
		t.Fatalf("expected the post-Build draft to contain only the row added after Build, got size %d", d.Size())
	}
}

func TestInverseRNsOrdering(t *testing.T) {
	b := NewBuilder()
	rows := [][2]uint64{
		{2125550001, 100},
		{2125550002, 200},
		{3105550003, 100},
		{2125550004, 100},
	}
	for _, r := range rows {
		if err := b.AddRow(r[0], r[1]); err != nil {
			t.Fatal(err)
		}
	}
	d := b.Build()

	c := d.InverseRNs(0, 1000)
	var got []uint64
	for c.HasRow() {
		got = append(got, c.CurrentPrimary())
		c.Advance()
	}
	want := []uint64{2125550001, 3105550003, 2125550004, 2125550002}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFromCSVSkipsHeaderAndBlankLines(t *testing.T) {
	b := NewBuilder()
	in := "pn,rn\n\n2125550001,2125559999\n3105550002,3105559998\n"
	line := 0
	if err := b.FromCSV(strings.NewReader(in), &line, 100); err != nil {
		t.Fatal(err)
	}
	d := b.Build()
	if d.Size() != 2 {
		t.Fatalf("expected 2 rows ingested, got %d", d.Size())
	}
	if line != 4 {
		t.Fatalf("expected 4 lines consumed, got %d", line)
	}
}

func TestFromCSVBadColumnCount(t *testing.T) {
	b := NewBuilder()
	in := "2125550001,2125559999,extra\n"
	line := 0
	if err := b.FromCSV(strings.NewReader(in), &line, 100); err != tables.BadColumns {
		t.Fatalf("expected BadColumns, got %v", err)
	}
}
