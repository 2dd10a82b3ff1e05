package membership

import (
	"strings"
	"testing"

	"callfwd/tables"
)

func TestIsMember(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRow(2125550001); err != nil {
		t.Fatal(err)
	}
	d := b.Build()

	if !d.IsMember(2125550001) {
		t.Fatal("expected member")
	}
	if d.IsMember(3105550002) {
		t.Fatal("expected non-member")
	}
}

func TestGetMembershipsBatch(t *testing.T) {
	b := NewBuilder()
	b.AddRow(2125550001)
	b.AddRow(3105550002)
	d := b.Build()

	keys := []uint64{2125550001, 4155550003, 3105550002}
	found := make([]bool, len(keys))
	d.GetMemberships(keys, 2, found)

	if !found[0] || found[1] || !found[2] {
		t.Fatalf("unexpected membership results: %v", found)
	}
}

func TestDuplicateKey(t *testing.T) {
	b := NewBuilder()
	b.AddRow(2125550001)
	if err := b.AddRow(2125550001); err != tables.DuplicateKey {
		t.Fatalf("expected DuplicateKey, got %v", err)
	}
}

func TestBuildLeavesBuilderEmpty(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRow(2125550001); err != nil {
		t.Fatal(err)
	}
	b.Build()

	if err := b.AddRow(2125550001); err != nil {
		t.Fatalf("expected builder to accept a fresh row after Build, got %v", err)
	}
	d := b.Build()
	if d.Size() != 1 {
		t.Fatalf("expected the post-Build draft to contain only the row added after Build, got size %d", d.Size())
	}
}

func TestAllMembersEnumeratesInInsertionOrder(t *testing.T) {
	b := NewBuilder()
	pns := []uint64{2125550001, 3105550002, 4155550003}
	for _, pn := range pns {
		if err := b.AddRow(pn); err != nil {
			t.Fatal(err)
		}
	}
	d := b.Build()

	c := d.AllMembers()
	var got []uint64
	for c.HasRow() {
		got = append(got, c.CurrentPrimary())
		c.Advance()
	}
	if len(got) != len(pns) {
		t.Fatalf("got %v, want %v", got, pns)
	}
	for i := range pns {
		if got[i] != pns[i] {
			t.Fatalf("position %d: got %d, want %d", i, got[i], pns[i])
		}
	}
}

func TestFromCSVSkipsBlankAndHeaderLines(t *testing.T) {
	b := NewBuilder()
	in := "phone\n\n2125550001\n3105550002\n"
	line := 0
	if err := b.FromCSV(strings.NewReader(in), &line, 100); err != nil {
		t.Fatal(err)
	}
	d := b.Build()
	if d.Size() != 2 {
		t.Fatalf("expected 2 rows, got %d", d.Size())
	}
}

func TestFromCSVColumnsAcceptsTollFreeThreeColumnSchema(t *testing.T) {
	b := NewBuilder()
	in := "8005550001,x,y\n8885550002,x,y\n"
	line := 0
	if err := b.FromCSVColumns(strings.NewReader(in), 3, &line, 100); err != nil {
		t.Fatal(err)
	}
	d := b.Build()
	if !d.IsMember(8005550001) || !d.IsMember(8885550002) {
		t.Fatal("expected both toll-free rows to be members")
	}
}

func TestFromCSVColumnsRejectsWrongColumnCount(t *testing.T) {
	b := NewBuilder()
	line := 0
	err := b.FromCSVColumns(strings.NewReader("8005550001\n"), 3, &line, 100)
	if err != tables.BadColumns {
		t.Fatalf("expected BadColumns for single-column row under 3-column schema, got %v", err)
	}
}
