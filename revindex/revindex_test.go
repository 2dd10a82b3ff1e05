package revindex

import "testing"

func TestBuildAndScanOrdering(t *testing.T) {
	// Three phones share routing number 100 (inserted in this order),
	// one phone sits alone on 200.
	pns := []uint64{2125550001, 2125550002, 3105550003, 2125550004}
	rns := []uint64{100, 200, 100, 100}

	primary, secondary := Build(pns, rns)
	if len(secondary) != 2 {
		t.Fatalf("expected 2 distinct routing numbers, got %d", len(secondary))
	}

	c := NewCursor(primary, secondary, 0, 1000)
	var got []uint64
	var rnsSeen []uint64
	for c.HasRow() {
		got = append(got, c.CurrentPrimary())
		rnsSeen = append(rnsSeen, c.CurrentSecondary())
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
	for i := 0; i < 3; i++ {
		if rnsSeen[i] != 100 {
			t.Fatalf("expected rn 100 at position %d, got %d", i, rnsSeen[i])
		}
	}
	if rnsSeen[3] != 200 {
		t.Fatalf("expected rn 200 last, got %d", rnsSeen[3])
	}
}

func TestRangeBounds(t *testing.T) {
	pns := []uint64{2125550001, 2125550002, 2125550003}
	rns := []uint64{100, 200, 300}
	primary, secondary := Build(pns, rns)

	c := NewCursor(primary, secondary, 150, 300)
	if !c.HasRow() || c.CurrentPrimary() != 2125550002 {
		t.Fatalf("expected only rn 200 in [150,300)")
	}
	c.Advance()
	if c.HasRow() {
		t.Fatal("expected exactly one row in range")
	}
}

func TestEmptyBuild(t *testing.T) {
	primary, secondary := Build(nil, nil)
	c := NewCursor(primary, secondary, 0, 100)
	if c.HasRow() {
		t.Fatal("empty index should yield no rows")
	}
}
