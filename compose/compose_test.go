package compose

import (
	"strings"
	"testing"

	"callfwd/lrn"
	"callfwd/membership"
	"callfwd/phonerec"
	"callfwd/prefixrec"
)

func buildUSLRN(t *testing.T, rows map[uint64]uint64) *lrn.Data {
	t.Helper()
	b := lrn.NewBuilder()
	for pn, rn := range rows {
		if err := b.AddRow(pn, rn); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

func TestQueryOmitsUnpublishedTables(t *testing.T) {
	var e Engine
	e.USLRN.Publish(buildUSLRN(t, map[uint64]uint64{2125550001: 2125559999}), nil)

	rows := e.Query([]uint64{2125550001}, 4)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if !r.HasRN || r.RN != 2125559999 {
		t.Fatalf("expected resolved RN, got %+v", r)
	}
	if r.Lerg != nil || r.Youmail != nil || r.Geo != nil {
		t.Fatalf("expected unpublished tables to be omitted, got %+v", r)
	}
}

func TestQueryCAFallsBackWhenUSAbsent(t *testing.T) {
	var e Engine
	e.USLRN.Publish(buildUSLRN(t, map[uint64]uint64{}), nil)
	e.CALRN.Publish(buildUSLRN(t, map[uint64]uint64{4165550001: 4165559999}), nil)

	rows := e.Query([]uint64{4165550001}, 4)
	if !rows[0].HasRN || rows[0].RN != 4165559999 {
		t.Fatalf("expected CA fallback RN, got %+v", rows[0])
	}
}

func TestLergKeyPolicyPrefersResolvedRN(t *testing.T) {
	var e Engine
	e.USLRN.Publish(buildUSLRN(t, map[uint64]uint64{2125550001: 3015550002}), nil)

	lb := prefixrec.NewLergBuilder()
	csv := "301,555,0,,RN-OWNER,1,rc,ocn,lata,US\n" +
		"212,555,0,,PN-OWNER,2,rc,ocn,lata,US\n"
	line := 0
	if err := lb.FromCSV(strings.NewReader(csv), &line, 100); err != nil {
		t.Fatal(err)
	}
	e.Lerg.Publish(lb.Build(), nil)

	rows := e.Query([]uint64{2125550001}, 4)
	if rows[0].Lerg == nil || rows[0].Lerg.Company != "RN-OWNER" {
		t.Fatalf("expected LERG lookup keyed by routing number, got %+v", rows[0].Lerg)
	}
}

func TestReverseYieldsUSBeforeCA(t *testing.T) {
	var e Engine
	e.USLRN.Publish(buildUSLRN(t, map[uint64]uint64{2125550001: 2125559999}), nil)
	e.CALRN.Publish(buildUSLRN(t, map[uint64]uint64{2125550002: 2125559998}), nil)

	var seen []uint64
	err := e.Reverse(2000000000, 3000000000, func(pn, rn uint64) {
		seen = append(seen, pn)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != 2125550001 || seen[1] != 2125550002 {
		t.Fatalf("expected US row before CA row, got %v", seen)
	}
}

func TestIsAvailableGatesOnEitherLRN(t *testing.T) {
	var e Engine
	if e.IsAvailable() {
		t.Fatal("expected unavailable before any publish")
	}
	e.CALRN.Publish(buildUSLRN(t, map[uint64]uint64{}), nil)
	if !e.IsAvailable() {
		t.Fatal("expected available once either LRN slot is published")
	}
}

func TestMembershipAndYoumailComposeIndependently(t *testing.T) {
	var e Engine
	e.USLRN.Publish(buildUSLRN(t, map[uint64]uint64{}), nil)

	mb := membership.NewBuilder()
	if err := mb.AddRow(2125550001); err != nil {
		t.Fatal(err)
	}
	e.DNC.Publish(mb.Build(), nil)

	yb := phonerec.NewYoumailBuilder()
	if err := yb.AddRow(phonerec.YoumailRecord{PN: 2125550001, SpamScore: "HIGH"}); err != nil {
		t.Fatal(err)
	}
	e.Youmail.Publish(yb.Build(), nil)

	rows := e.Query([]uint64{2125550001, 3105550002}, 4)
	if !rows[0].HasDNC || !rows[0].DNC {
		t.Fatalf("expected row 0 flagged DNC, got %+v", rows[0])
	}
	if rows[1].HasDNC && rows[1].DNC {
		t.Fatalf("expected row 1 not on DNC, got %+v", rows[1])
	}
	if rows[0].Youmail == nil || rows[0].Youmail.SpamScore != "HIGH" {
		t.Fatalf("expected youmail record on row 0, got %+v", rows[0].Youmail)
	}
	if rows[1].Youmail != nil {
		t.Fatalf("expected no youmail record on row 1, got %+v", rows[1].Youmail)
	}
}
