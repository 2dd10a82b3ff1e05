package phone

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"2025551212", 2025551212},
		{"12025551212", 2025551212},
		{"+12025551212", 2025551212},
		{"+1 202-555-1212", 2025551212},
		{"202-555-1212", 2025551212},
		{"5551212", NONE},     // too short
		{"12345", NONE},       // too short
		{"0025551212", NONE},  // below minPN
		{"", NONE},
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.want {
			t.Errorf("Parse(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(2025551212); got != "2025551212" {
		t.Errorf("Format = %q", got)
	}
	if got := Format(NONE); got != "" {
		t.Errorf("Format(NONE) = %q, want empty", got)
	}
}

func TestDerivedKeys(t *testing.T) {
	pn := uint64(2025551212)
	if got := NPA(pn); got != 202 {
		t.Errorf("NPA = %d, want 202", got)
	}
	if got := NPANXX(pn); got != 202555 {
		t.Errorf("NPANXX = %d, want 202555", got)
	}
	if got := NPANXXX(pn); got != 2025551 {
		t.Errorf("NPANXXX = %d, want 2025551", got)
	}
}

func TestRoundTrip(t *testing.T) {
	pn := Parse("4155550001")
	if Format(pn) != "4155550001" {
		t.Errorf("round trip failed: %d", pn)
	}
}
