package pokemon

import "testing"

func TestFilterByType(t *testing.T) {
	tests := []struct {
		name   string
		s1, s2 Selector
		want   []string
	}{
		{name: "none none", s1: None, s2: None, want: []string{}},
		{name: "none any", s1: None, s2: Any, want: []string{"0004", "0007", "0009", "0025"}},
		{name: "any none", s1: Any, s2: None, want: []string{"0004", "0007", "0009", "0025"}},
		{name: "any any", s1: Any, s2: Any, want: []string{"0006", "0721"}},
		{name: "same real type", s1: Selector(TypeFire), s2: Selector(TypeFire), want: []string{}},
		{name: "fire water", s1: Selector(TypeFire), s2: Selector(TypeWater), want: []string{"0721"}},
		{name: "water fire", s1: Selector(TypeWater), s2: Selector(TypeFire), want: []string{"0721"}},
		{name: "fire any", s1: Selector(TypeFire), s2: Any, want: []string{"0006", "0004", "0721"}},
		{name: "any flying", s1: Any, s2: Selector(TypeFlying), want: []string{"0006"}},
		{name: "no match", s1: Selector(TypeGhost), s2: Any, want: []string{}},
		{name: "fire none fallback", s1: Selector(TypeFire), s2: None, want: []string{"0006", "0004", "0721"}},
		{name: "unknown selector", s1: Selector("火"), s2: Any, want: []string{}},
		{name: "unknown second selector", s1: Any, s2: Selector("fire"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterByType(testRoster(), tt.s1, tt.s2))
			if !sameIDs(got, tt.want) {
				t.Errorf("FilterByType(%s, %s) = %v, want %v", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestFilterByTypeSameTypeEvenWhenPresent(t *testing.T) {
	roster := testRoster()
	if len(FilterByType(roster, Selector(TypeFire), Any)) == 0 {
		t.Fatal("fixture should contain fire types")
	}
	if got := FilterByType(roster, Selector(TypeFire), Selector(TypeFire)); len(got) != 0 {
		t.Errorf("expected empty result for 炎+炎, got %v", ids(got))
	}
}

func TestFilterByTypePartition(t *testing.T) {
	roster := testRoster()
	dual := FilterByType(roster, Any, Any)
	mono := FilterByType(roster, None, Any)

	if len(dual)+len(mono) != len(roster) {
		t.Fatalf("partition sizes %d+%d != %d", len(dual), len(mono), len(roster))
	}
	seen := make(map[string]bool)
	for _, r := range append(dual, mono...) {
		if seen[r.ID] {
			t.Errorf("record %s in both halves", r.ID)
		}
		seen[r.ID] = true
	}
	for _, r := range roster {
		if !seen[r.ID] {
			t.Errorf("record %s missing from partition", r.ID)
		}
	}
}

func TestFilterByTypeIdempotent(t *testing.T) {
	pairs := [][2]Selector{
		{Any, Any},
		{None, Any},
		{Selector(TypeFire), Any},
		{Selector(TypeFire), Selector(TypeWater)},
	}
	for _, p := range pairs {
		once := FilterByType(testRoster(), p[0], p[1])
		twice := FilterByType(once, p[0], p[1])
		if !sameIDs(ids(once), ids(twice)) {
			t.Errorf("FilterByType(%s, %s) not idempotent: %v then %v", p[0], p[1], ids(once), ids(twice))
		}
	}
}

func TestFilterByTypeSameTypeRecordDoesNotPanic(t *testing.T) {
	roster := []Record{{ID: "x", Name: "broken", Type1: TypeFire, Type2: TypeFire}}
	if got := FilterByType(roster, Any, Any); len(got) != 1 {
		t.Errorf("expected malformed dual-typed record to pass Any+Any, got %d", len(got))
	}
	if got := FilterByType(roster, Selector(TypeFire), Any); len(got) != 1 {
		t.Errorf("expected malformed record to match 炎, got %d", len(got))
	}
}

func TestFilterByTypeDoesNotAliasInput(t *testing.T) {
	roster := testRoster()
	out := FilterByType(roster, Selector(TypeFire), Any)
	out[0].Name = "changed"
	if roster[0].Name == "changed" {
		t.Error("result shares backing array with input")
	}
}
