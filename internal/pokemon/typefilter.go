package pokemon

// FilterByType applies the two type-picker slots to a roster. The rules are
// checked in order and the first that applies decides the result:
//
//  1. None + None: nothing (mono-typed and dual-typed at once).
//  2. None + Any, either order: single-typed records.
//  3. Any + Any: dual-typed records.
//  4. The same real type in both slots: nothing.
//  5. Each real slot must appear as the primary or secondary type; the two
//     slot constraints are ANDed and Any constrains nothing.
//
// A selector outside the vocabulary yields an empty result.
func FilterByType(roster []Record, s1, s2 Selector) []Record {
	if !s1.Valid() || !s2.Valid() {
		return []Record{}
	}

	switch {
	case s1.IsNone() && s2.IsNone():
		return []Record{}
	case (s1.IsNone() && s2.IsAny()) || (s1.IsAny() && s2.IsNone()):
		return keep(roster, func(r Record) bool { return !r.DualTyped() })
	case s1.IsAny() && s2.IsAny():
		return keep(roster, Record.DualTyped)
	case s1 == s2 && s1.IsReal():
		return []Record{}
	}

	// None next to a real type is unreachable from the pickers; it adds no
	// constraint here.
	out := clone(roster)
	if s1.IsReal() {
		out = keep(out, func(r Record) bool { return r.HasType(Type(s1)) })
	}
	if s2.IsReal() {
		out = keep(out, func(r Record) bool { return r.HasType(Type(s2)) })
	}
	return out
}
