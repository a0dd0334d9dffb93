package pokemon

// Query is everything a front-end can ask of a roster in one pass. The zero
// value (blank name, Any/Any after normalisation) is not the same as "no
// filter": Any+Any keeps dual-typed records only. Use NewQuery for the
// picker defaults.
type Query struct {
	Name  string          `json:"name,omitempty"`
	Type1 Selector        `json:"type1"`
	Type2 Selector        `json:"type2"`
	Stats []StatCondition `json:"stats,omitempty"`

	// NoTypeFilter skips the type step entirely. The browser starts (and
	// resets) in this state and leaves it on the first applied search.
	NoTypeFilter bool `json:"-"`
}

// NewQuery returns a query with both pickers on Any and the type step off,
// which passes the whole roster through.
func NewQuery() Query {
	return Query{Type1: Any, Type2: Any, NoTypeFilter: true}
}

// Apply runs name, stat and type filters over roster. Each step is a subset
// predicate over different fields, so the order does not change the result.
func Apply(roster []Record, q Query) []Record {
	out := FilterByName(roster, q.Name)
	out = FilterByStats(out, q.Stats...)
	if q.NoTypeFilter {
		return out
	}
	return FilterByType(out, normalize(q.Type1), normalize(q.Type2))
}

func normalize(s Selector) Selector {
	if s == "" {
		return Any
	}
	return s
}
