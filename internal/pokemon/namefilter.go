package pokemon

import "strings"

// FilterByName keeps records whose name contains query, ignoring case.
// A blank query leaves the roster as is.
func FilterByName(roster []Record, query string) []Record {
	if strings.TrimSpace(query) == "" {
		return clone(roster)
	}
	q := strings.ToLower(query)
	return keep(roster, func(r Record) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	})
}

// keep returns a fresh slice of the records matching pred, in input order.
func keep(roster []Record, pred func(Record) bool) []Record {
	out := make([]Record, 0, len(roster))
	for _, r := range roster {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func clone(roster []Record) []Record {
	out := make([]Record, len(roster))
	copy(out, roster)
	return out
}
