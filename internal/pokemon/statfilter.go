package pokemon

import (
	"fmt"
	"strconv"
	"strings"
)

// StatKey is the one-letter stat code used by the roster API (h, a, b, c,
// d, s) plus t for the total.
type StatKey string

const (
	StatHP        StatKey = "h"
	StatAttack    StatKey = "a"
	StatDefense   StatKey = "b"
	StatSpAttack  StatKey = "c"
	StatSpDefense StatKey = "d"
	StatSpeed     StatKey = "s"
	StatTotal     StatKey = "t"
)

// BattleStats are the six per-stat keys in card order.
var BattleStats = []StatKey{StatHP, StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed}

// AllStatKeys adds the total to BattleStats.
var AllStatKeys = append(append([]StatKey{}, BattleStats...), StatTotal)

// Label returns the uppercase card label, e.g. "H".
func (k StatKey) Label() string {
	return strings.ToUpper(string(k))
}

// Valid reports whether k is a known stat key.
func (k StatKey) Valid() bool {
	for _, v := range AllStatKeys {
		if v == k {
			return true
		}
	}
	return false
}

// Op is a stat comparison operator.
type Op string

const (
	OpGTE Op = "gte"
	OpLTE Op = "lte"
	OpEQ  Op = "eq"
)

// Valid reports whether o is one of gte, lte, eq.
func (o Op) Valid() bool {
	return o == OpGTE || o == OpLTE || o == OpEQ
}

// StatCondition constrains one base stat against a threshold.
type StatCondition struct {
	Stat StatKey
	Op   Op
	Line int
}

func (c StatCondition) String() string {
	return fmt.Sprintf("%s:%s:%d", c.Stat, c.Op, c.Line)
}

// Match reports whether the record satisfies the condition. A condition
// with an unknown key or operator matches nothing.
func (c StatCondition) Match(r Record) bool {
	if !c.Stat.Valid() {
		return false
	}
	v := r.Stats.Get(c.Stat)
	switch c.Op {
	case OpGTE:
		return v >= c.Line
	case OpLTE:
		return v <= c.Line
	case OpEQ:
		return v == c.Line
	}
	return false
}

// ParseStatCondition parses "key:op:line", e.g. "s:gte:100".
func ParseStatCondition(s string) (StatCondition, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return StatCondition{}, fmt.Errorf("pokemon: stat condition %q: want key:op:line", s)
	}
	key := StatKey(strings.ToLower(parts[0]))
	if !key.Valid() {
		return StatCondition{}, fmt.Errorf("pokemon: stat condition %q: unknown stat %q", s, parts[0])
	}
	op := Op(strings.ToLower(parts[1]))
	if !op.Valid() {
		return StatCondition{}, fmt.Errorf("pokemon: stat condition %q: unknown operator %q", s, parts[1])
	}
	line, err := strconv.Atoi(parts[2])
	if err != nil {
		return StatCondition{}, fmt.Errorf("pokemon: stat condition %q: %w", s, err)
	}
	return StatCondition{Stat: key, Op: op, Line: line}, nil
}

// StatConditionsFromQuery reads "<k>_op" / "<k>_line" pairs for every stat
// key. Pairs with a missing half, an unknown operator or a non-integer line
// are skipped, not rejected.
func StatConditionsFromQuery(get func(string) string) []StatCondition {
	var conds []StatCondition
	for _, k := range AllStatKeys {
		opValue := get(string(k) + "_op")
		lineValue := get(string(k) + "_line")
		if opValue == "" || lineValue == "" {
			continue
		}
		op := Op(opValue)
		if !op.Valid() {
			continue
		}
		line, err := strconv.Atoi(lineValue)
		if err != nil {
			continue
		}
		conds = append(conds, StatCondition{Stat: k, Op: op, Line: line})
	}
	return conds
}

// FilterByStats keeps records that satisfy every condition.
func FilterByStats(roster []Record, conds ...StatCondition) []Record {
	if len(conds) == 0 {
		return clone(roster)
	}
	return keep(roster, func(r Record) bool {
		for _, c := range conds {
			if !c.Match(r) {
				return false
			}
		}
		return true
	})
}
