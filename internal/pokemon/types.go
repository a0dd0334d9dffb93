// Package pokemon holds the roster model and the pure filtering and stat
// math used by every front-end. Nothing here does I/O or keeps state.
package pokemon

import (
	"fmt"
	"strings"
)

// Type is one of the 18 elemental types, stored as the single-kanji label
// the roster API ships (e.g. "炎").
type Type string

const (
	TypeNormal   Type = "普"
	TypeFire     Type = "炎"
	TypeWater    Type = "水"
	TypeElectric Type = "電"
	TypeGrass    Type = "草"
	TypeIce      Type = "氷"
	TypeFighting Type = "格"
	TypePoison   Type = "毒"
	TypeGround   Type = "地"
	TypeFlying   Type = "飛"
	TypePsychic  Type = "超"
	TypeBug      Type = "虫"
	TypeRock     Type = "岩"
	TypeGhost    Type = "霊"
	TypeDragon   Type = "竜"
	TypeDark     Type = "悪"
	TypeSteel    Type = "鋼"
	TypeFairy    Type = "妖"
)

// AllTypes lists the vocabulary in the order the type pickers show it.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

var englishNames = map[Type]string{
	TypeNormal:   "normal",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeElectric: "electric",
	TypeGrass:    "grass",
	TypeIce:      "ice",
	TypeFighting: "fighting",
	TypePoison:   "poison",
	TypeGround:   "ground",
	TypeFlying:   "flying",
	TypePsychic:  "psychic",
	TypeBug:      "bug",
	TypeRock:     "rock",
	TypeGhost:    "ghost",
	TypeDragon:   "dragon",
	TypeDark:     "dark",
	TypeSteel:    "steel",
	TypeFairy:    "fairy",
}

// Valid reports whether t is part of the closed vocabulary.
func (t Type) Valid() bool {
	_, ok := englishNames[t]
	return ok
}

// English returns the lowercase English name, or "" for unknown types.
func (t Type) English() string {
	return englishNames[t]
}

func (t Type) String() string {
	return string(t)
}

// Selector is the value of one type-picker slot: a real type or one of the
// sentinels Any and None.
type Selector string

const (
	// Any places no constraint on its slot.
	Any Selector = "Any"
	// None asks for the slot to be empty (no secondary type).
	None Selector = "None"
)

// SelectorOptions lists every value a picker can hold, sentinels first.
func SelectorOptions() []Selector {
	opts := make([]Selector, 0, len(AllTypes)+2)
	opts = append(opts, Any, None)
	for _, t := range AllTypes {
		opts = append(opts, Selector(t))
	}
	return opts
}

// IsAny reports whether s is the Any sentinel.
func (s Selector) IsAny() bool { return s == Any }

// IsNone reports whether s is the None sentinel.
func (s Selector) IsNone() bool { return s == None }

// IsReal reports whether s names an actual type rather than a sentinel.
// Values outside the vocabulary are neither real nor sentinels.
func (s Selector) IsReal() bool {
	return Type(s).Valid()
}

// Valid reports whether s is a sentinel or a known type.
func (s Selector) Valid() bool {
	return s.IsAny() || s.IsNone() || s.IsReal()
}

// ParseSelector accepts a sentinel (any casing), a kanji type label, or an
// English type name and returns the canonical selector. An empty string
// parses as Any, matching a picker that was never touched.
func ParseSelector(s string) (Selector, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Any, nil
	}
	switch strings.ToLower(v) {
	case "any":
		return Any, nil
	case "none":
		return None, nil
	}
	if Type(v).Valid() {
		return Selector(v), nil
	}
	lower := strings.ToLower(v)
	for t, name := range englishNames {
		if name == lower {
			return Selector(t), nil
		}
	}
	return "", fmt.Errorf("pokemon: unknown type selector %q", s)
}
