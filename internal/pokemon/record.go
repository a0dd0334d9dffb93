package pokemon

// Stats holds the six base stats. TotalOverride carries the total shipped
// by the API when it differs from the plain sum (it never should, but the
// backend stores it separately).
type Stats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"spAttack"`
	SpDefense int `json:"spDefense"`
	Speed     int `json:"speed"`

	TotalOverride int `json:"total,omitempty"`
}

// Total returns the base stat total.
func (s Stats) Total() int {
	if s.TotalOverride > 0 {
		return s.TotalOverride
	}
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// Get returns the stat addressed by key. Unknown keys return 0.
func (s Stats) Get(key StatKey) int {
	switch key {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpAttack:
		return s.SpAttack
	case StatSpDefense:
		return s.SpDefense
	case StatSpeed:
		return s.Speed
	case StatTotal:
		return s.Total()
	}
	return 0
}

// Record is a single roster entry.
type Record struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEN string `json:"name_en,omitempty"`
	Form   string `json:"form,omitempty"`
	Stats  Stats  `json:"stats"`
	Type1  Type   `json:"type1"`
	Type2  Type   `json:"type2,omitempty"`
}

// DualTyped reports whether the record has a secondary type.
func (r Record) DualTyped() bool {
	return r.Type2 != ""
}

// HasType reports whether either slot holds t.
func (r Record) HasType(t Type) bool {
	return r.Type1 == t || r.Type2 == t
}

// Types returns the record's types in slot order, omitting an empty slot.
func (r Record) Types() []Type {
	if r.Type2 == "" {
		return []Type{r.Type1}
	}
	return []Type{r.Type1, r.Type2}
}

// DisplayName joins the name and form, e.g. "ロトム (ヒート)".
func (r Record) DisplayName() string {
	if r.Form == "" {
		return r.Name
	}
	return r.Name + " (" + r.Form + ")"
}
