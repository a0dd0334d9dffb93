package pokemon

import "fmt"

// Fixed competitive assumptions for the stat ranges.
const (
	Level = 50
	// MaxIV is the individual value assumed for every stat.
	MaxIV = 31
	// FullEV is the effort contribution of 252 EVs, i.e. 252/4.
	FullEV = 63

	hpOffset   = Level + 10
	statOffset = 5
)

// Bounds is the lowest and highest actual stat reachable from a base stat.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Bounds) String() string {
	return FormatBounds(b)
}

// FormatBounds renders bounds the way the stat cards show them: "min〜max".
func FormatBounds(b Bounds) string {
	return fmt.Sprintf("%d〜%d", b.Min, b.Max)
}

// scaled is the level-scaled part shared by every formula. The division by
// 100 truncates before any offset or nature multiplier is applied.
func scaled(base, ev int) int {
	return ((2*base + MaxIV + ev) * Level) / 100
}

// HPMin is HP with no EVs.
func HPMin(base int) int {
	return scaled(base, 0) + hpOffset
}

// HPMax is HP with 252 EVs. HP never gets a nature multiplier.
func HPMax(base int) int {
	return scaled(base, FullEV) + hpOffset
}

// StatMin is a non-HP stat with no EVs and a neutral nature.
func StatMin(base int) int {
	return scaled(base, 0) + statOffset
}

// StatMax is a non-HP stat with 252 EVs and a beneficial (x1.1) nature.
func StatMax(base int) int {
	return applyNature(scaled(base, FullEV)+statOffset, 11)
}

// applyNature multiplies by tenths/10 and floors, in integers so that
// values like 150*1.1 never round the wrong way.
func applyNature(v, tenths int) int {
	return v * tenths / 10
}

// ComputeStatBounds returns the range for a base stat, using the HP
// formulas when isHP is set.
func ComputeStatBounds(base int, isHP bool) Bounds {
	if isHP {
		return Bounds{Min: HPMin(base), Max: HPMax(base)}
	}
	return Bounds{Min: StatMin(base), Max: StatMax(base)}
}

// StatLine is one row of a stat card.
type StatLine struct {
	Key    StatKey
	Base   int
	Bounds Bounds
}

// StatLines returns the six stat rows of a record in H/A/B/C/D/S order.
func StatLines(s Stats) []StatLine {
	lines := make([]StatLine, 0, len(BattleStats))
	for _, k := range BattleStats {
		base := s.Get(k)
		lines = append(lines, StatLine{
			Key:    k,
			Base:   base,
			Bounds: ComputeStatBounds(base, k == StatHP),
		})
	}
	return lines
}
