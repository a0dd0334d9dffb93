package pokemon

func testRoster() []Record {
	return []Record{
		{ID: "0006", Name: "リザードン", Type1: TypeFire, Type2: TypeFlying,
			Stats: Stats{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100}},
		{ID: "0004", Name: "ヒトカゲ", Type1: TypeFire,
			Stats: Stats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65}},
		{ID: "0007", Name: "ゼニガメ", Type1: TypeWater,
			Stats: Stats{HP: 44, Attack: 48, Defense: 65, SpAttack: 50, SpDefense: 64, Speed: 43}},
		{ID: "0721", Name: "ボルケニオン", Type1: TypeFire, Type2: TypeWater,
			Stats: Stats{HP: 80, Attack: 110, Defense: 120, SpAttack: 130, SpDefense: 90, Speed: 70}},
		{ID: "0009", Name: "カメックス", Type1: TypeWater,
			Stats: Stats{HP: 79, Attack: 83, Defense: 100, SpAttack: 85, SpDefense: 105, Speed: 78}},
		{ID: "0025", Name: "Pikachu", Type1: TypeElectric,
			Stats: Stats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}},
	}
}

func ids(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
