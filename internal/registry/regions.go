package registry

func init() {
	Register(Region{ID: "national", Title: "全国版", Path: "national-pokemon/", Order: 0})
	Register(Region{ID: "galar", Title: "ガラル版", Path: "galar-pokemon/", Order: 1})
	Register(Region{ID: "paldea", Title: "パルデア版", Path: "paldea-pokemon/", Order: 2})
}
