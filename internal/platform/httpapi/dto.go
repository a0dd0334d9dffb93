package httpapi

import "github.com/vovakirdan/tui-dex/internal/pokemon"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse mirrors the limit/offset envelope of the upstream API.
type ListResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []RecordResponse `json:"results"`
}

// RecordResponse is one roster entry with its stat ranges.
type RecordResponse struct {
	ID     string                    `json:"id"`
	Name   string                    `json:"name"`
	NameEN string                    `json:"name_en,omitempty"`
	Form   string                    `json:"form,omitempty"`
	Types  []pokemon.Type            `json:"types"`
	Stats  pokemon.Stats             `json:"stats"`
	Total  int                       `json:"total"`
	Ranges map[string]pokemon.Bounds `json:"ranges"`
}

// BoundsResponse answers /api/stats.
type BoundsResponse struct {
	Base    int    `json:"base"`
	HP      bool   `json:"hp"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Display string `json:"display"`
}

// RegionResponse lists a roster source.
type RegionResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

func toRecordResponse(r pokemon.Record) RecordResponse {
	ranges := make(map[string]pokemon.Bounds, len(pokemon.BattleStats))
	for _, line := range pokemon.StatLines(r.Stats) {
		ranges[string(line.Key)] = line.Bounds
	}
	return RecordResponse{
		ID:     r.ID,
		Name:   r.Name,
		NameEN: r.NameEN,
		Form:   r.Form,
		Types:  r.Types(),
		Stats:  r.Stats,
		Total:  r.Stats.Total(),
		Ranges: ranges,
	}
}
