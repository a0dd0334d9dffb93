package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

// pagedResponse is the limit/offset page the list endpoints return.
type pagedResponse struct {
	Count    int          `json:"count"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []wireRecord `json:"results"`
}

// wireRecord accepts every record shape the API has shipped:
//
//   - legacy flat: unique_id, name, base_h..base_s, TYPE01, TYPE02
//   - model dump:  unique_id, ja, en, sub_ja, type_first, type_second, base_*
//   - detail:      ids{}, names{}, type_[], stats{}
type wireRecord struct {
	UniqueID string `json:"unique_id"`

	// legacy
	Name   string `json:"name"`
	Type01 string `json:"TYPE01"`
	Type02 string `json:"TYPE02"`

	// model dump
	JA         string  `json:"ja"`
	EN         string  `json:"en"`
	SubJA      *string `json:"sub_ja"`
	TypeFirst  *string `json:"type_first"`
	TypeSecond *string `json:"type_second"`

	BaseH *int `json:"base_h"`
	BaseA *int `json:"base_a"`
	BaseB *int `json:"base_b"`
	BaseC *int `json:"base_c"`
	BaseD *int `json:"base_d"`
	BaseS *int `json:"base_s"`
	BaseT *int `json:"base_t"`

	// detail
	IDs *struct {
		UniqueID string `json:"unique_id"`
	} `json:"ids"`
	Names *struct {
		JA    string `json:"ja"`
		EN    string `json:"en"`
		SubJA string `json:"subJa"`
	} `json:"names"`
	TypeList []string       `json:"type_"`
	Stats    *pokemon.Stats `json:"stats"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// record adapts a wire record to the roster model.
func (w wireRecord) record() pokemon.Record {
	var r pokemon.Record

	switch {
	case w.Names != nil || w.TypeList != nil || w.Stats != nil:
		if w.IDs != nil {
			r.ID = w.IDs.UniqueID
		}
		if w.Names != nil {
			r.Name = w.Names.JA
			r.NameEN = w.Names.EN
			r.Form = w.Names.SubJA
		}
		if len(w.TypeList) > 0 {
			r.Type1 = pokemon.Type(w.TypeList[0])
		}
		if len(w.TypeList) > 1 {
			r.Type2 = pokemon.Type(w.TypeList[1])
		}
		r.Stats = deref(w.Stats)

	case w.JA != "" || w.TypeFirst != nil:
		r.Name = w.JA
		r.NameEN = w.EN
		r.Form = deref(w.SubJA)
		r.Type1 = pokemon.Type(deref(w.TypeFirst))
		r.Type2 = pokemon.Type(deref(w.TypeSecond))
		r.Stats = w.baseStats()

	default:
		r.Name = w.Name
		r.Type1 = pokemon.Type(w.Type01)
		r.Type2 = pokemon.Type(w.Type02)
		r.Stats = w.baseStats()
	}

	if r.ID == "" {
		r.ID = w.UniqueID
	}
	r.NameEN = capitalize(r.NameEN)
	return r
}

func (w wireRecord) baseStats() pokemon.Stats {
	return pokemon.Stats{
		HP:            deref(w.BaseH),
		Attack:        deref(w.BaseA),
		Defense:       deref(w.BaseB),
		SpAttack:      deref(w.BaseC),
		SpDefense:     deref(w.BaseD),
		Speed:         deref(w.BaseS),
		TotalOverride: deref(w.BaseT),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// decodePage decodes either a bare JSON array or a paged object.
// next is empty when there is no further page.
func decodePage(body []byte) (records []pokemon.Record, next string, err error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, "", fmt.Errorf("api: empty response body")
	}

	var wire []wireRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &wire); err != nil {
			return nil, "", fmt.Errorf("api: decode roster array: %w", err)
		}
	case '{':
		var page pagedResponse
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, "", fmt.Errorf("api: decode roster page: %w", err)
		}
		wire = page.Results
		next = deref(page.Next)
	default:
		return nil, "", fmt.Errorf("api: unexpected response starting with %q", trimmed[0])
	}

	records = make([]pokemon.Record, 0, len(wire))
	for _, w := range wire {
		records = append(records, w.record())
	}
	return records, next, nil
}
