package catalog

import (
	"quotecore/internal"
	"quotecore/internal/util"
)

type Index struct {
	ByID   map[string]internal.Material
	ByCode map[string][]internal.Material
	ByName map[string][]internal.Material

	names []indexedName
}

type indexedName struct {
	normalized string
	material   internal.Material
}

type Resolution struct {
	Material *internal.Material
	Score    float64
	Reason   string
}

const (
	ReasonID    = "ID"
	ReasonCode  = "CODE"
	ReasonName  = "NAME"
	ReasonFuzzy = "FUZZY"
	ReasonNone  = "NONE"
)

func BuildIndex(materials []internal.Material) *Index {
	idx := &Index{
		ByID:   map[string]internal.Material{},
		ByCode: map[string][]internal.Material{},
		ByName: map[string][]internal.Material{},
	}

	for _, m := range materials {
		if _, exists := idx.ByID[m.ID]; !exists {
			idx.ByID[m.ID] = m
		}
		if code := util.NormalizeCode(m.ID); code != "" {
			idx.ByCode[code] = append(idx.ByCode[code], m)
		}
		name := util.NormalizeName(m.Name)
		if name == "" {
			continue
		}
		idx.ByName[name] = append(idx.ByName[name], m)
		idx.names = append(idx.names, indexedName{normalized: name, material: m})
	}

	return idx
}

// Resolve finds the material a spreadsheet cell refers to: exact id, then
// normalized id, then normalized name, then the closest name scoring at least
// minScore. Ambiguous codes and names do not resolve.
func (idx *Index) Resolve(ref string, minScore float64) Resolution {
	if m, ok := idx.ByID[ref]; ok {
		return Resolution{Material: &m, Score: 1, Reason: ReasonID}
	}
	if code := util.NormalizeCode(ref); code != "" {
		if hits := idx.ByCode[code]; len(hits) == 1 {
			return Resolution{Material: &hits[0], Score: 1, Reason: ReasonCode}
		}
	}
	name := util.NormalizeName(ref)
	if name == "" {
		return Resolution{Reason: ReasonNone}
	}
	if hits := idx.ByName[name]; len(hits) == 1 {
		return Resolution{Material: &hits[0], Score: 1, Reason: ReasonName}
	}

	var best *internal.Material
	bestScore, second := 0.0, 0.0
	for i := range idx.names {
		score := util.DiceCoefficient(name, idx.names[i].normalized)
		if score > bestScore {
			second = bestScore
			bestScore = score
			best = &idx.names[i].material
		} else if score > second {
			second = score
		}
	}
	if best == nil || bestScore < minScore || bestScore == second {
		return Resolution{Score: bestScore, Reason: ReasonNone}
	}
	m := *best
	return Resolution{Material: &m, Score: bestScore, Reason: ReasonFuzzy}
}
