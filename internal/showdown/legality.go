package showdown

import (
	"sort"
	"strings"
)

// categoryTags are the species category labels that formats may ban as a
// group instead of listing every member.
var categoryTags = map[string]struct{}{
	"Restricted Legendary": {},
	"Sub-Legendary":        {},
	"Mythical":             {},
	"Paradox":              {},
	"Ultra Beast":          {},
}

// nonstandardStatuses exclude a species from standard competitive legality.
var nonstandardStatuses = map[string]struct{}{
	"Past":         {},
	"Future":       {},
	"Unobtainable": {},
}

// CanLearn reports whether the species' learnset contains the move. Forme
// variants usually inherit the base species' learnset in the corpus, so a
// miss retries against the base species when one is declared.
func (d *Dataset) CanLearn(speciesID, moveID string) bool {
	if entry, ok := d.Learnsets[speciesID]; ok {
		if _, found := entry.Learnset[moveID]; found {
			return true
		}
	}
	base := d.Pokedex[speciesID].BaseSpecies
	if base == "" {
		return false
	}
	baseID, ok := d.speciesAliases[ToID(base)]
	if !ok {
		return false
	}
	entry, ok := d.Learnsets[baseID]
	if !ok {
		return false
	}
	_, found := entry.Learnset[moveID]
	return found
}

// ValidFormats returns the sorted ids of formats the species is eligible for.
// Nonstandard species (Past/Future/Unobtainable, from either the pokedex
// record or the format metadata) are eligible nowhere. With restrictToVGC
// set, only doubles formats whose name carries the VGC marker are considered.
// A species is excluded from a format when its id appears in the banlist or
// when any category tag it carries is banned.
func (d *Dataset) ValidFormats(speciesID string, restrictToVGC bool) []string {
	entry := d.Pokedex[speciesID]
	if _, excluded := nonstandardStatuses[entry.IsNonstandard]; excluded {
		return nil
	}
	if meta, ok := d.FormatsData[speciesID]; ok {
		if _, excluded := nonstandardStatuses[meta.IsNonstandard]; excluded {
			return nil
		}
	}

	tags := make(map[string]struct{}, len(entry.Tags))
	for _, tag := range entry.Tags {
		tags[tag] = struct{}{}
	}

	var valid []string
	for _, format := range d.Formats {
		if restrictToVGC && !strings.Contains(strings.ToLower(format.Name), "vgc") {
			continue
		}
		if format.ID == "" {
			continue
		}
		if format.GameType != "" && format.GameType != "doubles" {
			continue
		}
		if bannedInFormat(format, speciesID, tags) {
			continue
		}
		valid = append(valid, format.ID)
	}
	sort.Strings(valid)
	return valid
}

func bannedInFormat(format Format, speciesID string, tags map[string]struct{}) bool {
	for _, banned := range format.Banlist {
		if ToID(banned) == speciesID {
			return true
		}
		if _, isCategory := categoryTags[banned]; isCategory {
			if _, carried := tags[banned]; carried {
				return true
			}
		}
	}
	return false
}
