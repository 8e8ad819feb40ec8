package showdown

import (
	"regexp"
	"strings"

	"github.com/vgc-tools/team-extractor/internal/fuzzy"
)

// descriptorWordMap maps lowered descriptor tokens to the canonical word used
// in Showdown forme suffixes. An empty value drops the token (filler words
// like "form" or "rider"). Tokens absent from the map are identity-capitalized.
var descriptorWordMap = map[string]string{
	"alolan":       "Alola",
	"alola":        "Alola",
	"galarian":     "Galar",
	"galar":        "Galar",
	"hisuian":      "Hisui",
	"hisui":        "Hisui",
	"paldean":      "Paldea",
	"paldea":       "Paldea",
	"midday":       "Midday",
	"midnight":     "Midnight",
	"dusk":         "Dusk",
	"dawn":         "Dawn",
	"wings":        "Wings",
	"mane":         "Mane",
	"wash":         "Wash",
	"heat":         "Heat",
	"frost":        "Frost",
	"fan":          "Fan",
	"mow":          "Mow",
	"amped":        "Amped",
	"lowkey":       "LowKey",
	"droopy":       "Droopy",
	"curly":        "Curly",
	"stretchy":     "Stretchy",
	"bloodmoon":    "Bloodmoon",
	"hero":         "Hero",
	"crowned":      "Crowned",
	"sky":          "Sky",
	"aqua":         "Aqua",
	"blaze":        "Blaze",
	"combat":       "Combat",
	"therian":      "Therian",
	"attack":       "Attack",
	"defense":      "Defense",
	"speed":        "Speed",
	"origin":       "Origin",
	"shadow":       "Shadow",
	"ice":          "Ice",
	"single":       "Single",
	"strike":       "Strike",
	"four":         "Four",
	"three":        "Three",
	"family":       "Family",
	"masterpiece":  "Masterpiece",
	"unremarkable": "Unremarkable",
	"female":       "F",
	"male":         "M",

	// Filler words contribute nothing to the canonical suffix.
	"form":       "",
	"forme":      "",
	"mode":       "",
	"style":      "",
	"aspect":     "",
	"pattern":    "",
	"breed":      "",
	"rider":      "",
	"of":         "",
	"the":        "",
	"incarnate":  "",
	"standard":   "",
}

// descriptorKeywords flags a trailing token run as a forme descriptor when no
// brackets are present ("Lycanroc Midnight", "Rotom Wash").
var descriptorKeywords = []string{
	"alola", "alolan", "galar", "galarian", "hisui", "hisuian", "paldea", "paldean",
	"form", "forme", "breed", "style", "aspect", "pattern", "family",
	"male", "female",
	"wash", "heat", "frost", "fan", "mow", "rotom",
	"midday", "midnight", "dusk",
	"amp", "amped", "lowkey",
	"droopy", "curly", "stretchy",
	"bloodmoon", "hero", "crowned", "sky",
	"aqua", "blaze", "combat",
	"four", "three",
}

// genderedForms lists the species whose gender variants are distinct records.
// The female variant carries a -F suffix; the male variant is the unmarked id.
var genderedForms = map[string]struct{}{
	"indeedee":    {},
	"meowstic":    {},
	"oinkologne":  {},
	"basculegion": {},
	"basculin":    {},
	"pikachu":     {},
}

var descriptorSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// splitDescriptor separates "Tauros [Paldean Form - Aqua Breed]" into base
// "Tauros" and descriptor "Paldean Form - Aqua Breed". Bracketed segments win,
// then parenthesized ones; absent both, a trailing run of recognized
// descriptor keywords is treated as the descriptor.
func splitDescriptor(label string) (base, descriptor string) {
	text := strings.TrimSpace(label)
	for _, pair := range [][2]string{{"[", "]"}, {"(", ")"}} {
		opener, closer := pair[0], pair[1]
		if strings.Contains(text, opener) && strings.Contains(text, closer) {
			head, tail, _ := strings.Cut(text, opener)
			desc, _, _ := strings.Cut(tail, closer)
			return strings.TrimSpace(head), strings.TrimSpace(desc)
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) > 1 {
		for idx := len(tokens) - 1; idx > 0; idx-- {
			candidate := strings.Join(tokens[idx:], " ")
			if looksLikeDescriptor(candidate) {
				return strings.TrimSpace(strings.Join(tokens[:idx], " ")), candidate
			}
		}
	}
	return text, ""
}

func looksLikeDescriptor(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range descriptorKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// combineDescriptor renders (base, descriptor) as a canonical Showdown name.
// Species-specific rules run in a fixed order before the generic token
// mapping; anything a rule does not claim falls through to the next.
func combineDescriptor(base, descriptor string) string {
	descriptor = strings.ReplaceAll(descriptor, "–", "-")
	descriptor = strings.ReplaceAll(descriptor, "’", "'")
	lowered := strings.ToLower(descriptor)
	baseToken := ToID(base)

	// Gendered variants: a fixed list of species where "Female" is a real
	// forme and "Male" is the unmarked base.
	if _, gendered := genderedForms[baseToken]; gendered {
		if strings.Contains(lowered, "female") || strings.Contains(lowered, "♀") {
			return base + "-F"
		}
		if strings.Contains(lowered, "male") || strings.Contains(lowered, "♂") {
			return base
		}
	}

	if strings.Contains(lowered, "bloodmoon") {
		return base + "-Bloodmoon"
	}

	// Maushold's family-count formes: "Family of Four" is the suffixed
	// record, "Family of Three" the unmarked one.
	if baseToken == "maushold" {
		switch {
		case strings.Contains(lowered, "four"):
			return base + "-Four"
		case strings.Contains(lowered, "three"):
			return base
		case strings.Contains(lowered, "family"):
			return base + "-Four"
		}
	}

	// Paldean three-flavor variants (Tauros breeds and friends).
	if strings.Contains(lowered, "paldea") {
		suffix := "Paldea"
		switch {
		case strings.Contains(lowered, "blaze"):
			suffix = "Paldea-Blaze"
		case strings.Contains(lowered, "aqua"):
			suffix = "Paldea-Aqua"
		case strings.Contains(lowered, "combat"):
			suffix = "Paldea-Combat"
		}
		return base + "-" + suffix
	}

	// Generic mapping: tokenize, drop fillers and the base's own token, map
	// through the descriptor table, pair directional+appendage words.
	tokens := descriptorSplitPattern.Split(lowered, -1)
	mapped := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || token == baseToken {
			continue
		}
		word, known := descriptorWordMap[token]
		if !known {
			word = capitalize(token)
		}
		if word != "" {
			mapped = append(mapped, word)
		}
	}
	if len(mapped) == 0 {
		return base
	}

	combined := make([]string, 0, len(mapped))
	for idx := 0; idx < len(mapped); idx++ {
		word := mapped[idx]
		if (word == "Dawn" || word == "Dusk") && idx+1 < len(mapped) &&
			(mapped[idx+1] == "Wings" || mapped[idx+1] == "Mane") {
			combined = append(combined, word+"-"+mapped[idx+1])
			idx++
			continue
		}
		combined = append(combined, word)
	}
	return base + "-" + strings.Join(combined, "-")
}

func capitalize(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}

// normalizeSpeciesLabel rewrites a raw roster label into the canonical naming
// scheme ("Slowbro [Galarian Form]" -> "Slowbro-Galar").
func normalizeSpeciesLabel(label string) string {
	base, descriptor := splitDescriptor(label)
	if descriptor == "" {
		return base
	}
	return combineDescriptor(base, descriptor)
}

// ResolveSpecies maps a raw species label to its canonical id. Lookup order:
// the canonicalized label, the raw label verbatim, then the bare base with
// the descriptor stripped; a similarity-ratio fallback over all alias tokens
// handles misspellings. Returns ok=false when nothing clears the threshold.
func (d *Dataset) ResolveSpecies(rawLabel string) (string, bool) {
	base, _ := splitDescriptor(rawLabel)
	normalized := normalizeSpeciesLabel(rawLabel)

	seen := make(map[string]struct{}, 3)
	for _, candidate := range []string{ToID(normalized), ToID(rawLabel), ToID(base)} {
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if id, ok := d.speciesAliases[candidate]; ok {
			return id, true
		}
	}

	seed := ToID(normalized)
	if seed == "" {
		seed = ToID(rawLabel)
	}
	if token, ok := fuzzy.Closest(seed, d.speciesAliasKeys, fuzzy.DefaultMinRatio); ok {
		return d.speciesAliases[token], true
	}
	return "", false
}

// ResolveMove maps a raw move label to its canonical id. Candidates are the
// label verbatim, the label with any parenthetical removed, and (for
// multi-word labels) the label minus its final word, which absorbs trailing
// mode qualifiers; each is normalized and looked up exactly before the fuzzy
// fallback runs on the longest candidate token.
func (d *Dataset) ResolveMove(rawLabel string) (string, bool) {
	cleaned := strings.TrimSpace(rawLabel)
	candidates := []string{cleaned}
	if noParen := strings.TrimSpace(parenPattern.ReplaceAllString(cleaned, "")); noParen != "" && noParen != cleaned {
		candidates = append(candidates, noParen)
	}
	if words := strings.Fields(strings.ReplaceAll(cleaned, "-", " ")); len(words) > 1 {
		candidates = append(candidates, strings.Join(words[:len(words)-1], " "))
	}

	tokens := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		token := NormalizeMoveLabel(candidate)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	for _, token := range tokens {
		if id, ok := d.moveAliases[token]; ok {
			return id, true
		}
	}

	seed := ""
	for _, token := range tokens {
		if len(token) > len(seed) || (len(token) == len(seed) && token < seed) {
			seed = token
		}
	}
	if seed == "" {
		return "", false
	}
	if token, ok := fuzzy.Closest(seed, d.moveAliasKeys, fuzzy.DefaultMinRatio); ok {
		return d.moveAliases[token], true
	}
	return "", false
}

// ResolveItem maps an item label to its canonical id. Exact normalized
// lookup only; items are short, curated labels and a fuzzy guess would do
// more harm than a reported miss.
func (d *Dataset) ResolveItem(rawLabel string) (string, bool) {
	id, ok := d.itemAliases[ToID(rawLabel)]
	return id, ok
}

// ResolveAbility maps an ability label to its canonical id, exact lookup only.
func (d *Dataset) ResolveAbility(rawLabel string) (string, bool) {
	id, ok := d.abilityAliases[ToID(rawLabel)]
	return id, ok
}
