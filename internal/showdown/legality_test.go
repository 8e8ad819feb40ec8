package showdown

import (
	"reflect"
	"testing"
)

func legalityFixture() *Dataset {
	pokedex := map[string]Species{
		"conkeldurr":  {Name: "Conkeldurr"},
		"fluttermane": {Name: "Flutter Mane", Tags: []string{"Paradox"}},
		"brutebonnet": {Name: "Brute Bonnet", Tags: []string{"Paradox"}},
		"mew":         {Name: "Mew", Tags: []string{"Mythical"}},
		"pichuspikyeared": {
			Name:          "Pichu-Spiky-eared",
			BaseSpecies:   "Pichu",
			Forme:         "Spiky-eared",
			IsNonstandard: "Past",
		},
		"calyrex": {Name: "Calyrex"},
		"calyrexshadow": {
			Name:        "Calyrex-Shadow",
			BaseSpecies: "Calyrex",
			Forme:       "Shadow",
			Tags:        []string{"Restricted Legendary"},
		},
	}
	learnsets := map[string]Learnset{
		"conkeldurr":    {Learnset: map[string][]string{"drainpunch": {"9M"}}},
		"fluttermane":   {Learnset: map[string][]string{"moonblast": {"9M"}, "shadowball": {"9M"}}},
		"calyrex":       {Learnset: map[string][]string{"psychic": {"8M"}}},
		"calyrexshadow": {Learnset: map[string][]string{"astralbarrage": {"8L1"}}},
	}
	formatsData := map[string]FormatMeta{
		"conkeldurr":  {Tier: "OU", DoublesTier: "DOU"},
		"brutebonnet": {IsNonstandard: "Future"},
	}
	formats := []Format{
		{
			Name:     "[Gen 9] VGC 2025 Reg H",
			GameType: "doubles",
			Banlist:  []string{"Paradox", "Mythical", "Restricted Legendary"},
		},
		{
			Name:     "[Gen 9] VGC 2025 Reg I",
			GameType: "doubles",
			Banlist:  []string{"Mythical"},
		},
		{
			Name:     "[Gen 9] OU",
			GameType: "singles",
			Banlist:  []string{},
		},
		{
			Name:     "[Gen 9] Doubles OU",
			GameType: "doubles",
			Banlist:  []string{"Calyrex-Shadow"},
		},
	}
	return NewDataset(pokedex, map[string]Move{}, map[string]Item{}, map[string]Ability{},
		learnsets, formatsData, formats)
}

func TestCanLearn(t *testing.T) {
	d := legalityFixture()

	tests := []struct {
		name      string
		speciesID string
		moveID    string
		want      bool
	}{
		{name: "direct hit", speciesID: "conkeldurr", moveID: "drainpunch", want: true},
		{name: "not in learnset", speciesID: "conkeldurr", moveID: "wideguard", want: false},
		{name: "forme own learnset", speciesID: "calyrexshadow", moveID: "astralbarrage", want: true},
		{name: "forme inherits base learnset", speciesID: "calyrexshadow", moveID: "psychic", want: true},
		{name: "neither forme nor base", speciesID: "calyrexshadow", moveID: "wideguard", want: false},
		{name: "unknown species", speciesID: "missingno", moveID: "tackle", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.CanLearn(tt.speciesID, tt.moveID); got != tt.want {
				t.Errorf("CanLearn(%q, %q) = %v, want %v", tt.speciesID, tt.moveID, got, tt.want)
			}
		})
	}
}

func TestValidFormats(t *testing.T) {
	d := legalityFixture()

	tests := []struct {
		name          string
		speciesID     string
		restrictToVGC bool
		want          []string
	}{
		{
			name:          "ordinary species in all doubles formats",
			speciesID:     "conkeldurr",
			restrictToVGC: false,
			want:          []string{"gen9doublesou", "gen9vgc2025regh", "gen9vgc2025regi"},
		},
		{
			name:          "ordinary species vgc only",
			speciesID:     "conkeldurr",
			restrictToVGC: true,
			want:          []string{"gen9vgc2025regh", "gen9vgc2025regi"},
		},
		{
			name:          "paradox excluded by category ban",
			speciesID:     "fluttermane",
			restrictToVGC: true,
			want:          []string{"gen9vgc2025regi"},
		},
		{
			name:          "mythical banned everywhere shown",
			speciesID:     "mew",
			restrictToVGC: true,
			want:          nil,
		},
		{
			name:          "explicit banlist entry",
			speciesID:     "calyrexshadow",
			restrictToVGC: false,
			want:          []string{"gen9vgc2025regi"},
		},
		{
			name:          "nonstandard pokedex record",
			speciesID:     "pichuspikyeared",
			restrictToVGC: false,
			want:          nil,
		},
		{
			name:          "nonstandard format metadata",
			speciesID:     "brutebonnet",
			restrictToVGC: false,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.ValidFormats(tt.speciesID, tt.restrictToVGC)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidFormats(%q, %v) = %v, want %v", tt.speciesID, tt.restrictToVGC, got, tt.want)
			}
		})
	}
}

func TestValidFormatsSkipsSinglesGameType(t *testing.T) {
	d := legalityFixture()
	for _, id := range d.ValidFormats("conkeldurr", false) {
		if id == "gen9ou" {
			t.Error("singles format leaked into valid formats")
		}
	}
}
