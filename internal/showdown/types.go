// Package showdown loads the Pokémon Showdown reference corpus (species,
// moves, items, abilities, learnsets, formats), builds alias indexes over it,
// and resolves free-text roster labels to canonical ids. A loaded Dataset is
// immutable: refreshing means constructing a new one, never mutating in place.
package showdown

// Species is a single pokedex record.
type Species struct {
	Name           string   `json:"name"`
	Num            int      `json:"num"`
	BaseSpecies    string   `json:"baseSpecies"`
	Forme          string   `json:"forme"`
	Types          []string `json:"types"`
	Tags           []string `json:"tags"`
	OtherFormes    []string `json:"otherFormes"`
	FormeOrder     []string `json:"formeOrder"`
	CosmeticFormes []string `json:"cosmeticFormes"`
	IsNonstandard  string   `json:"isNonstandard"`
}

// Move is a single move-table record.
type Move struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Item is a single item-table record.
type Item struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Ability is a single ability-table record.
type Ability struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Learnset is the set of moves a species can legally learn, keyed by move id.
// Values are the learn-method codes ("9M", "8L36", ...), which the validator
// ignores; presence of the key is what matters.
type Learnset struct {
	Learnset map[string][]string `json:"learnset"`
}

// Format is one battle format with its banlist.
type Format struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	GameType string   `json:"gameType"`
	Banlist  []string `json:"banlist"`
}

// FormatMeta is per-species format metadata (tiering, nonstandard status).
type FormatMeta struct {
	Tier          string `json:"tier"`
	DoublesTier   string `json:"doublesTier"`
	IsNonstandard string `json:"isNonstandard"`
}

// Dataset is an immutable snapshot of the reference corpus together with the
// alias indexes built from it. It is published once, fully constructed, and
// is safe for concurrent readers.
type Dataset struct {
	Pokedex     map[string]Species
	Moves       map[string]Move
	Items       map[string]Item
	Abilities   map[string]Ability
	Learnsets   map[string]Learnset
	FormatsData map[string]FormatMeta
	Formats     []Format

	speciesAliases map[string]string
	moveAliases    map[string]string
	itemAliases    map[string]string
	abilityAliases map[string]string

	// Sorted alias tokens, kept so the fuzzy fallback scans a stable order.
	speciesAliasKeys []string
	moveAliasKeys    []string
}

// SpeciesName returns the display name for a canonical species id, or the id
// itself when unknown.
func (d *Dataset) SpeciesName(id string) string {
	if entry, ok := d.Pokedex[id]; ok && entry.Name != "" {
		return entry.Name
	}
	return id
}

// MoveName returns the display name for a canonical move id, or the id itself
// when unknown.
func (d *Dataset) MoveName(id string) string {
	if entry, ok := d.Moves[id]; ok && entry.Name != "" {
		return entry.Name
	}
	return id
}
