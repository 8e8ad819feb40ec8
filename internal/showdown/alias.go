package showdown

import "sort"

// aliasEntry is the surface a record exposes to the alias builder.
type aliasEntry struct {
	id      string
	name    string
	aliases []string
}

func moveEntries(moves map[string]Move) []aliasEntry {
	entries := make([]aliasEntry, 0, len(moves))
	for id, m := range moves {
		entries = append(entries, aliasEntry{id: id, name: m.Name, aliases: m.Aliases})
	}
	return entries
}

func itemEntries(items map[string]Item) []aliasEntry {
	entries := make([]aliasEntry, 0, len(items))
	for id, it := range items {
		entries = append(entries, aliasEntry{id: id, name: it.Name, aliases: it.Aliases})
	}
	return entries
}

func abilityEntries(abilities map[string]Ability) []aliasEntry {
	entries := make([]aliasEntry, 0, len(abilities))
	for id, ab := range abilities {
		entries = append(entries, aliasEntry{id: id, name: ab.Name, aliases: ab.Aliases})
	}
	return entries
}

// buildSimpleAliases registers each record's id, display name, and declared
// aliases under the given normalizer. Insertion is first-writer-wins, and
// entries are processed in sorted id order so collisions resolve the same way
// on every load.
func buildSimpleAliases(entries []aliasEntry, normalize func(string) string) map[string]string {
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	aliases := make(map[string]string, len(entries)*2)
	for _, entry := range entries {
		names := []string{entry.id, entry.name}
		names = append(names, entry.aliases...)
		for _, name := range names {
			register(aliases, normalize(name), entry.id)
		}
	}
	return aliases
}

// buildSpeciesAliases builds the species alias map with first-writer-wins
// insertion. An identity pass runs first so every record owns its own id and
// display name outright; without it a base record's otherFormes list would
// claim tokens like "slowbrogalar" before the Galar record itself could.
// The auxiliary passes then add descriptive aliases, base forms before forme
// variants so the unmarked base keeps any shared token. A record is a base
// form when it carries no baseSpecies reference or the reference resolves to
// the record itself.
func buildSpeciesAliases(pokedex map[string]Species) map[string]string {
	baseIDs := make([]string, 0, len(pokedex))
	formeIDs := make([]string, 0)
	for id, entry := range pokedex {
		if entry.BaseSpecies == "" || entry.BaseSpecies == id || ToID(entry.BaseSpecies) == id {
			baseIDs = append(baseIDs, id)
		} else {
			formeIDs = append(formeIDs, id)
		}
	}
	sort.Strings(baseIDs)
	sort.Strings(formeIDs)

	aliases := make(map[string]string, len(pokedex)*4)
	for _, ids := range [][]string{baseIDs, formeIDs} {
		for _, id := range ids {
			register(aliases, id, id)
			register(aliases, ToID(pokedex[id].Name), id)
		}
	}
	for _, id := range baseIDs {
		registerSpeciesAliases(aliases, id, pokedex[id])
	}
	for _, id := range formeIDs {
		registerSpeciesAliases(aliases, id, pokedex[id])
	}
	return aliases
}

func registerSpeciesAliases(aliases map[string]string, id string, entry Species) {
	var names []string

	base := entry.BaseSpecies
	forme := entry.Forme
	if base != "" {
		names = append(names, base)
	}
	if base != "" && forme != "" {
		names = append(names,
			base+"-"+forme,
			base+" "+forme,
			base+" ["+forme+"]",
			base+" ("+forme+")",
		)
		// Pokedata writes the Calyrex formes as rider titles.
		switch ToID(forme) {
		case "shadow":
			names = append(names, base+" Shadow Rider")
		case "ice":
			names = append(names, base+" Ice Rider")
		}
	}
	names = append(names, entry.OtherFormes...)
	names = append(names, entry.FormeOrder...)
	names = append(names, entry.CosmeticFormes...)

	for _, name := range names {
		register(aliases, ToID(name), id)
	}
}

// register inserts token -> id unless the token is empty or already taken.
func register(aliases map[string]string, token, id string) {
	if token == "" {
		return
	}
	if _, taken := aliases[token]; taken {
		return
	}
	aliases[token] = id
}
