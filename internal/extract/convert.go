package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vgc-tools/team-extractor/internal/pokedata"
	"github.com/vgc-tools/team-extractor/internal/showdown"
)

// teraTypes is the closed set of legal Tera Types: the eighteen regular
// types plus Stellar.
var teraTypes = map[string]struct{}{
	"Bug": {}, "Dark": {}, "Dragon": {}, "Electric": {}, "Fairy": {},
	"Fighting": {}, "Fire": {}, "Flying": {}, "Ghost": {}, "Grass": {},
	"Ground": {}, "Ice": {}, "Normal": {}, "Poison": {}, "Psychic": {},
	"Rock": {}, "Steel": {}, "Water": {}, "Stellar": {},
}

// playerNamePattern splits "Jane Doe [US]" into name and ISO country code.
var playerNamePattern = regexp.MustCompile(`^(.+?)\s*\[([A-Z]{2})\]$`)

// splitPlayerName separates a trailing two-letter country tag from a player
// name. Names without a tag come back unchanged with an empty country.
func splitPlayerName(raw string) (name, country string) {
	trimmed := strings.TrimSpace(raw)
	match := playerNamePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return trimmed, ""
	}
	return strings.TrimSpace(match[1]), match[2]
}

// ConvertSlot validates one decklist slot against the dataset. Every
// validation failure is recorded as an issue; the slot always converts, so a
// roster with problems still produces reviewable output.
func ConvertSlot(dataset *showdown.Dataset, slot pokedata.RawSlot) PokemonExtraction {
	rawSpecies := slot.Name
	if rawSpecies == "" {
		rawSpecies = "Unknown"
	}
	var issues []string

	speciesID, resolved := dataset.ResolveSpecies(rawSpecies)
	speciesLabel := rawSpecies
	if resolved {
		speciesLabel = dataset.SpeciesName(speciesID)
	}
	showdownID := speciesID
	if showdownID == "" {
		showdownID = showdown.ToID(speciesLabel)
	}

	if slot.TeraType != "" {
		if _, known := teraTypes[slot.TeraType]; !known {
			issues = append(issues, fmt.Sprintf("Unknown Tera Type '%s'", slot.TeraType))
		}
	}
	if slot.Ability != "" {
		if _, ok := dataset.ResolveAbility(slot.Ability); !ok {
			issues = append(issues, fmt.Sprintf("Ability '%s' not found in Showdown data", slot.Ability))
		}
	}
	if slot.Item != "" {
		if _, ok := dataset.ResolveItem(slot.Item); !ok {
			issues = append(issues, fmt.Sprintf("Item '%s' not found in Showdown data", slot.Item))
		}
	}

	var moves []MoveExtraction
	for _, rawMove := range slot.Badges {
		if rawMove == "" {
			continue
		}
		moveID, found := dataset.ResolveMove(rawMove)
		moveName := rawMove
		if found {
			moveName = dataset.MoveName(moveID)
		} else {
			issues = append(issues, fmt.Sprintf("Move '%s' not found in Showdown data", rawMove))
		}

		isLegal := false
		switch {
		case found && resolved:
			if dataset.CanLearn(speciesID, moveID) {
				isLegal = true
			} else {
				issues = append(issues, fmt.Sprintf("%s cannot learn %s", speciesLabel, moveName))
			}
		case found:
			issues = append(issues, fmt.Sprintf("Unable to validate move '%s' without species data", rawMove))
		}

		moves = append(moves, MoveExtraction{
			RawMove:  rawMove,
			MoveID:   moveID,
			MoveName: moveName,
			IsLegal:  isLegal,
		})
	}

	var validFormats []string
	if resolved {
		validFormats = dataset.ValidFormats(speciesID, true)
	} else {
		issues = append(issues, fmt.Sprintf("Unable to resolve species '%s'", speciesLabel))
	}

	return PokemonExtraction{
		RawSpecies:   rawSpecies,
		Species:      speciesLabel,
		ShowdownID:   showdownID,
		TeraType:     slot.TeraType,
		Ability:      slot.Ability,
		Item:         slot.Item,
		Moves:        moves,
		ValidFormats: validFormats,
		Issues:       issues,
	}
}

// BuildTeamText renders slots in the importable Showdown team format: a
// paste-ready block per Pokémon, blank-line separated.
func BuildTeamText(pokemon []PokemonExtraction) string {
	blocks := make([]string, 0, len(pokemon))
	for _, slot := range pokemon {
		var lines []string
		header := slot.Species
		if slot.Item != "" {
			header = header + " @ " + slot.Item
		}
		lines = append(lines, header)
		if slot.Ability != "" {
			lines = append(lines, "Ability: "+slot.Ability)
		}
		if slot.TeraType != "" {
			lines = append(lines, "Tera Type: "+slot.TeraType)
		}
		lines = append(lines, "Level: 50")
		for _, move := range slot.Moves {
			lines = append(lines, "- "+move.MoveName)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// TransformPlayer converts one raw roster entry into a validated player
// record. Slot issues roll up to the player; a player with no issues is
// marked valid.
func TransformPlayer(dataset *showdown.Dataset, player pokedata.RawPlayer) PlayerExtraction {
	rawName := player.Name
	if rawName == "" {
		rawName = "Unknown"
	}
	name, country := splitPlayerName(rawName)

	pokemon := make([]PokemonExtraction, 0, len(player.Decklist))
	var issues []string
	for _, slot := range player.Decklist {
		converted := ConvertSlot(dataset, slot)
		issues = append(issues, converted.Issues...)
		pokemon = append(pokemon, converted)
	}

	record := player.Record
	if record == nil {
		record = map[string]int{}
	}

	return PlayerExtraction{
		PlayerName:   name,
		Country:      country,
		Placing:      player.Placing,
		Record:       record,
		ShowdownTeam: BuildTeamText(pokemon),
		Pokemon:      pokemon,
		IsValid:      len(issues) == 0,
		Issues:       issues,
	}
}
