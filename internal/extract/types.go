// Package extract converts raw Pokedata rosters into validated, structured
// team records using a loaded Showdown dataset, and runs the conversion
// across tournaments concurrently.
package extract

import "github.com/vgc-tools/team-extractor/internal/pokedata"

// MoveExtraction is a single validated move entry.
type MoveExtraction struct {
	RawMove  string `json:"raw_move"`
	MoveID   string `json:"move_id,omitempty"`
	MoveName string `json:"move_name"`
	IsLegal  bool   `json:"is_legal"`
}

// PokemonExtraction is a single validated team slot.
type PokemonExtraction struct {
	RawSpecies   string           `json:"raw_species"`
	Species      string           `json:"species"`
	ShowdownID   string           `json:"showdown_id"`
	TeraType     string           `json:"tera_type,omitempty"`
	Ability      string           `json:"ability,omitempty"`
	Item         string           `json:"item,omitempty"`
	Moves        []MoveExtraction `json:"moves"`
	ValidFormats []string         `json:"valid_formats"`
	Issues       []string         `json:"issues"`
}

// PlayerExtraction is one player's validated team export.
type PlayerExtraction struct {
	PlayerName   string              `json:"player_name"`
	Country      string              `json:"country,omitempty"`
	Placing      *int                `json:"placing"`
	Record       map[string]int      `json:"record"`
	ShowdownTeam string              `json:"showdown_team"`
	Pokemon      []PokemonExtraction `json:"pokemon"`
	IsValid      bool                `json:"is_valid"`
	Issues       []string            `json:"issues"`
}

// TournamentDivisionResult aggregates one tournament and division pair.
type TournamentDivisionResult struct {
	Tournament pokedata.TournamentSummary `json:"tournament"`
	Division   string                     `json:"division"`
	Players    []PlayerExtraction         `json:"players"`
}
