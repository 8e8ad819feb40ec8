// Package pokedata retrieves VGC tournament listings and division rosters
// from pokedata.ovh through the caching fetcher. The landing and tournament
// pages are static HTML with onclick navigation buttons; the per-division
// roster is a JSON array of player records.
package pokedata

// TournamentSummary is one tournament scraped from the landing page.
type TournamentSummary struct {
	ID       string `json:"tournament_id"`
	Name     string `json:"name"`
	DateText string `json:"date_text"`
	URL      string `json:"url"`
}

// RawPlayer is one entry of a division roster as published upstream.
type RawPlayer struct {
	Name     string         `json:"name"`
	Placing  *int           `json:"placing"`
	Record   map[string]int `json:"record"`
	Decklist []RawSlot      `json:"decklist"`
}

// RawSlot is one Pokémon slot of a published decklist. Badges carry the
// move labels.
type RawSlot struct {
	Name     string   `json:"name"`
	TeraType string   `json:"teratype"`
	Ability  string   `json:"ability"`
	Item     string   `json:"item"`
	Badges   []string `json:"badges"`
}
