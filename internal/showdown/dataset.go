package showdown

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/vgc-tools/team-extractor/internal/fetchcache"
)

// BaseURL is where Showdown publishes its client data files.
const BaseURL = "https://play.pokemonshowdown.com/data"

// resource describes one remote reference-data file.
type resource struct {
	name     string
	urlPath  string
	filename string
}

// The seven files that make up the corpus. The two .js files are
// executable-module wrappers around a JSON literal; the two .json5 files
// carry trailing commas. Both go through the JSON5 decoder.
var resources = []resource{
	{name: "pokedex", urlPath: "/pokedex.json", filename: "pokedex.json"},
	{name: "moves", urlPath: "/moves.json", filename: "moves.json"},
	{name: "items", urlPath: "/text/items.json5", filename: "items.json5"},
	{name: "abilities", urlPath: "/text/abilities.json5", filename: "abilities.json5"},
	{name: "learnsets", urlPath: "/learnsets.json", filename: "learnsets.json"},
	{name: "formats-data", urlPath: "/formats-data.js", filename: "formats-data.js"},
	{name: "formats", urlPath: "/formats.js", filename: "formats.js"},
}

// jsObjectPattern extracts the trailing bracketed literal from a JS module
// wrapper like "exports.Formats = [...];".
var jsObjectPattern = regexp.MustCompile(`(?s)=\s*([\[{].*[\]}])\s*;?\s*$`)

// Load fetches all seven reference resources through the caching fetcher,
// parses them into typed records, and returns an immutable Dataset with its
// alias indexes built. Any parse failure aborts the load: a partially
// populated dataset would make every downstream resolution untrustworthy.
func Load(ctx context.Context, fetcher *fetchcache.Fetcher, dataDir string, force bool) (*Dataset, error) {
	return loadFrom(ctx, fetcher, BaseURL, dataDir, force)
}

func loadFrom(ctx context.Context, fetcher *fetchcache.Fetcher, baseURL, dataDir string, force bool) (*Dataset, error) {
	payloads := make(map[string][]byte, len(resources))
	for _, res := range resources {
		localPath := filepath.Join(dataDir, res.filename)
		body, err := fetcher.Fetch(ctx, baseURL+res.urlPath, localPath, force)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", res.name, err)
		}
		payloads[res.name] = body
	}

	var pokedex map[string]Species
	if err := json.Unmarshal(payloads["pokedex"], &pokedex); err != nil {
		return nil, fmt.Errorf("parse pokedex: %w", err)
	}
	var moves map[string]Move
	if err := json.Unmarshal(payloads["moves"], &moves); err != nil {
		return nil, fmt.Errorf("parse moves: %w", err)
	}
	var items map[string]Item
	if err := json5.Unmarshal(payloads["items"], &items); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	var abilities map[string]Ability
	if err := json5.Unmarshal(payloads["abilities"], &abilities); err != nil {
		return nil, fmt.Errorf("parse abilities: %w", err)
	}
	var learnsets map[string]Learnset
	if err := json.Unmarshal(payloads["learnsets"], &learnsets); err != nil {
		return nil, fmt.Errorf("parse learnsets: %w", err)
	}

	var formatsData map[string]FormatMeta
	if err := unmarshalJSWrapper(payloads["formats-data"], &formatsData); err != nil {
		return nil, fmt.Errorf("parse formats-data: %w", err)
	}
	var formats []Format
	if err := unmarshalJSWrapper(payloads["formats"], &formats); err != nil {
		return nil, fmt.Errorf("parse formats: %w", err)
	}

	log.Printf("[Showdown] Loaded %d species, %d moves, %d items, %d abilities, %d formats",
		len(pokedex), len(moves), len(items), len(abilities), len(formats))

	return NewDataset(pokedex, moves, items, abilities, learnsets, formatsData, formats), nil
}

// unmarshalJSWrapper parses a JS module file of the form
// "exports.X = <literal>;" by extracting the literal and decoding it as
// JSON5 (the literal carries trailing commas and unquoted keys).
func unmarshalJSWrapper(data []byte, v interface{}) error {
	match := jsObjectPattern.FindSubmatch(data)
	if match == nil {
		return fmt.Errorf("no object literal found in JS payload")
	}
	return json5.Unmarshal(match[1], v)
}

// NewDataset assembles a Dataset from already-parsed payloads and builds the
// alias indexes. Formats without an explicit id get one derived from their
// name. Tests construct fixture datasets through this same path.
func NewDataset(
	pokedex map[string]Species,
	moves map[string]Move,
	items map[string]Item,
	abilities map[string]Ability,
	learnsets map[string]Learnset,
	formatsData map[string]FormatMeta,
	formats []Format,
) *Dataset {
	withIDs := make([]Format, len(formats))
	for i, fmtEntry := range formats {
		if fmtEntry.ID == "" {
			fmtEntry.ID = ToID(fmtEntry.Name)
		}
		withIDs[i] = fmtEntry
	}

	d := &Dataset{
		Pokedex:     pokedex,
		Moves:       moves,
		Items:       items,
		Abilities:   abilities,
		Learnsets:   learnsets,
		FormatsData: formatsData,
		Formats:     withIDs,
	}
	d.speciesAliases = buildSpeciesAliases(pokedex)
	d.moveAliases = buildSimpleAliases(moveEntries(moves), NormalizeMoveLabel)
	d.itemAliases = buildSimpleAliases(itemEntries(items), ToID)
	d.abilityAliases = buildSimpleAliases(abilityEntries(abilities), ToID)
	d.speciesAliasKeys = sortedKeys(d.speciesAliases)
	d.moveAliasKeys = sortedKeys(d.moveAliases)
	return d
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
