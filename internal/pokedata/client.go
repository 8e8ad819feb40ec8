package pokedata

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vgc-tools/team-extractor/internal/fetchcache"
)

// BaseURL is the root of the Pokedata VGC standings site.
const BaseURL = "https://www.pokedata.ovh/standingsVGC"

// Client retrieves Pokedata listings and rosters through a caching fetcher.
type Client struct {
	fetcher  *fetchcache.Fetcher
	baseURL  string
	cacheDir string
}

// NewClient creates a Client rooted at baseURL (normally BaseURL) that
// caches downloads under cacheDir.
func NewClient(fetcher *fetchcache.Fetcher, baseURL, cacheDir string) *Client {
	return &Client{fetcher: fetcher, baseURL: baseURL, cacheDir: cacheDir}
}

// TournamentList fetches the landing page and returns every tournament it
// links, in page order (newest first upstream).
func (c *Client) TournamentList(ctx context.Context, force bool) ([]TournamentSummary, error) {
	body, err := c.fetcher.Fetch(ctx, c.baseURL+"/", filepath.Join(c.cacheDir, "index.html"), force)
	if err != nil {
		return nil, fmt.Errorf("fetch tournament list: %w", err)
	}
	return parseTournamentList(c.baseURL, string(body)), nil
}

// Divisions fetches a tournament page and returns its division slugs. A
// tournament without division buttons defaults to masters.
func (c *Client) Divisions(ctx context.Context, tournamentID string, force bool) ([]string, error) {
	url := c.baseURL + "/" + tournamentID + "/"
	localPath := filepath.Join(c.cacheDir, tournamentID, "index.html")
	body, err := c.fetcher.Fetch(ctx, url, localPath, force)
	if err != nil {
		return nil, fmt.Errorf("fetch divisions for %s: %w", tournamentID, err)
	}
	divisions := parseDivisions(string(body))
	if len(divisions) == 0 {
		divisions = []string{"masters"}
	}
	return divisions, nil
}

// DivisionRoster fetches the player roster JSON for one division of a
// tournament. The upstream filename capitalizes the division slug.
func (c *Client) DivisionRoster(ctx context.Context, tournamentID, division string, force bool) ([]RawPlayer, error) {
	slug := strings.Trim(strings.ToLower(division), "/")
	filename := fmt.Sprintf("%s_%s.json", tournamentID, capitalizeSlug(slug))
	url := strings.Join([]string{c.baseURL, tournamentID, slug, filename}, "/")
	localPath := filepath.Join(c.cacheDir, tournamentID, slug, filename)

	body, err := c.fetcher.Fetch(ctx, url, localPath, force)
	if err != nil {
		return nil, fmt.Errorf("fetch roster %s/%s: %w", tournamentID, slug, err)
	}

	var players []RawPlayer
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("unexpected roster payload for %s/%s: %w", tournamentID, slug, err)
	}
	return players, nil
}

func capitalizeSlug(slug string) string {
	if slug == "" {
		return slug
	}
	return strings.ToUpper(slug[:1]) + slug[1:]
}
