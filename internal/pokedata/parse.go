package pokedata

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// The landing page lists tournaments as buttons whose onclick handler
// navigates into the tournament directory; a tournament page exposes its
// divisions the same way with lowercase slugs.
var (
	tournamentButtonPattern = regexp.MustCompile(`(?s)onclick\s*=\s*"location\.href='([^/']+)/'"[^>]*>(.*?)</button>`)
	divisionButtonPattern   = regexp.MustCompile(`(?i)onclick\s*=\s*"location\.href='([a-z]+)/'"`)
	tagPattern              = regexp.MustCompile(`<.*?>`)
)

// parseTournamentList extracts tournament summaries from the landing page.
// The button label's first line is the title; a second line, minus any
// leading dash, is the date text.
func parseTournamentList(baseURL, htmlText string) []TournamentSummary {
	var results []TournamentSummary
	for _, match := range tournamentButtonPattern.FindAllStringSubmatch(htmlText, -1) {
		slug := match[1]
		label := tagPattern.ReplaceAllString(html.UnescapeString(match[2]), " ")

		var lines []string
		for _, line := range strings.Split(label, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}

		title := slug
		if len(lines) > 0 {
			title = lines[0]
		}
		dateText := ""
		if len(lines) > 1 {
			dateText = strings.TrimSpace(strings.TrimPrefix(lines[1], "-"))
		}

		results = append(results, TournamentSummary{
			ID:       slug,
			Name:     title,
			DateText: dateText,
			URL:      baseURL + "/" + slug + "/",
		})
	}
	return results
}

// parseDivisions returns the sorted, deduplicated division slugs found on a
// tournament page.
func parseDivisions(htmlText string) []string {
	seen := make(map[string]struct{})
	for _, match := range divisionButtonPattern.FindAllStringSubmatch(htmlText, -1) {
		seen[strings.ToLower(match[1])] = struct{}{}
	}
	divisions := make([]string, 0, len(seen))
	for division := range seen {
		divisions = append(divisions, division)
	}
	sort.Strings(divisions)
	return divisions
}
