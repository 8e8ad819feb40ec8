package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/vgc-tools/team-extractor/internal/pokedata"
)

// Output is the serialized aggregate of an extraction run.
type Output struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source"`
	Tournaments []TournamentOutput `json:"tournaments"`
}

// TournamentOutput flattens one tournament and division pair for output.
type TournamentOutput struct {
	TournamentID string             `json:"tournament_id"`
	Name         string             `json:"name"`
	Date         string             `json:"date"`
	Division     string             `json:"division"`
	Players      []PlayerExtraction `json:"players"`
}

// Serialize assembles the output payload from division results.
func Serialize(results []TournamentDivisionResult, generatedAt time.Time) Output {
	payload := Output{
		GeneratedAt: generatedAt.UTC(),
		Source:      pokedata.BaseURL,
		Tournaments: make([]TournamentOutput, 0, len(results)),
	}
	for _, entry := range results {
		payload.Tournaments = append(payload.Tournaments, TournamentOutput{
			TournamentID: entry.Tournament.ID,
			Name:         entry.Tournament.Name,
			Date:         entry.Tournament.DateText,
			Division:     entry.Division,
			Players:      entry.Players,
		})
	}
	return payload
}

// WriteOutput writes the payload as indented JSON, creating parent
// directories as needed.
func WriteOutput(payload Output, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("[Extract] Wrote %s (%d tournaments)", path, len(payload.Tournaments))
	return nil
}
