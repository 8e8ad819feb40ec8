package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vgc-tools/team-extractor/internal/pokedata"
)

func TestSerializeAndWriteOutput(t *testing.T) {
	placing := 1
	results := []TournamentDivisionResult{
		{
			Tournament: pokedata.TournamentSummary{
				ID:       "0001234",
				Name:     "Sample Championship",
				DateText: "January 1-2, 2025",
			},
			Division: "masters",
			Players: []PlayerExtraction{
				{
					PlayerName: "Jane Doe",
					Country:    "US",
					Placing:    &placing,
					Record:     map[string]int{"wins": 9},
					IsValid:    true,
				},
			},
		},
	}
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	payload := Serialize(results, generatedAt)
	if payload.Source != pokedata.BaseURL {
		t.Errorf("source = %q", payload.Source)
	}
	if !payload.GeneratedAt.Equal(generatedAt) {
		t.Errorf("generated_at = %v", payload.GeneratedAt)
	}

	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := WriteOutput(payload, path); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	tournaments, ok := decoded["tournaments"].([]interface{})
	if !ok || len(tournaments) != 1 {
		t.Fatalf("tournaments = %v", decoded["tournaments"])
	}
	entry := tournaments[0].(map[string]interface{})
	if entry["tournament_id"] != "0001234" || entry["division"] != "masters" {
		t.Errorf("entry = %v", entry)
	}
}
