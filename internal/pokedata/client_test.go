package pokedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/vgc-tools/team-extractor/internal/fetchcache"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher := fetchcache.New(fetchcache.Options{RateLimit: rate.Inf})
	return NewClient(fetcher, server.URL, t.TempDir())
}

func TestClientTournamentList(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<button onclick="location.href='0001234/'" type="button">Sample Cup
		 - June 2025</button>`))
	}))

	tournaments, err := client.TournamentList(context.Background(), false)
	if err != nil {
		t.Fatalf("TournamentList() error = %v", err)
	}
	if len(tournaments) != 1 {
		t.Fatalf("got %d tournaments, want 1", len(tournaments))
	}
	if tournaments[0].ID != "0001234" || tournaments[0].Name != "Sample Cup" {
		t.Errorf("unexpected summary: %+v", tournaments[0])
	}
}

func TestClientDivisionsDefaultsToMasters(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>no buttons here</body></html>"))
	}))

	divisions, err := client.Divisions(context.Background(), "0001234", false)
	if err != nil {
		t.Fatalf("Divisions() error = %v", err)
	}
	if len(divisions) != 1 || divisions[0] != "masters" {
		t.Errorf("Divisions() = %v, want [masters]", divisions)
	}
}

func TestClientDivisionRoster(t *testing.T) {
	var requestedPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte(`[
			{
				"name": "Jane Doe [US]",
				"placing": 1,
				"record": {"wins": 9, "losses": 1, "ties": 0},
				"decklist": [
					{"name": "Flutter Mane", "teratype": "Fairy", "ability": "Protosynthesis",
					 "item": "Focus Sash", "badges": ["Moonblast", "Shadow Ball"]}
				]
			}
		]`))
	}))

	players, err := client.DivisionRoster(context.Background(), "0001234", "Masters", false)
	if err != nil {
		t.Fatalf("DivisionRoster() error = %v", err)
	}

	// Division slug is lowercased in the path, capitalized in the filename.
	if want := "/0001234/masters/0001234_Masters.json"; requestedPath != want {
		t.Errorf("requested %q, want %q", requestedPath, want)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
	player := players[0]
	if player.Name != "Jane Doe [US]" {
		t.Errorf("name = %q", player.Name)
	}
	if player.Placing == nil || *player.Placing != 1 {
		t.Errorf("placing = %v, want 1", player.Placing)
	}
	if player.Record["wins"] != 9 {
		t.Errorf("record = %v", player.Record)
	}
	if len(player.Decklist) != 1 || len(player.Decklist[0].Badges) != 2 {
		t.Errorf("decklist = %+v", player.Decklist)
	}
}

func TestClientDivisionRosterRejectsNonArray(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "not found"}`))
	}))

	if _, err := client.DivisionRoster(context.Background(), "0001234", "masters", false); err == nil {
		t.Error("expected an error for a non-array payload")
	}
}

func TestClientDivisionRosterPropagatesStatusError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(http.NotFound))

	_, err := client.DivisionRoster(context.Background(), "0001234", "masters", false)
	var statusErr *fetchcache.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *fetchcache.StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", statusErr.StatusCode)
	}
}
