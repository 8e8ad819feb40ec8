package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vgc-tools/team-extractor/internal/pokedata"
	"github.com/vgc-tools/team-extractor/internal/showdown"
)

// Pipeline runs roster extraction across tournaments. Tournament fetching is
// I/O bound and runs on its own worker pool; slot conversion is CPU bound
// and shares a second pool sized to the machine across all tournaments.
type Pipeline struct {
	Client    *pokedata.Client
	Dataset   *showdown.Dataset
	Divisions []string
	Workers   int
	Force     bool
	Logger    *slog.Logger
}

// Run processes the given tournaments and returns division results in input
// order. A tournament that fails to fetch or parse is logged and dropped so
// one broken upstream page cannot sink the batch; context cancellation
// aborts the whole run.
func (p *Pipeline) Run(ctx context.Context, summaries []pokedata.TournamentSummary) ([]TournamentDivisionResult, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Conversion work from every tournament funnels through one semaphore
	// so total CPU concurrency stays bounded no matter how many
	// tournaments are in flight.
	convertSem := make(chan struct{}, runtime.GOMAXPROCS(0))

	perTournament := make([][]TournamentDivisionResult, len(summaries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, summary := range summaries {
		idx, summary := idx, summary
		group.Go(func() error {
			results, err := p.processTournament(groupCtx, summary, convertSem)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				logger.Error("tournament failed", "tournament", summary.ID, "error", err)
				return nil
			}
			perTournament[idx] = results
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var results []TournamentDivisionResult
	for _, batch := range perTournament {
		results = append(results, batch...)
	}
	return results, nil
}

func (p *Pipeline) processTournament(ctx context.Context, summary pokedata.TournamentSummary, convertSem chan struct{}) ([]TournamentDivisionResult, error) {
	available, err := p.Client.Divisions(ctx, summary.ID, p.Force)
	if err != nil {
		return nil, err
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, division := range available {
		availableSet[division] = struct{}{}
	}

	var results []TournamentDivisionResult
	for _, division := range p.Divisions {
		if _, ok := availableSet[division]; !ok {
			continue
		}
		roster, err := p.Client.DivisionRoster(ctx, summary.ID, division, p.Force)
		if err != nil {
			return nil, fmt.Errorf("division %s: %w", division, err)
		}

		players := make([]PlayerExtraction, len(roster))
		var wg sync.WaitGroup
		for i, raw := range roster {
			i, raw := i, raw
			wg.Add(1)
			go func() {
				defer wg.Done()
				convertSem <- struct{}{}
				defer func() { <-convertSem }()
				players[i] = TransformPlayer(p.Dataset, raw)
			}()
		}
		wg.Wait()

		// Placing ascending, unplaced players last. The pre-sort order
		// is the roster order, so ties stay deterministic.
		sort.SliceStable(players, func(i, j int) bool {
			pi, pj := players[i].Placing, players[j].Placing
			switch {
			case pi == nil:
				return false
			case pj == nil:
				return true
			default:
				return *pi < *pj
			}
		})

		results = append(results, TournamentDivisionResult{
			Tournament: summary,
			Division:   division,
			Players:    players,
		})
	}
	return results, nil
}
