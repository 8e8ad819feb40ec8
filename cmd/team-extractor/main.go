// Package main extracts VGC tournament rosters from Pokedata into a single
// validated JSON file, resolving every species, move, item, and ability
// against Pokémon Showdown reference data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/vgc-tools/team-extractor/internal/config"
	"github.com/vgc-tools/team-extractor/internal/extract"
	"github.com/vgc-tools/team-extractor/internal/fetchcache"
	"github.com/vgc-tools/team-extractor/internal/pokedata"
	"github.com/vgc-tools/team-extractor/internal/showdown"
	"github.com/vgc-tools/team-extractor/internal/version"
)

var (
	limit     = flag.Int("limit", 0, "Limit number of tournaments to process (0 = use config)")
	divisions = flag.String("divisions", "", "Comma-separated divisions to extract (default: config)")
	output    = flag.String("output", "", "Output JSON path (default: config)")
	workers   = flag.Int("workers", 0, "Concurrent tournament downloads (0 = use config)")
	refresh   = flag.Bool("refresh", false, "Redownload cached Pokedata HTML/JSON before processing")
	debugMode = flag.Bool("debug", false, "Enable verbose logging")
	showVer   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("team-extractor " + version.GetVersion())
		os.Exit(0)
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 3
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 3
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runPipeline(ctx, cfg, logger)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		log.Printf("Interrupted by user")
		return 1
	default:
		var statusErr *fetchcache.StatusError
		if errors.As(err, &statusErr) {
			log.Printf("Fatal extraction error: %v", err)
			return 2
		}
		log.Printf("Unexpected failure: %v", err)
		return 3
	}
}

func applyFlags(cfg *config.Config) {
	if *limit > 0 {
		cfg.Extract.Limit = *limit
	}
	if *divisions != "" {
		var parsed []string
		for _, division := range strings.Split(*divisions, ",") {
			if trimmed := strings.ToLower(strings.TrimSpace(division)); trimmed != "" {
				parsed = append(parsed, trimmed)
			}
		}
		if len(parsed) > 0 {
			cfg.Extract.Divisions = parsed
		}
	}
	if *output != "" {
		cfg.Extract.Output = *output
	}
	if *workers > 0 {
		cfg.Extract.Workers = *workers
	}
	if *debugMode {
		cfg.App.DebugMode = true
	}
}

func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	timeout, err := cfg.GetRequestTimeout()
	if err != nil {
		return err
	}
	cacheDir, err := cfg.CacheDir()
	if err != nil {
		return err
	}

	options := fetchcache.DefaultOptions()
	options.Timeout = timeout
	options.UserAgent = version.UserAgent()
	options.Debug = cfg.App.DebugMode
	fetcher := fetchcache.New(options)

	logger.Info("loading Showdown reference data")
	dataset, err := showdown.Load(ctx, fetcher, filepath.Join(cacheDir, "showdown"), false)
	if err != nil {
		return fmt.Errorf("load Showdown data: %w", err)
	}

	client := pokedata.NewClient(fetcher, pokedata.BaseURL, filepath.Join(cacheDir, "pokedata"))
	summaries, err := client.TournamentList(ctx, *refresh)
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	if cfg.Extract.Limit > 0 && len(summaries) > cfg.Extract.Limit {
		summaries = summaries[:cfg.Extract.Limit]
	}
	logger.Info("processing tournaments",
		"count", len(summaries), "divisions", strings.Join(cfg.Extract.Divisions, ","))

	pipeline := &extract.Pipeline{
		Client:    client,
		Dataset:   dataset,
		Divisions: cfg.Extract.Divisions,
		Workers:   cfg.Extract.Workers,
		Force:     *refresh,
		Logger:    logger,
	}
	results, err := pipeline.Run(ctx, summaries)
	if err != nil {
		return err
	}

	payload := extract.Serialize(results, time.Now())
	if err := extract.WriteOutput(payload, cfg.Extract.Output); err != nil {
		return err
	}
	logger.Info("extraction complete",
		"tournaments", len(payload.Tournaments), "output", cfg.Extract.Output)
	return nil
}
