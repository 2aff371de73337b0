// Command nflstats is the NFL statistics CLI.
//
// Usage:
//
//	nflstats calculate --seasons 2023,2024 --summary-level week --stat-type player
//	nflstats calculate --seasons 2024 --season-type POST --output stats.csv
//	nflstats seed --seasons 2024 --summary-level season --stat-type player
//	nflstats cache --seasons 2020,2021,2022
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/config"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/db"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/loader"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/nflverse"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/stats"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "nflstats",
		Short: "NFL play-by-play statistics CLI",
	}

	root.AddCommand(calculateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(cacheCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// statFlags are the aggregation parameters shared by calculate and seed.
type statFlags struct {
	seasons      []int
	summaryLevel string
	statType     string
	seasonType   string
}

func (f *statFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.seasons, "seasons", nil, "Season years (default: most recent)")
	cmd.Flags().StringVar(&f.summaryLevel, "summary-level", "season", "Summary level (week, season)")
	cmd.Flags().StringVar(&f.statType, "stat-type", "player", "Stat type (player, team)")
	cmd.Flags().StringVar(&f.seasonType, "season-type", "REG", "Season type (REG, POST, ALL)")
}

func (f *statFlags) params() stats.Params {
	return stats.Params{
		Seasons:      f.seasons,
		SummaryLevel: stats.SummaryLevel(f.summaryLevel),
		StatType:     stats.StatType(f.statType),
		SeasonType:   stats.SeasonType(f.seasonType),
	}
}

// --------------------------------------------------------------------------
// calculate command
// --------------------------------------------------------------------------

func calculateCmd() *cobra.Command {
	var flags statFlags
	var output string
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute aggregated stats and write them as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				ld := newLoader(cfg)
				start := time.Now()
				rows, err := stats.Calculate(ctx, ld, flags.params(), logger)
				if err != nil {
					return err
				}
				logger.Info("Calculation finished",
					"rows", len(rows), "duration", time.Since(start).Round(time.Millisecond))

				out := os.Stdout
				if output != "" && output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create output file: %w", err)
					}
					defer f.Close()
					out = f
				}
				return writeCSV(out, flags.params(), rows)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	return cmd
}

func writeCSV(w io.Writer, p stats.Params, rows []stats.StatRow) error {
	g := stats.Grouping{Level: p.SummaryLevel, Type: p.StatType}
	if g.Level == "" {
		g.Level = stats.SummarySeason
	}
	if g.Type == "" {
		g.Type = stats.StatPlayer
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(stats.Columns(g)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record(g)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var flags statFlags
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Compute aggregated stats and upsert them into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				pool, err := db.New(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				ld := newLoader(cfg)
				p := flags.params()
				start := time.Now()
				rows, err := stats.Calculate(ctx, ld, p, logger)
				if err != nil {
					return err
				}

				g := stats.Grouping{Level: p.SummaryLevel, Type: p.StatType}
				st := store.New(pool, logger)
				result, err := st.UpsertRows(ctx, g, rows)
				if err != nil {
					return err
				}
				logger.Info("Seed finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// --------------------------------------------------------------------------
// cache command
// --------------------------------------------------------------------------

func cacheCmd() *cobra.Command {
	var seasons []int
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Download release assets for seasons into the disk cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				if len(seasons) == 0 {
					return fmt.Errorf("--seasons is required")
				}
				ld := newLoader(cfg)
				for _, season := range seasons {
					start := time.Now()
					if err := ld.Warm(ctx, season); err != nil {
						return fmt.Errorf("warm season %d: %w", season, err)
					}
					logger.Info("Season cached", "season", season,
						"duration", time.Since(start).Round(time.Millisecond))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntSliceVar(&seasons, "seasons", nil, "Season years to download")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newLoader(cfg *config.Config) *loader.CachingLoader {
	client := nflverse.NewClient(cfg.NFLverseBaseURL, cfg.NFLverseRateLimit, logger)
	return loader.New(client, cfg.DataDir, logger)
}

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}
