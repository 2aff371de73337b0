// Package store persists aggregated stat rows to Postgres so the API can
// serve them without recomputing. One table per stat type, metrics as JSONB.
//
// Expected schema:
//
//	CREATE TABLE player_stats (
//	    player_id     TEXT NOT NULL,
//	    season        INT  NOT NULL,
//	    week          INT  NOT NULL DEFAULT 0,  -- 0 for season summaries
//	    summary_level TEXT NOT NULL,
//	    game_id       TEXT,
//	    team          TEXT,
//	    season_type   TEXT,
//	    stats         JSONB NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (player_id, season, week, summary_level)
//	);
//
//	CREATE TABLE team_stats (
//	    team          TEXT NOT NULL,
//	    season        INT  NOT NULL,
//	    week          INT  NOT NULL DEFAULT 0,
//	    summary_level TEXT NOT NULL,
//	    game_id       TEXT,
//	    season_type   TEXT,
//	    stats         JSONB NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (team, season, week, summary_level)
//	);
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/config"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/db"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/stats"
)

// Result tracks counts and errors from a seeding operation.
type Result struct {
	PlayerRowsUpserted int
	TeamRowsUpserted   int
	Errors             []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.PlayerRowsUpserted += other.PlayerRowsUpserted
	r.TeamRowsUpserted += other.TeamRowsUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf("player_rows=%d team_rows=%d errors=%d",
		r.PlayerRowsUpserted, r.TeamRowsUpserted, len(r.Errors))
}

// Store writes aggregated stat rows through a shared connection pool.
type Store struct {
	pool   *db.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(pool *db.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// UpsertRows writes one aggregation's output. Rows that fail are recorded in
// the result and skipped; only infrastructure failures abort the batch.
func (s *Store) UpsertRows(ctx context.Context, g stats.Grouping, rows []stats.StatRow) (Result, error) {
	var result Result
	for i := range rows {
		row := &rows[i]
		var err error
		if g.Type == stats.StatTeam {
			err = s.upsertTeamRow(ctx, g, row)
			if err == nil {
				result.TeamRowsUpserted++
			}
		} else {
			err = s.upsertPlayerRow(ctx, g, row)
			if err == nil {
				result.PlayerRowsUpserted++
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.AddErrorf("upsert %s: %v", row.String(), err)
		}
	}
	s.logger.Info("stat rows upserted", "summary", result.Summary())
	return result, nil
}

func (s *Store) upsertPlayerRow(ctx context.Context, g stats.Grouping, row *stats.StatRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO `+config.PlayerStatsTable+` (
			player_id, season, week, summary_level, game_id, team, season_type, stats
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (player_id, season, week, summary_level) DO UPDATE SET
			game_id = EXCLUDED.game_id,
			team = EXCLUDED.team,
			season_type = EXCLUDED.season_type,
			stats = EXCLUDED.stats,
			updated_at = NOW()`,
		row.PlayerID, row.Season, row.Week, string(g.Level),
		nilEmpty(row.GameID), row.Team, row.SeasonType, payload,
	)
	return err
}

func (s *Store) upsertTeamRow(ctx context.Context, g stats.Grouping, row *stats.StatRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO `+config.TeamStatsTable+` (
			team, season, week, summary_level, game_id, season_type, stats
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (team, season, week, summary_level) DO UPDATE SET
			game_id = EXCLUDED.game_id,
			season_type = EXCLUDED.season_type,
			stats = EXCLUDED.stats,
			updated_at = NOW()`,
		row.Team, row.Season, row.Week, string(g.Level),
		nilEmpty(row.GameID), row.SeasonType, payload,
	)
	return err
}

// SeasonExists reports whether a season already has rows for the stat type.
func (s *Store) SeasonExists(ctx context.Context, statType stats.StatType, season int) (bool, error) {
	stmt := "check_player_stats_season"
	if statType == stats.StatTeam {
		stmt = "check_team_stats_season"
	}
	var one int
	err := s.pool.QueryRow(ctx, stmt, season).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
