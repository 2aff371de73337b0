// Package loader connects the stats engine to the nflverse downloads through
// a season-keyed disk cache of the compressed release assets.
//
// Completed seasons are immutable: once a file is on disk it is never fetched
// again. The in-progress season gets new games weekly, so its files are
// re-downloaded after a staleness window.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/nflverse"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/schedule"
)

// CurrentSeasonTTL is the staleness window for in-progress season assets.
const CurrentSeasonTTL = 24 * time.Hour

// Fetcher downloads raw release assets. *nflverse.Client satisfies this.
type Fetcher interface {
	PlayByPlay(ctx context.Context, season int) ([]byte, error)
	PlayStats(ctx context.Context, season int) ([]byte, error)
}

// CachingLoader implements stats.Loader over a Fetcher plus a disk cache.
type CachingLoader struct {
	fetcher Fetcher
	dir     string
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a caching loader rooted at dir. The directory is created on
// first use.
func New(fetcher Fetcher, dir string, logger *slog.Logger) *CachingLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingLoader{fetcher: fetcher, dir: dir, logger: logger, now: time.Now}
}

// LoadPlays returns the decoded play-by-play rows for one season.
func (l *CachingLoader) LoadPlays(ctx context.Context, season int) ([]pbp.Play, error) {
	data, err := l.asset(ctx, season, fmt.Sprintf("play_by_play_%d.csv.gz", season), l.fetcher.PlayByPlay)
	if err != nil {
		return nil, err
	}
	return nflverse.DecodePlaysGzip(data)
}

// LoadPlayStats returns the decoded play-stat events for one season,
// restricted to the given games.
func (l *CachingLoader) LoadPlayStats(ctx context.Context, season int, gameIDs []string) ([]pbp.PlayStatEvent, error) {
	data, err := l.asset(ctx, season, fmt.Sprintf("play_stats_%d.csv.gz", season), l.fetcher.PlayStats)
	if err != nil {
		return nil, err
	}
	events, err := nflverse.DecodePlayStatsGzip(data)
	if err != nil {
		return nil, err
	}
	if gameIDs == nil {
		return events, nil
	}
	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}
	out := events[:0]
	for _, e := range events {
		if wanted[e.GameID] {
			out = append(out, e)
		}
	}
	return out, nil
}

// Warm downloads both assets for a season into the cache without decoding.
func (l *CachingLoader) Warm(ctx context.Context, season int) error {
	if _, err := l.asset(ctx, season, fmt.Sprintf("play_by_play_%d.csv.gz", season), l.fetcher.PlayByPlay); err != nil {
		return err
	}
	_, err := l.asset(ctx, season, fmt.Sprintf("play_stats_%d.csv.gz", season), l.fetcher.PlayStats)
	return err
}

func (l *CachingLoader) asset(ctx context.Context, season int, name string, fetch func(context.Context, int) ([]byte, error)) ([]byte, error) {
	path := filepath.Join(l.dir, name)

	if data, ok := l.fresh(path, season); ok {
		return data, nil
	}

	data, err := fetch(ctx, season)
	if err != nil {
		// A stale copy beats a failed refresh for the current season.
		if cached, readErr := os.ReadFile(path); readErr == nil {
			l.logger.Warn("refresh failed, serving stale cache", "asset", name, "error", err)
			return cached, nil
		}
		return nil, err
	}

	if err := l.store(path, data); err != nil {
		return nil, err
	}
	l.logger.Info("cached asset", "asset", name, "bytes", len(data))
	return data, nil
}

// fresh returns the cached bytes when the on-disk copy is still valid.
func (l *CachingLoader) fresh(path string, season int) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if season >= schedule.MostRecentSeason(l.now()) && l.now().Sub(info.ModTime()) > CurrentSeasonTTL {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// store writes atomically via a temp file so readers never see a torn asset.
func (l *CachingLoader) store(path string, data []byte) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(l.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish cache file: %w", err)
	}
	return nil
}
