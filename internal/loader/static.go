package loader

import (
	"context"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

// Static serves play data held in memory. Used for local files already
// decoded and in tests that need a stats.Loader without network or disk.
type Static struct {
	Plays  []pbp.Play
	Events []pbp.PlayStatEvent
}

func (s *Static) LoadPlays(_ context.Context, season int) ([]pbp.Play, error) {
	var out []pbp.Play
	for _, p := range s.Plays {
		if p.Season == season {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Static) LoadPlayStats(_ context.Context, season int, gameIDs []string) ([]pbp.PlayStatEvent, error) {
	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}
	var out []pbp.PlayStatEvent
	for _, e := range s.Events {
		if e.Season == season && (gameIDs == nil || wanted[e.GameID]) {
			out = append(out, e)
		}
	}
	return out, nil
}
