package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/schedule"
)

// Loader supplies raw play-by-play rows and play-stat events for one season.
// Implementations live outside the engine (HTTP + disk cache, fixtures);
// the engine treats everything it returns as an immutable snapshot.
type Loader interface {
	LoadPlays(ctx context.Context, season int) ([]pbp.Play, error)
	LoadPlayStats(ctx context.Context, season int, gameIDs []string) ([]pbp.PlayStatEvent, error)
}

// Params are the orchestrator arguments. Zero values select the defaults:
// the most recent season, season summary, player stats, regular season.
type Params struct {
	Seasons      []int
	SummaryLevel SummaryLevel
	StatType     StatType
	SeasonType   SeasonType
}

func (p *Params) applyDefaults(now time.Time) {
	if len(p.Seasons) == 0 {
		p.Seasons = []int{schedule.MostRecentSeason(now)}
	}
	if p.SummaryLevel == "" {
		p.SummaryLevel = SummarySeason
	}
	if p.StatType == "" {
		p.StatType = StatPlayer
	}
	if p.SeasonType == "" {
		p.SeasonType = SeasonREG
	}
}

func (p *Params) validate(now time.Time) error {
	switch p.SummaryLevel {
	case SummaryWeek, SummarySeason:
	default:
		return &InvalidParameterError{Param: "summary_level", Value: string(p.SummaryLevel), Allowed: "week, season"}
	}
	switch p.StatType {
	case StatPlayer, StatTeam:
	default:
		return &InvalidParameterError{Param: "stat_type", Value: string(p.StatType), Allowed: "player, team"}
	}
	switch p.SeasonType {
	case SeasonREG, SeasonPOST, SeasonALL:
	default:
		return &InvalidParameterError{Param: "season_type", Value: string(p.SeasonType), Allowed: "REG, POST, ALL"}
	}
	latest := schedule.MostRecentSeason(now)
	for _, s := range p.Seasons {
		if s < schedule.FirstSeason || s > latest {
			return &InvalidParameterError{
				Param:   "seasons",
				Value:   fmt.Sprintf("%d", s),
				Allowed: fmt.Sprintf("%d-%d", schedule.FirstSeason, latest),
			}
		}
	}
	return nil
}

// Calculate is the public entry point: it validates parameters, loads and
// normalizes the requested seasons, flags play outcomes, runs the category
// extractors and returns the aggregated stat table. Pure function of its
// inputs; repeated calls with identical snapshots yield identical output.
func Calculate(ctx context.Context, ld Loader, p Params, logger *slog.Logger) ([]StatRow, error) {
	p.applyDefaults(time.Now())
	if err := p.validate(time.Now()); err != nil {
		return nil, err
	}
	g := Grouping{Level: p.SummaryLevel, Type: p.StatType}

	var raw []pbp.Play
	for _, season := range p.Seasons {
		plays, err := ld.LoadPlays(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("load plays for %d: %w", season, err)
		}
		raw = append(raw, plays...)
	}

	plays, err := pbp.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if p.SeasonType != SeasonALL {
		filtered := plays[:0:0]
		for _, play := range plays {
			if play.SeasonType == string(p.SeasonType) {
				filtered = append(filtered, play)
			}
		}
		plays = filtered
	}
	if len(plays) == 0 {
		return nil, &NoDataError{Seasons: p.Seasons, SeasonType: p.SeasonType}
	}

	gameIDs := pbp.GameIDs(plays)
	var events []pbp.PlayStatEvent
	for _, season := range p.Seasons {
		evs, err := ld.LoadPlayStats(ctx, season, gameIDs)
		if err != nil {
			return nil, fmt.Errorf("load play stats for %d: %w", season, err)
		}
		events = append(events, evs...)
	}

	logger.Info("calculating stats",
		"seasons", p.Seasons, "summary_level", p.SummaryLevel,
		"stat_type", p.StatType, "season_type", p.SeasonType,
		"plays", len(plays), "events", len(events))

	flagged := FlagPlayStats(plays, events, logger)
	cats := ExtractCategories(plays, g)
	rows := Aggregate(flagged, cats, g)

	logger.Info("stats calculated", "rows", len(rows))
	return rows, nil
}
