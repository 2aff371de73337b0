package stats

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

type stubLoader struct {
	plays  []pbp.Play
	events []pbp.PlayStatEvent
	err    error
}

func (s *stubLoader) LoadPlays(_ context.Context, season int) ([]pbp.Play, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []pbp.Play
	for _, p := range s.plays {
		if p.Season == season {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubLoader) LoadPlayStats(_ context.Context, season int, gameIDs []string) ([]pbp.PlayStatEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}
	var out []pbp.PlayStatEvent
	for _, e := range s.events {
		if e.Season == season && wanted[e.GameID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func fixtureLoader() *stubLoader {
	return &stubLoader{plays: fixturePlays(), events: fixtureEvents()}
}

func TestCalculateRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name  string
		p     Params
		param string
	}{
		{"summary level", Params{Seasons: []int{2024}, SummaryLevel: "month"}, "summary_level"},
		{"stat type", Params{Seasons: []int{2024}, StatType: "coach"}, "stat_type"},
		{"season type", Params{Seasons: []int{2024}, SeasonType: "PRE"}, "season_type"},
		{"season before 1999", Params{Seasons: []int{1998}}, "seasons"},
		{"season in the future", Params{Seasons: []int{3000}}, "seasons"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(context.Background(), fixtureLoader(), tc.p, testLogger())
			var perr *InvalidParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.param, perr.Param)
		})
	}
}

func TestCalculateNoData(t *testing.T) {
	ld := &stubLoader{plays: regSeasonPlays(), events: regSeasonEvents()}
	_, err := Calculate(context.Background(), ld, Params{
		Seasons:    []int{2024},
		SeasonType: SeasonPOST,
	}, testLogger())

	var nderr *NoDataError
	require.ErrorAs(t, err, &nderr)
	assert.Equal(t, []int{2024}, nderr.Seasons)
	assert.Equal(t, SeasonPOST, nderr.SeasonType)
}

func TestCalculatePropagatesLoaderErrors(t *testing.T) {
	boom := errors.New("upstream unavailable")
	_, err := Calculate(context.Background(), &stubLoader{err: boom}, Params{Seasons: []int{2024}}, testLogger())
	require.ErrorIs(t, err, boom)
}

func TestCalculateWeekPlayer(t *testing.T) {
	rows, err := Calculate(context.Background(), fixtureLoader(), Params{
		Seasons:      []int{2024},
		SummaryLevel: SummaryWeek,
		StatType:     StatPlayer,
		SeasonType:   SeasonALL,
	}, testLogger())
	require.NoError(t, err)

	qb := findRow(rows, qbAllen, game1)
	require.NotNil(t, qb)
	assert.Equal(t, 2, qb.Completions)
	assert.Equal(t, 3, qb.Attempts)
	assert.Equal(t, 37.0, qb.PassingYards)
	require.NotNil(t, qb.PassingEPA)
	assert.InDelta(t, 0.85, *qb.PassingEPA, 1e-5)
}

func TestCalculateSeasonTypeFiltersBothLevels(t *testing.T) {
	for _, level := range []SummaryLevel{SummaryWeek, SummarySeason} {
		rows, err := Calculate(context.Background(), fixtureLoader(), Params{
			Seasons:      []int{2024},
			SummaryLevel: level,
			SeasonType:   SeasonREG,
		}, testLogger())
		require.NoError(t, err)
		for _, r := range rows {
			assert.NotContains(t, r.SeasonType, "POST",
				"level %s must exclude playoff games under REG", level)
		}
	}
}

func TestCalculateDefaults(t *testing.T) {
	// Defaulted seasons resolve to the most recent season, which has no
	// fixture data, so the loader comes back empty.
	_, err := Calculate(context.Background(), &stubLoader{}, Params{}, testLogger())
	var nderr *NoDataError
	require.ErrorAs(t, err, &nderr)
	assert.Equal(t, SeasonREG, nderr.SeasonType)
}

func TestCalculateRepeatable(t *testing.T) {
	p := Params{Seasons: []int{2024}, SummaryLevel: SummarySeason, SeasonType: SeasonALL}
	a, err := Calculate(context.Background(), fixtureLoader(), p, testLogger())
	require.NoError(t, err)
	b, err := Calculate(context.Background(), fixtureLoader(), p, testLogger())
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(a, b))
}
