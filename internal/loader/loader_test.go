package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pbpCSV = `game_id,play_id,season,week,season_type,home_team,away_team,posteam,defteam,play_type,down,ydstogo
2010_01_MIA_BUF,1,2010,1,REG,BUF,MIA,BUF,MIA,pass,1,10
`

const statsCSV = `game_id,play_id,season,week,gsis_player_id,player_name,team_abbr,stat_id,yards
2010_01_MIA_BUF,1,2010,1,00-0034857,J.Allen,BUF,15,12
2010_02_BUF_NYJ,1,2010,2,00-0034857,J.Allen,BUF,15,9
`

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type countingFetcher struct {
	pbp, stats []byte
	pbpCalls   int
	statsCalls int
	err        error
}

func (f *countingFetcher) PlayByPlay(context.Context, int) ([]byte, error) {
	f.pbpCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pbp, nil
}

func (f *countingFetcher) PlayStats(context.Context, int) ([]byte, error) {
	f.statsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func newTestLoader(t *testing.T, f Fetcher) *CachingLoader {
	t.Helper()
	l := New(f, t.TempDir(), nil)
	l.now = func() time.Time { return time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC) }
	return l
}

func TestLoaderFetchesOnceForCompletedSeason(t *testing.T) {
	f := &countingFetcher{pbp: gz(t, pbpCSV), stats: gz(t, statsCSV)}
	l := newTestLoader(t, f)

	for i := 0; i < 3; i++ {
		plays, err := l.LoadPlays(context.Background(), 2010)
		require.NoError(t, err)
		require.Len(t, plays, 1)
	}
	assert.Equal(t, 1, f.pbpCalls, "completed season downloads exactly once")
}

func TestLoaderFiltersPlayStatsByGame(t *testing.T) {
	f := &countingFetcher{pbp: gz(t, pbpCSV), stats: gz(t, statsCSV)}
	l := newTestLoader(t, f)

	events, err := l.LoadPlayStats(context.Background(), 2010, []string{"2010_01_MIA_BUF"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2010_01_MIA_BUF", events[0].GameID)

	all, err := l.LoadPlayStats(context.Background(), 2010, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoaderRefreshesCurrentSeason(t *testing.T) {
	f := &countingFetcher{pbp: gz(t, pbpCSV), stats: gz(t, statsCSV)}
	l := newTestLoader(t, f)

	// 2025 is the in-progress season on the fixed clock.
	_, err := l.LoadPlays(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, f.pbpCalls)

	// Inside the staleness window the cache is served.
	_, err = l.LoadPlays(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, f.pbpCalls)

	// Age the file past the window and the asset is re-downloaded.
	path := filepath.Join(l.dir, "play_by_play_2025.csv.gz")
	old := l.now().Add(-2 * CurrentSeasonTTL)
	require.NoError(t, os.Chtimes(path, old, old))

	_, err = l.LoadPlays(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, f.pbpCalls)
}

func TestLoaderServesStaleOnRefreshFailure(t *testing.T) {
	f := &countingFetcher{pbp: gz(t, pbpCSV), stats: gz(t, statsCSV)}
	l := newTestLoader(t, f)

	_, err := l.LoadPlays(context.Background(), 2025)
	require.NoError(t, err)

	path := filepath.Join(l.dir, "play_by_play_2025.csv.gz")
	old := l.now().Add(-2 * CurrentSeasonTTL)
	require.NoError(t, os.Chtimes(path, old, old))

	f.err = errors.New("release host down")
	plays, err := l.LoadPlays(context.Background(), 2025)
	require.NoError(t, err, "stale cache backs up a failed refresh")
	assert.Len(t, plays, 1)
}

func TestLoaderPropagatesFetchErrors(t *testing.T) {
	f := &countingFetcher{err: errors.New("boom")}
	l := newTestLoader(t, f)

	_, err := l.LoadPlays(context.Background(), 2010)
	require.Error(t, err)
}
