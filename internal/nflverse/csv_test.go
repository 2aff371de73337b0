package nflverse

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

const samplePBP = `game_id,play_id,season,week,season_type,home_team,away_team,posteam,defteam,play_type,down,ydstogo,yardline_100,qb_dropback,qb_scramble,sack,epa,qb_epa,cpoe,success,air_yards,passer_player_id,receiver_player_id,complete_pass
2024_01_MIA_BUF,1,2024,1,REG,BUF,MIA,BUF,MIA,pass,1,10,75,1,0,0,0.45,0.41,NA,1,8,00-0034857,00-0033908,1
2024_01_MIA_BUF,2,2024,1,REG,BUF,MIA,BUF,MIA,run,2,6,67,0,0,0,-0.12,NA,NA,0,NA,,,0
`

const samplePlayStats = `game_id,play_id,season,week,gsis_player_id,player_name,team_abbr,stat_id,yards
2024_01_MIA_BUF,1,2024,1,00-0034857,J.Allen,BUF,15,12
2024_01_MIA_BUF,1,2024,1,00-0033908,S.Diggs,BUF,21,12
2024_01_MIA_BUF,1,2024,1,,,BUF,4,0
`

func TestDecodePlays(t *testing.T) {
	plays, err := DecodePlays(strings.NewReader(samplePBP))
	require.NoError(t, err)
	require.Len(t, plays, 2)

	p := plays[0]
	assert.Equal(t, "2024_01_MIA_BUF", p.GameID)
	assert.Equal(t, 1, p.PlayID)
	assert.Equal(t, 2024, p.Season)
	assert.Equal(t, "pass", p.PlayType)
	assert.True(t, p.QBDropback)
	assert.True(t, p.CompletePass)
	assert.Equal(t, "00-0034857", p.PasserID)
	require.NotNil(t, p.EPA)
	assert.InDelta(t, 0.45, *p.EPA, 1e-9)
	assert.Nil(t, p.CPOE, "NA decodes to nil, not zero")
	require.NotNil(t, p.AirYards)
	assert.InDelta(t, 8, *p.AirYards, 1e-9)

	run := plays[1]
	assert.Equal(t, "run", run.PlayType)
	assert.Nil(t, run.QBEPA)
	assert.Nil(t, run.AirYards)
	assert.Empty(t, run.PasserID)
}

func TestDecodePlaysMissingColumn(t *testing.T) {
	csv := "game_id,play_id,season,week,home_team,away_team,posteam,defteam,play_type\n"
	_, err := DecodePlays(strings.NewReader(csv))

	var serr *pbp.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "play_by_play", serr.Table)
	assert.Equal(t, "season_type", serr.Column)
}

func TestDecodePlayStats(t *testing.T) {
	events, err := DecodePlayStats(strings.NewReader(samplePlayStats))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "00-0034857", events[0].PlayerID)
	assert.Equal(t, 15, events[0].StatID)
	assert.Equal(t, 12.0, events[0].Yards)
	assert.Empty(t, events[2].PlayerID, "team credits carry no player id")
	assert.Equal(t, "BUF", events[2].Team)
}

func TestDecodePlayStatsPlayerIDAlias(t *testing.T) {
	csv := "game_id,play_id,season,week,player_id,team,stat_id,yards\n" +
		"2024_01_MIA_BUF,1,2024,1,00-0034857,BUF,15,12\n"
	events, err := DecodePlayStats(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "00-0034857", events[0].PlayerID)
	assert.Equal(t, "BUF", events[0].Team)
}

func TestDecodeGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(samplePBP))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	plays, err := DecodePlaysGzip(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, plays, 2)

	_, err = DecodePlaysGzip([]byte("not gzip"))
	assert.Error(t, err)
}
