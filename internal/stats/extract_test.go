package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekPlayer = Grouping{Level: SummaryWeek, Type: StatPlayer}

func TestExtractPassing(t *testing.T) {
	out := ExtractPassing(fixturePlays(), weekPlayer)

	k := grainKey{Season: 2024, Week: 1, GameID: game1, Entity: qbAllen}
	ps, ok := out[k]
	require.True(t, ok)

	assert.InDelta(t, 0.45-0.4-1.2+2.0, ps.PassingEPA, 1e-9)
	require.NotNil(t, ps.PassingCPOE)
	assert.InDelta(t, (3.0-20.0+10.0)/3.0, *ps.PassingCPOE, 1e-9, "sack play lacks CPOE and stays out of the denominator")
	require.NotNil(t, ps.PassingSuccessRate)
	assert.InDelta(t, 0.5, *ps.PassingSuccessRate, 1e-9)
}

func TestExtractRushingIncludesScrambles(t *testing.T) {
	out := ExtractRushing(fixturePlays(), weekPlayer)

	cook := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: rbCook}]
	assert.InDelta(t, 0.2, cook.RushingEPA, 1e-9)

	allen, ok := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: qbAllen}]
	require.True(t, ok, "scrambles are run plays and count toward rushing EPA")
	assert.InDelta(t, 0.8, allen.RushingEPA, 1e-9)
}

func TestExtractReceiving(t *testing.T) {
	out := ExtractReceiving(fixturePlays(), weekPlayer)

	diggs := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: wrDiggs}]
	assert.InDelta(t, 0.5+2.1, diggs.ReceivingEPA, 1e-9)

	shakir := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: wrShakir}]
	assert.InDelta(t, -0.4, shakir.ReceivingEPA, 1e-9, "incomplete targets still count")
}

func TestExtractDropback(t *testing.T) {
	out := ExtractDropback(fixturePlays(), weekPlayer)

	db, ok := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: qbAllen}]
	require.True(t, ok)
	assert.Equal(t, 5, db.Dropbacks, "four pass plays plus one scramble")
	assert.InDelta(t, 0.45-0.4-1.2+0.8+2.0, db.DropbackEPA, 1e-9)
	require.NotNil(t, db.DropbackSuccessRate)
	assert.InDelta(t, 3.0/5.0, *db.DropbackSuccessRate, 1e-9)
	require.NotNil(t, db.EPAPerDropback)
	assert.InDelta(t, (0.45-0.4-1.2+0.8+2.0)/5.0, *db.EPAPerDropback, 1e-9)
}

func TestExtractScramble(t *testing.T) {
	out := ExtractScramble(fixturePlays(), weekPlayer)

	sc, ok := out[grainKey{Season: 2024, Week: 1, GameID: game1, Entity: qbAllen}]
	require.True(t, ok)
	assert.Equal(t, 1, sc.Scrambles)
	assert.InDelta(t, 0.8, sc.ScrambleEPA, 1e-9)
}

func TestExtractTeamGrain(t *testing.T) {
	g := Grouping{Level: SummarySeason, Type: StatTeam}
	out := ExtractPassing(fixturePlays(), g)

	buf, ok := out[grainKey{Season: 2024, Entity: "BUF"}]
	require.True(t, ok)
	assert.InDelta(t, 0.45-0.4-1.2+2.0+0.3+0.6, buf.PassingEPA, 1e-9)
	assert.Len(t, out, 1, "team grain groups by possession team, not player")
}

func TestExtractSeasonGrainCollapsesWeeks(t *testing.T) {
	g := Grouping{Level: SummarySeason, Type: StatPlayer}
	out := ExtractReceiving(fixturePlays(), g)

	diggs, ok := out[grainKey{Season: 2024, Entity: wrDiggs}]
	require.True(t, ok)
	assert.InDelta(t, 0.5+2.1+0.3+0.6, diggs.ReceivingEPA, 1e-9)
}
