package stats

import (
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

// Shared three-game fixture: two regular-season games and one playoff game,
// all with Buffalo on offense. Small enough to verify by hand, rich enough
// to exercise targets, air yards, sacks, fumbles, scrambles and shares.
const (
	qbAllen   = "00-0034857"
	rbCook    = "00-0036875"
	wrDiggs   = "00-0033908"
	wrShakir  = "00-0037269"
	lbMilano  = "00-0033921"
	game1     = "2024_01_MIA_BUF"
	game2     = "2024_02_BUF_NYJ"
	gamePost  = "2024_19_KC_BUF"
)

func f64(v float64) *float64 { return &v }

func basePlay(gameID string, playID, week int, seasonType string) pbp.Play {
	def := "MIA"
	switch gameID {
	case game2:
		def = "NYJ"
	case gamePost:
		def = "KC"
	}
	return pbp.Play{
		GameID:     gameID,
		PlayID:     playID,
		Season:     2024,
		Week:       week,
		SeasonType: seasonType,
		HomeTeam:   "BUF",
		AwayTeam:   def,
		Posteam:    "BUF",
		Defteam:    def,
		Down:       1,
		YardsToGo:  10,
	}
}

func passPlay(gameID string, playID, week int, seasonType, receiver string, epa, qbEPA float64, cpoe, success *float64) pbp.Play {
	p := basePlay(gameID, playID, week, seasonType)
	p.PlayType = "pass"
	p.QBDropback = true
	p.PasserID = qbAllen
	p.ReceiverID = receiver
	p.EPA = f64(epa)
	p.QBEPA = f64(qbEPA)
	p.CPOE = cpoe
	p.Success = success
	return p
}

func runPlay(gameID string, playID, week int, seasonType, rusher string, epa float64, success *float64) pbp.Play {
	p := basePlay(gameID, playID, week, seasonType)
	p.PlayType = "run"
	p.RusherID = rusher
	p.EPA = f64(epa)
	p.Success = success
	return p
}

func event(gameID string, playID, week int, playerID, playerName string, statID int, yards float64) pbp.PlayStatEvent {
	return pbp.PlayStatEvent{
		GameID:     gameID,
		PlayID:     playID,
		Season:     2024,
		Week:       week,
		PlayerID:   playerID,
		PlayerName: playerName,
		Team:       "BUF",
		StatID:     statID,
		Yards:      yards,
	}
}

// fixturePlays returns the normalized play set for all three games.
func fixturePlays() []pbp.Play {
	scramble := runPlay(game1, 5, 1, "REG", qbAllen, 0.8, f64(1))
	scramble.QBDropback = true
	scramble.QBScramble = true
	scramble.QBEPA = f64(0.8)

	sack := passPlay(game1, 3, 1, "REG", "", -1.2, -1.2, nil, f64(0))
	sack.ReceiverID = ""
	sack.Sack = true

	plays := []pbp.Play{
		passPlay(game1, 1, 1, "REG", wrDiggs, 0.5, 0.45, f64(3), f64(1)),
		passPlay(game1, 2, 1, "REG", wrShakir, -0.4, -0.4, f64(-20), f64(0)),
		sack,
		runPlay(game1, 4, 1, "REG", rbCook, 0.2, f64(1)),
		scramble,
		passPlay(game1, 6, 1, "REG", wrDiggs, 2.1, 2.0, f64(10), f64(1)),

		passPlay(game2, 1, 2, "REG", wrDiggs, 0.3, 0.3, f64(5), f64(1)),
		runPlay(game2, 2, 2, "REG", rbCook, 0.1, f64(1)),

		passPlay(gamePost, 1, 19, "POST", wrDiggs, 0.6, 0.6, f64(2), f64(1)),
	}
	out, err := pbp.Normalize(plays)
	if err != nil {
		panic(err)
	}
	return out
}

// fixtureEvents returns the play-stat credit events matching fixturePlays.
func fixtureEvents() []pbp.PlayStatEvent {
	return []pbp.PlayStatEvent{
		// Game 1, play 1: 12-yard completion to Diggs, 8 air, 4 after catch.
		event(game1, 1, 1, qbAllen, "J.Allen", StatCompletePass, 12),
		event(game1, 1, 1, wrDiggs, "S.Diggs", StatReception, 12),
		event(game1, 1, 1, qbAllen, "J.Allen", StatAirYardsComplete, 8),
		event(game1, 1, 1, wrDiggs, "S.Diggs", StatYardsAfterCatch, 4),
		event(game1, 1, 1, wrDiggs, "S.Diggs", StatTarget, 0),
		event(game1, 1, 1, "", "", StatPassFirstDown, 0),
		// Game 1, play 2: incompletion intended for Shakir, 10 air.
		event(game1, 2, 1, qbAllen, "J.Allen", StatIncompletePass, 0),
		event(game1, 2, 1, qbAllen, "J.Allen", StatAirYardsIncomplete, 10),
		event(game1, 2, 1, wrShakir, "K.Shakir", StatTarget, 0),
		// Game 1, play 3: 7-yard sack, strip, ball lost.
		event(game1, 3, 1, qbAllen, "J.Allen", StatSack, -7),
		event(game1, 3, 1, qbAllen, "J.Allen", StatFumbleForced, 0),
		event(game1, 3, 1, qbAllen, "J.Allen", StatFumbleLost, 0),
		// Game 1, play 4: 5-yard carry, first down.
		event(game1, 4, 1, rbCook, "J.Cook", StatRushAtt, 5),
		event(game1, 4, 1, "", "", StatRushFirstDown, 0),
		// Game 1, play 5: 9-yard scramble.
		event(game1, 5, 1, qbAllen, "J.Allen", StatRushAtt, 9),
		// Game 1, play 6: 25-yard touchdown to Diggs, 20 air, 5 after catch.
		event(game1, 6, 1, qbAllen, "J.Allen", StatPassTD, 25),
		event(game1, 6, 1, wrDiggs, "S.Diggs", StatReceptionTD, 25),
		event(game1, 6, 1, qbAllen, "J.Allen", StatAirYardsComplete, 20),
		event(game1, 6, 1, wrDiggs, "S.Diggs", StatYardsAfterCatch, 5),
		event(game1, 6, 1, wrDiggs, "S.Diggs", StatTarget, 0),

		// Game 2, play 1: 10-yard completion to Diggs, 6 air, 4 after catch.
		event(game2, 1, 2, qbAllen, "J.Allen", StatCompletePass, 10),
		event(game2, 1, 2, wrDiggs, "S.Diggs", StatReception, 10),
		event(game2, 1, 2, qbAllen, "J.Allen", StatAirYardsComplete, 6),
		event(game2, 1, 2, wrDiggs, "S.Diggs", StatYardsAfterCatch, 4),
		event(game2, 1, 2, wrDiggs, "S.Diggs", StatTarget, 0),
		// Game 2, play 2: 7-yard carry, first down.
		event(game2, 2, 2, rbCook, "J.Cook", StatRushAtt, 7),
		event(game2, 2, 2, "", "", StatRushFirstDown, 0),

		// Playoff game, play 1: 9-yard completion to Diggs, 5 air.
		event(gamePost, 1, 19, qbAllen, "J.Allen", StatCompletePass, 9),
		event(gamePost, 1, 19, wrDiggs, "S.Diggs", StatReception, 9),
		event(gamePost, 1, 19, qbAllen, "J.Allen", StatAirYardsComplete, 5),
		event(gamePost, 1, 19, wrDiggs, "S.Diggs", StatYardsAfterCatch, 4),
		event(gamePost, 1, 19, wrDiggs, "S.Diggs", StatTarget, 0),
	}
}

// regSeasonPlays filters the fixture to regular-season games.
func regSeasonPlays() []pbp.Play {
	var out []pbp.Play
	for _, p := range fixturePlays() {
		if p.SeasonType == pbp.SeasonTypeREG {
			out = append(out, p)
		}
	}
	return out
}

func regSeasonEvents() []pbp.PlayStatEvent {
	var out []pbp.PlayStatEvent
	for _, e := range fixtureEvents() {
		if e.GameID != gamePost {
			out = append(out, e)
		}
	}
	return out
}

// findRow locates the row for one entity (player id or team), optionally
// scoped to a game at week grain.
func findRow(rows []StatRow, entity, gameID string) *StatRow {
	for i := range rows {
		r := &rows[i]
		if gameID != "" && r.GameID != gameID {
			continue
		}
		if r.PlayerID == entity || (r.PlayerID == "" && r.Team == entity) {
			return r
		}
	}
	return nil
}
