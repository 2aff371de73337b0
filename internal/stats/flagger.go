package stats

import (
	"fmt"
	"log/slog"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

// TeamPlayerID is the pseudo player id assigned to team-level credits
// (events the feed reports without a player attached).
const TeamPlayerID = "TEAM"

// Seasons whose gamebook feed lacks explicit target records. For these,
// receptions double as targets and every attempt counts as a QB target.
const (
	badTargetSeasonFirst = 2003
	badTargetSeasonLast  = 2008
)

func badTargetSeason(season int) bool {
	return season >= badTargetSeasonFirst && season <= badTargetSeasonLast
}

// FlaggedEvent is one statistical credit enriched with per-play one-hot
// indicators, attributed yardage, and the team context needed for share
// denominators. One row per (play, player, stat code).
type FlaggedEvent struct {
	Season     int
	Week       int
	GameID     string
	PlayID     int
	PlayerID   string
	PlayerName string
	Team       string
	StatID     int
	SeasonType string

	Off     string
	Def     string
	Special bool

	IsComp   bool
	IsAtt    bool
	IsPassTD bool
	IsInt    bool
	IsSack   bool
	QBTarget bool

	IsCarry  bool
	IsRushTD bool

	IsRec    bool
	IsTarget bool
	IsRecTD  bool

	IsPass2Pt bool
	IsRush2Pt bool
	IsRec2Pt  bool

	SackFumble     bool
	SackFumbleLost bool
	RushFumble     bool
	RushFumbleLost bool
	RecFumble      bool
	RecFumbleLost  bool

	RushFirstDown bool
	PassFirstDown bool
	RecFirstDown  bool

	SpecialTD bool

	// Attributed yardage. Each field is non-zero only for the stat codes
	// that own it, so sums never double-count a play's yards.
	PassYards        float64
	SackYards        float64
	AirYards         float64
	AirYardsComplete float64
	RushYards        float64
	RecYards         float64
	YardsAfterCatch  float64

	// Team context joined onto every row.
	TeamPlayAirYards float64
	TeamGameTargets  float64
	TeamGameAirYards float64
}

type playInfo struct {
	off     string
	def     string
	special bool
}

// FlagPlayStats restricts events to the supplied plays' games, deduplicates
// credits, derives the indicator and yardage columns for every recognized
// event, and joins team/opponent context. Unrecognized stat codes and events
// referencing plays absent from the normalized set are logged and dropped.
func FlagPlayStats(plays []pbp.Play, events []pbp.PlayStatEvent, logger *slog.Logger) []FlaggedEvent {
	games := make(map[string]struct{}, len(plays))
	info := make(map[string]playInfo, len(plays))
	seasonTypes := make(map[string]string)
	for _, p := range plays {
		games[p.GameID] = struct{}{}
		pk := playKey(p.GameID, p.PlayID)
		pi := info[pk]
		pi.off = p.Posteam
		pi.def = p.Defteam
		pi.special = pi.special || p.Special
		info[pk] = pi
		seasonTypes[p.GameID] = p.SeasonType
	}

	kept := restrictEvents(events, games, info, logger)

	// Player, team-play and team-game rollups feeding the per-row flags.
	playerStats := make(map[string]map[int]bool)
	teamStats := make(map[string]map[int]bool)
	teamPlayAir := make(map[string]float64)
	type gameTotals struct{ targets, airYards float64 }
	teamGame := make(map[string]gameTotals)

	for _, e := range kept {
		ppk := playKey(e.GameID, e.PlayID) + "#" + e.PlayerID
		tpk := playKey(e.GameID, e.PlayID) + "@" + e.Team
		addStat(playerStats, ppk, e.StatID)
		addStat(teamStats, tpk, e.StatID)

		if statIn(e.StatID, StatAirYardsComplete, StatAirYardsIncomplete) {
			teamPlayAir[tpk] += e.Yards
		}

		gk := e.GameID + "@" + e.Team
		gt := teamGame[gk]
		if eventIsTarget(e) {
			gt.targets++
		}
		if statIn(e.StatID, StatAirYardsComplete, StatAirYardsIncomplete) {
			gt.airYards += e.Yards
		}
		teamGame[gk] = gt
	}

	out := make([]FlaggedEvent, 0, len(kept))
	for _, e := range kept {
		pk := playKey(e.GameID, e.PlayID)
		pi := info[pk]
		mine := playerStats[pk+"#"+e.PlayerID]
		team := teamStats[pk+"@"+e.Team]
		gt := teamGame[e.GameID+"@"+e.Team]

		f := FlaggedEvent{
			Season:     e.Season,
			Week:       e.Week,
			GameID:     e.GameID,
			PlayID:     e.PlayID,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Team:       pbp.CanonicalTeam(e.Team),
			StatID:     e.StatID,
			SeasonType: seasonTypes[e.GameID],
			Off:        pi.off,
			Def:        pi.def,
			Special:    pi.special,

			TeamPlayAirYards: teamPlayAir[pk+"@"+e.Team],
			TeamGameTargets:  gt.targets,
			TeamGameAirYards: gt.airYards,
		}

		f.IsComp = statIn(e.StatID, StatCompletePass, StatPassTD)
		f.IsAtt = statIn(e.StatID, StatIncompletePass, StatCompletePass, StatPassTD, StatInterception)
		f.IsPassTD = e.StatID == StatPassTD
		f.IsInt = e.StatID == StatInterception
		f.IsSack = e.StatID == StatSack
		f.IsCarry = statIn(e.StatID, StatRushAtt, StatRushTD)
		f.IsRushTD = statIn(e.StatID, StatRushTD, StatLateralRushTD)
		f.IsRec = statIn(e.StatID, StatReception, StatReceptionTD)
		f.IsRecTD = statIn(e.StatID, StatReceptionTD, StatLateralReceptionTD)
		f.IsTarget = eventIsTarget(e)
		f.IsPass2Pt = e.StatID == StatPass2Pt
		f.IsRush2Pt = e.StatID == StatRush2Pt
		f.IsRec2Pt = e.StatID == StatRec2Pt

		if badTargetSeason(e.Season) {
			f.QBTarget = f.IsAtt
		} else {
			f.QBTarget = f.IsAtt && team[StatTarget]
		}

		hasFumble := mine[StatFumbleForced] || mine[StatFumbleNotForced] || mine[StatFumbleOOB]
		hasFumbleLost := mine[StatFumbleLost]
		f.SackFumble = f.IsSack && hasFumble
		f.SackFumbleLost = f.IsSack && hasFumbleLost
		f.RushFumble = f.IsCarry && hasFumble
		f.RushFumbleLost = f.IsCarry && hasFumbleLost
		f.RecFumble = f.IsRec && hasFumble
		f.RecFumbleLost = f.IsRec && hasFumbleLost

		f.RushFirstDown = f.IsCarry && team[StatRushFirstDown]
		f.PassFirstDown = f.IsComp && team[StatPassFirstDown]
		f.RecFirstDown = f.IsRec && team[StatPassFirstDown]
		f.SpecialTD = pi.special && statIn(e.StatID, tdStatCodes...)

		if f.IsComp {
			f.PassYards = e.Yards
		}
		if f.IsSack {
			f.SackYards = -e.Yards
		}
		if statIn(e.StatID, StatAirYardsComplete, StatAirYardsIncomplete) {
			f.AirYards = e.Yards
		}
		if e.StatID == StatAirYardsComplete {
			f.AirYardsComplete = e.Yards
		}
		if statIn(e.StatID, StatRushAtt, StatRushTD, StatLateralRush, StatLateralRushTD) {
			f.RushYards = e.Yards
		}
		if statIn(e.StatID, StatReception, StatReceptionTD, StatLateralReception, StatLateralReceptionTD) {
			f.RecYards = e.Yards
		}
		if e.StatID == StatYardsAfterCatch {
			f.YardsAfterCatch = e.Yards
		}

		out = append(out, f)
	}

	return out
}

// restrictEvents keeps events for known games and plays, fills empty player
// ids with the TEAM pseudo-player, and drops duplicates and unknown codes.
func restrictEvents(events []pbp.PlayStatEvent, games map[string]struct{}, info map[string]playInfo, logger *slog.Logger) []pbp.PlayStatEvent {
	kept := make([]pbp.PlayStatEvent, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	warnedCodes := make(map[int]struct{})

	for _, e := range events {
		if _, ok := games[e.GameID]; !ok {
			continue
		}
		if !RecognizedStatCode(e.StatID) {
			if _, warned := warnedCodes[e.StatID]; !warned {
				warnedCodes[e.StatID] = struct{}{}
				logger.Warn("dropping events with unrecognized stat code",
					"stat_id", e.StatID, "game_id", e.GameID, "play_id", e.PlayID)
			}
			continue
		}
		if _, ok := info[playKey(e.GameID, e.PlayID)]; !ok {
			logger.Warn("dropping event for play absent from normalized play-by-play",
				"game_id", e.GameID, "play_id", e.PlayID, "stat_id", e.StatID)
			continue
		}
		if e.PlayerID == "" {
			e.PlayerID = TeamPlayerID
		}
		dk := fmt.Sprintf("%s#%d#%s#%d", e.GameID, e.PlayID, e.PlayerID, e.StatID)
		if _, dup := seen[dk]; dup {
			continue
		}
		seen[dk] = struct{}{}
		kept = append(kept, e)
	}
	return kept
}

// eventIsTarget applies the target definition, including the 2003-2008
// fallback where receptions stand in for missing target records.
func eventIsTarget(e pbp.PlayStatEvent) bool {
	if badTargetSeason(e.Season) {
		return statIn(e.StatID, StatReception, StatReceptionTD, StatTarget)
	}
	return e.StatID == StatTarget
}

func playKey(gameID string, playID int) string {
	return fmt.Sprintf("%s#%d", gameID, playID)
}

func addStat(m map[string]map[int]bool, key string, statID int) {
	set, ok := m[key]
	if !ok {
		set = make(map[int]bool, 4)
		m[key] = set
	}
	set[statID] = true
}
