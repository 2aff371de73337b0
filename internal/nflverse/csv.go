package nflverse

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
)

// Required columns per table. Anything else is read when present and left at
// its zero value otherwise; upstream adds and renames model columns between
// seasons, so only the identity columns are hard requirements.
var (
	requiredPlayColumns = []string{
		"game_id", "play_id", "season", "week", "season_type",
		"home_team", "away_team", "posteam", "defteam", "play_type",
	}
	requiredPlayStatColumns = []string{
		"game_id", "play_id", "season", "week", "stat_id", "yards",
	}
)

// header resolves column names to record indexes. Missing columns map to -1.
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

func (h header) col(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (h header) require(table string, names []string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return &pbp.SchemaError{Table: table, Column: name}
		}
	}
	return nil
}

// DecodePlays reads a play-by-play CSV stream into typed plays.
func DecodePlays(r io.Reader) ([]pbp.Play, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read play_by_play header: %w", err)
	}
	h := newHeader(head)
	if err := h.require("play_by_play", requiredPlayColumns); err != nil {
		return nil, err
	}

	var plays []pbp.Play
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read play_by_play row: %w", err)
		}
		plays = append(plays, pbp.Play{
			GameID:     h.col(rec, "game_id"),
			PlayID:     parseInt(h.col(rec, "play_id")),
			Season:     parseInt(h.col(rec, "season")),
			Week:       parseInt(h.col(rec, "week")),
			SeasonType: h.col(rec, "season_type"),

			HomeTeam: h.col(rec, "home_team"),
			AwayTeam: h.col(rec, "away_team"),
			Posteam:  h.col(rec, "posteam"),
			Defteam:  h.col(rec, "defteam"),

			Down:        parseInt(h.col(rec, "down")),
			YardsToGo:   parseInt(h.col(rec, "ydstogo")),
			Yardline100: parseInt(h.col(rec, "yardline_100")),
			GoalToGo:    parseBool(h.col(rec, "goal_to_go")),

			PlayType:   h.col(rec, "play_type"),
			Shotgun:    parseBool(h.col(rec, "shotgun")),
			NoHuddle:   parseBool(h.col(rec, "no_huddle")),
			QBDropback: parseBool(h.col(rec, "qb_dropback")),
			QBScramble: parseBool(h.col(rec, "qb_scramble")),
			QBKneel:    parseBool(h.col(rec, "qb_kneel")),
			QBSpike:    parseBool(h.col(rec, "qb_spike")),

			EPA:             parseFloatPtr(h.col(rec, "epa")),
			QBEPA:           parseFloatPtr(h.col(rec, "qb_epa")),
			CPOE:            parseFloatPtr(h.col(rec, "cpoe")),
			Success:         parseFloatPtr(h.col(rec, "success")),
			XPass:           parseFloatPtr(h.col(rec, "xpass")),
			AirYards:        parseFloatPtr(h.col(rec, "air_yards")),
			YardsAfterCatch: parseFloatPtr(h.col(rec, "yards_after_catch")),

			ScoreDifferential: parseFloat(h.col(rec, "score_differential")),

			PasserID:     h.col(rec, "passer_player_id"),
			PasserName:   h.col(rec, "passer_player_name"),
			RusherID:     h.col(rec, "rusher_player_id"),
			RusherName:   h.col(rec, "rusher_player_name"),
			ReceiverID:   h.col(rec, "receiver_player_id"),
			ReceiverName: h.col(rec, "receiver_player_name"),

			Touchdown:    parseBool(h.col(rec, "touchdown")),
			Interception: parseBool(h.col(rec, "interception")),
			Sack:         parseBool(h.col(rec, "sack")),
			Fumble:       parseBool(h.col(rec, "fumble")),
			FumbleLost:   parseBool(h.col(rec, "fumble_lost")),
			CompletePass: parseBool(h.col(rec, "complete_pass")),
			FirstDown:    parseBool(h.col(rec, "first_down")),

			Special: parseBool(h.col(rec, "special")),
		})
	}
	return plays, nil
}

// DecodePlayStats reads a play-stats CSV stream into credit events. The
// player id column has been renamed upstream over the years, so both names
// are accepted.
func DecodePlayStats(r io.Reader) ([]pbp.PlayStatEvent, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read play_stats header: %w", err)
	}
	h := newHeader(head)
	if err := h.require("play_stats", requiredPlayStatColumns); err != nil {
		return nil, err
	}

	var events []pbp.PlayStatEvent
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read play_stats row: %w", err)
		}
		playerID := h.col(rec, "gsis_player_id")
		if playerID == "" {
			playerID = h.col(rec, "player_id")
		}
		team := h.col(rec, "team_abbr")
		if team == "" {
			team = h.col(rec, "team")
		}
		events = append(events, pbp.PlayStatEvent{
			GameID:     h.col(rec, "game_id"),
			PlayID:     parseInt(h.col(rec, "play_id")),
			Season:     parseInt(h.col(rec, "season")),
			Week:       parseInt(h.col(rec, "week")),
			PlayerID:   playerID,
			PlayerName: h.col(rec, "player_name"),
			Team:       team,
			StatID:     parseInt(h.col(rec, "stat_id")),
			Yards:      parseFloat(h.col(rec, "yards")),
		})
	}
	return events, nil
}

// DecodePlaysGzip decompresses a downloaded pbp asset and decodes it.
func DecodePlaysGzip(data []byte) ([]pbp.Play, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer zr.Close()
	return DecodePlays(zr)
}

// DecodePlayStatsGzip decompresses a downloaded play-stats asset and decodes it.
func DecodePlayStatsGzip(data []byte) ([]pbp.PlayStatEvent, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer zr.Close()
	return DecodePlayStats(zr)
}

// ---------------------------------------------------------------------------
// Value parsing. The feed writes missing values as "" or "NA" and booleans as
// 0/1 floats.
// ---------------------------------------------------------------------------

func missing(v string) bool {
	return v == "" || v == "NA"
}

func parseInt(v string) int {
	if missing(v) {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(v string) float64 {
	if missing(v) {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseFloatPtr(v string) *float64 {
	if missing(v) {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseBool(v string) bool {
	switch v {
	case "1", "1.0", "true", "TRUE", "True":
		return true
	}
	return false
}
