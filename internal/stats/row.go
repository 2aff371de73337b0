package stats

import (
	"fmt"
	"strconv"
)

// StatRow is one output row: identifying columns plus every computed metric.
// Count and yardage fields are plain sums; ratio and category fields are
// pointers so a missing denominator stays null instead of collapsing to
// zero. Exactly one row exists per grain key present in the input range.
type StatRow struct {
	Season       int    `json:"season"`
	Week         int    `json:"week,omitempty"`
	GameID       string `json:"game_id,omitempty"`
	PlayerID     string `json:"player_id,omitempty"`
	PlayerName   string `json:"player_name,omitempty"`
	Team         string `json:"team"`
	OpponentTeam string `json:"opponent_team,omitempty"`
	SeasonType   string `json:"season_type"`
	Games        int    `json:"games,omitempty"`

	// Passing block.
	Completions            int      `json:"completions"`
	Attempts               int      `json:"attempts"`
	PassingYards           float64  `json:"passing_yards"`
	PassingTDs             int      `json:"passing_tds"`
	Interceptions          int      `json:"interceptions"`
	Sacks                  int      `json:"sacks"`
	SackYards              float64  `json:"sack_yards"`
	SackFumbles            int      `json:"sack_fumbles"`
	SackFumblesLost        int      `json:"sack_fumbles_lost"`
	PassingAirYards        float64  `json:"passing_air_yards"`
	PassingYardsAfterCatch float64  `json:"passing_yards_after_catch"`
	PassingFirstDowns      int      `json:"passing_first_downs"`
	Passing2PtConversions  int      `json:"passing_2pt_conversions"`
	QBTargets              int      `json:"qb_targets"`
	QBADOT                 *float64 `json:"qb_adot"`
	PACR                   *float64 `json:"pacr"`
	PassingEPA             *float64 `json:"passing_epa"`
	PassingCPOE            *float64 `json:"passing_cpoe"`
	PassingSuccessRate     *float64 `json:"passing_success_rate"`
	Dropbacks              *int     `json:"dropbacks"`
	DropbackEPA            *float64 `json:"dropback_epa"`
	DropbackSuccessRate    *float64 `json:"dropback_success_rate"`
	EPAPerDropback         *float64 `json:"epa_per_dropback"`
	Scrambles              *int     `json:"scrambles"`
	ScrambleEPA            *float64 `json:"scramble_epa"`
	EPAPerScramble         *float64 `json:"epa_per_scramble"`
	ScrambleSuccessRate    *float64 `json:"scramble_success_rate"`

	// Rushing block.
	Carries               int      `json:"carries"`
	RushingYards          float64  `json:"rushing_yards"`
	RushingTDs            int      `json:"rushing_tds"`
	RushingFumbles        int      `json:"rushing_fumbles"`
	RushingFumblesLost    int      `json:"rushing_fumbles_lost"`
	RushingFirstDowns     int      `json:"rushing_first_downs"`
	Rushing2PtConversions int      `json:"rushing_2pt_conversions"`
	RushingEPA            *float64 `json:"rushing_epa"`

	// Receiving block.
	Receptions               int      `json:"receptions"`
	Targets                  int      `json:"targets"`
	ReceivingYards           float64  `json:"receiving_yards"`
	ReceivingYardsAfterCatch float64  `json:"receiving_yards_after_catch"`
	ReceivingAirYards        float64  `json:"receiving_air_yards"`
	ReceivingTDs             int      `json:"receiving_tds"`
	ReceivingFumbles         int      `json:"receiving_fumbles"`
	ReceivingFumblesLost     int      `json:"receiving_fumbles_lost"`
	ReceivingFirstDowns      int      `json:"receiving_first_downs"`
	Receiving2PtConversions  int      `json:"receiving_2pt_conversions"`
	RACR                     *float64 `json:"racr"`
	ReceiverADOT             *float64 `json:"receiver_adot"`
	TargetShare              *float64 `json:"target_share"`
	AirYardsShare            *float64 `json:"air_yards_share"`
	WOPR                     *float64 `json:"wopr"`
	ReceivingEPA             *float64 `json:"receiving_epa"`

	// Special teams block.
	SpecialTeamsTDs int `json:"special_teams_tds"`
}

// metricColumns is the fixed metric column order shared by every grain:
// passing block, rushing block, receiving block, special teams.
var metricColumns = []string{
	"completions", "attempts", "passing_yards", "passing_tds", "interceptions",
	"sacks", "sack_yards", "sack_fumbles", "sack_fumbles_lost",
	"passing_air_yards", "passing_yards_after_catch", "passing_first_downs",
	"passing_2pt_conversions", "qb_targets", "qb_adot", "pacr",
	"passing_epa", "passing_cpoe", "passing_success_rate",
	"dropbacks", "dropback_epa", "dropback_success_rate", "epa_per_dropback",
	"scrambles", "scramble_epa", "epa_per_scramble", "scramble_success_rate",
	"carries", "rushing_yards", "rushing_tds", "rushing_fumbles",
	"rushing_fumbles_lost", "rushing_first_downs", "rushing_2pt_conversions",
	"rushing_epa",
	"receptions", "targets", "receiving_yards", "receiving_yards_after_catch",
	"receiving_air_yards", "receiving_tds", "receiving_fumbles",
	"receiving_fumbles_lost", "receiving_first_downs",
	"receiving_2pt_conversions", "racr", "receiver_adot", "target_share",
	"air_yards_share", "wopr", "receiving_epa",
	"special_teams_tds",
}

// Columns returns the output column order for a grouping: identifying
// columns first, then the fixed metric blocks. Callers get a stable schema.
func Columns(g Grouping) []string {
	cols := []string{"season"}
	if g.Level == SummaryWeek {
		cols = append(cols, "week", "game_id")
	}
	if g.Type == StatPlayer {
		cols = append(cols, "player_id", "player_name")
	}
	cols = append(cols, "team")
	if g.Level == SummaryWeek {
		cols = append(cols, "opponent_team")
	}
	cols = append(cols, "season_type")
	if g.Level == SummarySeason {
		cols = append(cols, "games")
	}
	return append(cols, metricColumns...)
}

// Record renders the row as strings in Columns order, for CSV output. Null
// metrics render as empty fields.
func (r StatRow) Record(g Grouping) []string {
	rec := []string{strconv.Itoa(r.Season)}
	if g.Level == SummaryWeek {
		rec = append(rec, strconv.Itoa(r.Week), r.GameID)
	}
	if g.Type == StatPlayer {
		rec = append(rec, r.PlayerID, r.PlayerName)
	}
	rec = append(rec, r.Team)
	if g.Level == SummaryWeek {
		rec = append(rec, r.OpponentTeam)
	}
	rec = append(rec, r.SeasonType)
	if g.Level == SummarySeason {
		rec = append(rec, strconv.Itoa(r.Games))
	}

	return append(rec,
		strconv.Itoa(r.Completions), strconv.Itoa(r.Attempts), ftoa(r.PassingYards),
		strconv.Itoa(r.PassingTDs), strconv.Itoa(r.Interceptions),
		strconv.Itoa(r.Sacks), ftoa(r.SackYards),
		strconv.Itoa(r.SackFumbles), strconv.Itoa(r.SackFumblesLost),
		ftoa(r.PassingAirYards), ftoa(r.PassingYardsAfterCatch),
		strconv.Itoa(r.PassingFirstDowns), strconv.Itoa(r.Passing2PtConversions),
		strconv.Itoa(r.QBTargets), fptr(r.QBADOT), fptr(r.PACR),
		fptr(r.PassingEPA), fptr(r.PassingCPOE), fptr(r.PassingSuccessRate),
		iptr(r.Dropbacks), fptr(r.DropbackEPA), fptr(r.DropbackSuccessRate), fptr(r.EPAPerDropback),
		iptr(r.Scrambles), fptr(r.ScrambleEPA), fptr(r.EPAPerScramble), fptr(r.ScrambleSuccessRate),
		strconv.Itoa(r.Carries), ftoa(r.RushingYards), strconv.Itoa(r.RushingTDs),
		strconv.Itoa(r.RushingFumbles), strconv.Itoa(r.RushingFumblesLost),
		strconv.Itoa(r.RushingFirstDowns), strconv.Itoa(r.Rushing2PtConversions),
		fptr(r.RushingEPA),
		strconv.Itoa(r.Receptions), strconv.Itoa(r.Targets),
		ftoa(r.ReceivingYards), ftoa(r.ReceivingYardsAfterCatch), ftoa(r.ReceivingAirYards),
		strconv.Itoa(r.ReceivingTDs), strconv.Itoa(r.ReceivingFumbles),
		strconv.Itoa(r.ReceivingFumblesLost), strconv.Itoa(r.ReceivingFirstDowns),
		strconv.Itoa(r.Receiving2PtConversions),
		fptr(r.RACR), fptr(r.ReceiverADOT), fptr(r.TargetShare),
		fptr(r.AirYardsShare), fptr(r.WOPR), fptr(r.ReceivingEPA),
		strconv.Itoa(r.SpecialTeamsTDs),
	)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fptr(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}

func iptr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// String summarizes the row's grain for logging.
func (r StatRow) String() string {
	entity := r.PlayerID
	if entity == "" {
		entity = r.Team
	}
	if r.GameID != "" {
		return fmt.Sprintf("%d wk%d %s %s", r.Season, r.Week, r.GameID, entity)
	}
	return fmt.Sprintf("%d %s", r.Season, entity)
}
