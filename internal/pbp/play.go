// Package pbp defines the typed play-by-play data model and the normalizer
// that prepares raw plays for statistics aggregation. The structs here are
// the contract between data loaders and the stats engine — loaders output
// these, the engine never touches raw provider rows.
package pbp

// Season type values as they appear in the play-by-play feed.
const (
	SeasonTypeREG  = "REG"
	SeasonTypePOST = "POST"
)

// Play is one offensive snap (or special-teams play) from the play-by-play
// feed. Identified by (GameID, PlayID); immutable once loaded.
//
// Optional numeric model outputs (EPA, CPOE, success, expected pass rate,
// air yards) are pointers: nil means the upstream model did not score the
// play, which downstream means/denominators must distinguish from zero.
type Play struct {
	GameID     string
	PlayID     int
	Season     int
	Week       int
	SeasonType string

	HomeTeam string
	AwayTeam string
	Posteam  string
	Defteam  string

	Down        int // 0 when no down applies (kickoffs, etc.)
	YardsToGo   int
	Yardline100 int
	GoalToGo    bool

	PlayType   string
	Shotgun    bool
	NoHuddle   bool
	QBDropback bool
	QBScramble bool
	QBKneel    bool
	QBSpike    bool

	EPA             *float64
	QBEPA           *float64
	CPOE            *float64
	Success         *float64
	XPass           *float64
	AirYards        *float64
	YardsAfterCatch *float64

	ScoreDifferential float64

	PasserID     string
	PasserName   string
	RusherID     string
	RusherName   string
	ReceiverID   string
	ReceiverName string

	Touchdown    bool
	Interception bool
	Sack         bool
	Fumble       bool
	FumbleLost   bool
	CompletePass bool
	FirstDown    bool

	Special bool

	// Derived by Normalize.
	IsRedZone    bool
	IsEarlyDown  bool
	IsLateDown   bool
	IsTrailing   bool
	IsLeading    bool
	IsLikelyPass bool
}

// PlayStatEvent is one discrete statistical credit within a play. A single
// play fans out into several events (a completion credits the passer, the
// receiver, air yards, yards after catch, ...). Many-to-one with Play via
// (GameID, PlayID).
type PlayStatEvent struct {
	GameID     string
	PlayID     int
	Season     int
	Week       int
	PlayerID   string // gsis identifier; empty for team-level credits
	PlayerName string
	Team       string
	StatID     int
	Yards      float64
}

// ValidPlayTypes enumerates the play_type values the engine accepts. Rows
// with any other non-empty play type are dropped during normalization.
var ValidPlayTypes = map[string]bool{
	"pass":        true,
	"run":         true,
	"punt":        true,
	"field_goal":  true,
	"kickoff":     true,
	"extra_point": true,
	"qb_kneel":    true,
	"qb_spike":    true,
	"no_play":     true,
}
