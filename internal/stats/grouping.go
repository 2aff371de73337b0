package stats

// SummaryLevel selects the time grain of the output table.
type SummaryLevel string

const (
	SummaryWeek   SummaryLevel = "week"
	SummarySeason SummaryLevel = "season"
)

// StatType selects the entity grain of the output table.
type StatType string

const (
	StatPlayer StatType = "player"
	StatTeam   StatType = "team"
)

// SeasonType filters which part of the schedule contributes plays.
type SeasonType string

const (
	SeasonREG  SeasonType = "REG"
	SeasonPOST SeasonType = "POST"
	SeasonALL  SeasonType = "ALL"
)

// Grouping carries the requested grain through the extractors and the
// aggregator so no component hard-codes it.
type Grouping struct {
	Level SummaryLevel
	Type  StatType
}

// grainKey identifies one aggregation bucket. At season grain Week is 0 and
// GameID empty; Entity is a player id or a team code depending on StatType.
type grainKey struct {
	Season int
	Week   int
	GameID string
	Entity string
}

// less orders grain keys for deterministic output.
func (k grainKey) less(o grainKey) bool {
	if k.Season != o.Season {
		return k.Season < o.Season
	}
	if k.Week != o.Week {
		return k.Week < o.Week
	}
	if k.GameID != o.GameID {
		return k.GameID < o.GameID
	}
	return k.Entity < o.Entity
}

// grain builds the bucket key for a (season, week, game, entity) tuple under
// the requested grouping.
func (g Grouping) grain(season, week int, gameID, entity string) grainKey {
	if g.Level == SummarySeason {
		return grainKey{Season: season, Entity: entity}
	}
	return grainKey{Season: season, Week: week, GameID: gameID, Entity: entity}
}
