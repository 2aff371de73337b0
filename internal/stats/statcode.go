// Package stats implements the statistics aggregation engine: it turns
// normalized play-by-play rows and per-play statistical credit events into
// player or team stat tables at week or season grain.
package stats

// Stat codes from the league's gamebook feed. One PlayStatEvent carries one
// of these; a play fans out into several events.
const (
	StatRushFirstDown = 3 // team credit
	StatPassFirstDown = 4 // team credit

	StatRushAtt            = 10
	StatRushTD             = 11
	StatLateralRush        = 12
	StatLateralRushTD      = 13
	StatIncompletePass     = 14
	StatCompletePass       = 15
	StatPassTD             = 16
	StatInterception       = 19
	StatSack               = 20
	StatReception          = 21
	StatReceptionTD        = 22
	StatLateralReception   = 23
	StatLateralReceptionTD = 24

	StatFumbleForced    = 52
	StatFumbleNotForced = 53
	StatFumbleOOB       = 54

	StatRush2Pt = 75
	StatPass2Pt = 77

	StatRec2Pt     = 104
	StatFumbleLost = 106

	StatAirYardsComplete   = 111
	StatAirYardsIncomplete = 112
	StatYardsAfterCatch    = 113
	StatTarget             = 115
)

// recognizedStatCodes is the closed enumeration the flagger accepts. Events
// carrying any other code are logged and dropped rather than summed into the
// wrong bucket.
var recognizedStatCodes = map[int]bool{
	StatRushFirstDown:      true,
	StatPassFirstDown:      true,
	StatRushAtt:            true,
	StatRushTD:             true,
	StatLateralRush:        true,
	StatLateralRushTD:      true,
	StatIncompletePass:     true,
	StatCompletePass:       true,
	StatPassTD:             true,
	StatInterception:       true,
	StatSack:               true,
	StatReception:          true,
	StatReceptionTD:        true,
	StatLateralReceptionTD: true,
	StatLateralReception:   true,
	StatFumbleForced:       true,
	StatFumbleNotForced:    true,
	StatFumbleOOB:          true,
	StatRush2Pt:            true,
	StatPass2Pt:            true,
	StatRec2Pt:             true,
	StatFumbleLost:         true,
	StatAirYardsComplete:   true,
	StatAirYardsIncomplete: true,
	StatYardsAfterCatch:    true,
	StatTarget:             true,
}

// RecognizedStatCode reports whether code belongs to the enumeration the
// engine aggregates.
func RecognizedStatCode(code int) bool {
	return recognizedStatCodes[code]
}

// ParseStatCode validates a code against the enumeration, for callers that
// want strict rejection instead of the flagger's log-and-drop policy.
func ParseStatCode(code int) (int, error) {
	if !recognizedStatCodes[code] {
		return 0, &UnknownStatCodeError{Code: code}
	}
	return code, nil
}

func statIn(code int, set ...int) bool {
	for _, s := range set {
		if code == s {
			return true
		}
	}
	return false
}

// tdStatCodes are the codes that score a touchdown for the credited player,
// used with the special-teams play flag to detect special-teams touchdowns.
var tdStatCodes = []int{StatRushTD, StatLateralRushTD, StatReceptionTD, StatLateralReceptionTD}
