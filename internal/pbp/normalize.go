package pbp

import "fmt"

// Normalize prepares raw plays for aggregation: canonicalizes team codes,
// derives helper fields shared by the downstream extractors, and drops rows
// the engine cannot use (unknown play types, impossible downs).
//
// It fails with a DataIntegrityError on duplicate (GameID, PlayID) pairs or
// on season/week values outside the valid domain. The input slice is not
// modified.
func Normalize(raw []Play) ([]Play, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]Play, 0, len(raw))

	for _, p := range raw {
		if p.GameID == "" {
			return nil, &DataIntegrityError{Reason: "play with empty game_id"}
		}
		if p.Season < 1999 {
			return nil, &DataIntegrityError{
				Reason: fmt.Sprintf("game %s has season %d, play-by-play data starts in 1999", p.GameID, p.Season),
			}
		}
		if p.Week < 1 {
			return nil, &DataIntegrityError{
				Reason: fmt.Sprintf("game %s has week %d", p.GameID, p.Week),
			}
		}

		key := fmt.Sprintf("%s#%d", p.GameID, p.PlayID)
		if _, dup := seen[key]; dup {
			return nil, &DataIntegrityError{
				Reason: fmt.Sprintf("duplicate play (%s, %d)", p.GameID, p.PlayID),
			}
		}
		seen[key] = struct{}{}

		if p.Down < 0 || p.Down > 4 {
			continue
		}
		if p.PlayType != "" && !ValidPlayTypes[p.PlayType] {
			continue
		}

		canonicalizeTeams(&p)
		deriveFields(&p)
		out = append(out, p)
	}

	return out, nil
}

// deriveFields computes the helper flags shared by multiple extractors so
// the filter logic lives in exactly one place.
func deriveFields(p *Play) {
	p.IsRedZone = p.Yardline100 > 0 && p.Yardline100 <= 20
	p.IsEarlyDown = p.Down >= 1 && p.Down <= 2
	p.IsLateDown = p.Down >= 3
	p.IsTrailing = p.ScoreDifferential < 0
	p.IsLeading = p.ScoreDifferential > 0
	p.IsLikelyPass = p.XPass != nil && *p.XPass >= 0.5
}

// GameIDs returns the distinct game identifiers in play order.
func GameIDs(plays []Play) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, p := range plays {
		if _, ok := seen[p.GameID]; ok {
			continue
		}
		seen[p.GameID] = struct{}{}
		ids = append(ids, p.GameID)
	}
	return ids
}
