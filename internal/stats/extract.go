package stats

import "github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"

// Category tables produced by the extractors. Pointer fields are nil when no
// scored play contributed to the mean — a grain with attempts but no model
// output keeps null, never zero.

// PassingStats aggregates EPA, CPOE and success rate over pass plays.
type PassingStats struct {
	PassingEPA         float64
	PassingCPOE        *float64
	PassingSuccessRate *float64
}

// RushingStats aggregates EPA over rush plays.
type RushingStats struct {
	RushingEPA float64
}

// ReceivingStats aggregates EPA over targeted plays.
type ReceivingStats struct {
	ReceivingEPA float64
}

// DropbackStats aggregates quarterback dropbacks: every pass play plus
// scrambles, credited to the scrambling rusher on scramble plays.
type DropbackStats struct {
	Dropbacks           int
	DropbackEPA         float64
	DropbackSuccessRate *float64
	EPAPerDropback      *float64
}

// ScrambleStats aggregates quarterback scrambles, a rushing outcome
// originating from a passing play call.
type ScrambleStats struct {
	Scrambles           int
	ScrambleEPA         float64
	EPAPerScramble      *float64
	ScrambleSuccessRate *float64
}

// CategoryTables bundles every extractor output, keyed by grain.
type CategoryTables struct {
	Passing   map[grainKey]PassingStats
	Rushing   map[grainKey]RushingStats
	Receiving map[grainKey]ReceivingStats
	Dropback  map[grainKey]DropbackStats
	Scramble  map[grainKey]ScrambleStats
}

// ExtractCategories runs every category extractor over the normalized plays
// at the requested grain. Extractors are independent and order-free.
func ExtractCategories(plays []pbp.Play, g Grouping) CategoryTables {
	return CategoryTables{
		Passing:   ExtractPassing(plays, g),
		Rushing:   ExtractRushing(plays, g),
		Receiving: ExtractReceiving(plays, g),
		Dropback:  ExtractDropback(plays, g),
		Scramble:  ExtractScramble(plays, g),
	}
}

// accumulator sums non-missing values and tracks how many it saw, so the
// same pass yields both a skip-missing sum and a mean with the right
// denominator.
type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.n++
}

// mean returns nil when no non-missing value was observed.
func (a *accumulator) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}

// entity resolves the credited entity for a play: the team at team grain,
// otherwise the given player id. ok is false when no entity applies.
func (g Grouping) entity(p pbp.Play, playerID string) (string, bool) {
	if g.Type == StatTeam {
		return p.Posteam, p.Posteam != ""
	}
	return playerID, playerID != ""
}

// ExtractPassing aggregates pass plays and quarterback spikes.
func ExtractPassing(plays []pbp.Play, g Grouping) map[grainKey]PassingStats {
	type acc struct{ epa, cpoe, success accumulator }
	accs := make(map[grainKey]*acc)

	for _, p := range plays {
		if p.PlayType != "pass" && p.PlayType != "qb_spike" {
			continue
		}
		entity, ok := g.entity(p, p.PasserID)
		if !ok {
			continue
		}
		k := g.grain(p.Season, p.Week, p.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.epa.add(p.QBEPA)
		a.cpoe.add(p.CPOE)
		a.success.add(p.Success)
	}

	out := make(map[grainKey]PassingStats, len(accs))
	for k, a := range accs {
		out[k] = PassingStats{
			PassingEPA:         a.epa.sum,
			PassingCPOE:        a.cpoe.mean(),
			PassingSuccessRate: a.success.mean(),
		}
	}
	return out
}

// ExtractRushing aggregates designed runs and quarterback kneels.
func ExtractRushing(plays []pbp.Play, g Grouping) map[grainKey]RushingStats {
	accs := make(map[grainKey]*accumulator)

	for _, p := range plays {
		if p.PlayType != "run" && p.PlayType != "qb_kneel" {
			continue
		}
		entity, ok := g.entity(p, p.RusherID)
		if !ok {
			continue
		}
		k := g.grain(p.Season, p.Week, p.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &accumulator{}
			accs[k] = a
		}
		a.add(p.EPA)
	}

	out := make(map[grainKey]RushingStats, len(accs))
	for k, a := range accs {
		out[k] = RushingStats{RushingEPA: a.sum}
	}
	return out
}

// ExtractReceiving aggregates plays with a targeted receiver, completed or
// not.
func ExtractReceiving(plays []pbp.Play, g Grouping) map[grainKey]ReceivingStats {
	accs := make(map[grainKey]*accumulator)

	for _, p := range plays {
		if p.ReceiverID == "" {
			continue
		}
		entity, ok := g.entity(p, p.ReceiverID)
		if !ok {
			continue
		}
		k := g.grain(p.Season, p.Week, p.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &accumulator{}
			accs[k] = a
		}
		a.add(p.EPA)
	}

	out := make(map[grainKey]ReceivingStats, len(accs))
	for k, a := range accs {
		out[k] = ReceivingStats{ReceivingEPA: a.sum}
	}
	return out
}

// ExtractDropback aggregates all dropbacks. On scrambles the credited player
// is the rusher; otherwise the passer.
func ExtractDropback(plays []pbp.Play, g Grouping) map[grainKey]DropbackStats {
	type acc struct {
		n            int
		epa, success accumulator
	}
	accs := make(map[grainKey]*acc)

	for _, p := range plays {
		if !p.QBDropback {
			continue
		}
		playerID := p.PasserID
		if p.QBScramble {
			playerID = p.RusherID
		}
		entity, ok := g.entity(p, playerID)
		if !ok {
			continue
		}
		k := g.grain(p.Season, p.Week, p.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.n++
		a.epa.add(p.QBEPA)
		a.success.add(p.Success)
	}

	out := make(map[grainKey]DropbackStats, len(accs))
	for k, a := range accs {
		out[k] = DropbackStats{
			Dropbacks:           a.n,
			DropbackEPA:         a.epa.sum,
			DropbackSuccessRate: a.success.mean(),
			EPAPerDropback:      a.epa.mean(),
		}
	}
	return out
}

// ExtractScramble aggregates quarterback scrambles.
func ExtractScramble(plays []pbp.Play, g Grouping) map[grainKey]ScrambleStats {
	type acc struct {
		n            int
		epa, success accumulator
	}
	accs := make(map[grainKey]*acc)

	for _, p := range plays {
		if !p.QBScramble {
			continue
		}
		entity, ok := g.entity(p, p.RusherID)
		if !ok {
			continue
		}
		k := g.grain(p.Season, p.Week, p.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.n++
		a.epa.add(p.QBEPA)
		a.success.add(p.Success)
	}

	out := make(map[grainKey]ScrambleStats, len(accs))
	for k, a := range accs {
		out[k] = ScrambleStats{
			Scrambles:           a.n,
			ScrambleEPA:         a.epa.sum,
			EPAPerScramble:      a.epa.mean(),
			ScrambleSuccessRate: a.success.mean(),
		}
	}
	return out
}
