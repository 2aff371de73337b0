package stats

import "sort"

// rowAcc accumulates one grain bucket during the grouped reduce.
type rowAcc struct {
	nameCounts map[string]int

	seasonTypes []string // unique, in appearance order
	firstTeam   string
	lastTeam    string
	firstOff    string
	firstDef    string

	games map[string]struct{}

	// Per (game, team) denominators for season-grain share metrics: the
	// team's game totals for every game this entity appeared in.
	gameTeamTargets map[string]float64
	gameTeamAir     map[string]float64

	completions, attempts, passTDs, interceptions, sacks      int
	sackFumbles, sackFumblesLost, passFirstDowns, pass2Pt     int
	qbTargets                                                 int
	carries, rushTDs, rushFumbles, rushFumblesLost            int
	rushFirstDowns, rush2Pt                                   int
	receptions, targets, recTDs, recFumbles, recFumblesLost   int
	recFirstDowns, rec2Pt                                     int
	specialTDs                                                int
	passYards, sackYards, passAirYards, airYardsComplete      float64
	rushYards, recYards, recYAC, recvAirYards                 float64
	weekTeamTargets, weekTeamAirYards                         float64
	haveWeekTotals                                            bool
}

// Aggregate merges flagged play outcomes with the category tables at the
// requested grain and computes the cross-category derived ratios. Category
// tables join with outer semantics: a grain missing from one table keeps its
// row with null metrics for that category. Output is sorted by grain key.
func Aggregate(flagged []FlaggedEvent, cats CategoryTables, g Grouping) []StatRow {
	// Deterministic first/last/mode semantics regardless of input order.
	ordered := make([]FlaggedEvent, len(flagged))
	copy(ordered, flagged)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.PlayID != b.PlayID {
			return a.PlayID < b.PlayID
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.StatID < b.StatID
	})

	accs := make(map[grainKey]*rowAcc)
	for _, f := range ordered {
		entity := f.PlayerID
		if g.Type == StatTeam {
			entity = f.Team
		}
		k := g.grain(f.Season, f.Week, f.GameID, entity)
		a := accs[k]
		if a == nil {
			a = &rowAcc{
				nameCounts:      make(map[string]int),
				games:           make(map[string]struct{}),
				gameTeamTargets: make(map[string]float64),
				gameTeamAir:     make(map[string]float64),
				firstTeam:       f.Team,
				firstOff:        f.Off,
				firstDef:        f.Def,
			}
			accs[k] = a
		}
		a.observe(f, g)
	}

	keys := make([]grainKey, 0, len(accs))
	for k := range accs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	rows := make([]StatRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, accs[k].finish(k, cats, g))
	}
	return rows
}

func (a *rowAcc) observe(f FlaggedEvent, g Grouping) {
	if f.PlayerName != "" {
		a.nameCounts[f.PlayerName]++
	}
	if !containsString(a.seasonTypes, f.SeasonType) {
		a.seasonTypes = append(a.seasonTypes, f.SeasonType)
	}
	a.lastTeam = f.Team
	a.games[f.GameID] = struct{}{}

	gk := f.GameID + "@" + f.Team
	a.gameTeamTargets[gk] = f.TeamGameTargets
	a.gameTeamAir[gk] = f.TeamGameAirYards
	if !a.haveWeekTotals {
		a.weekTeamTargets = f.TeamGameTargets
		a.weekTeamAirYards = f.TeamGameAirYards
		a.haveWeekTotals = true
	}

	a.completions += b2i(f.IsComp)
	a.attempts += b2i(f.IsAtt)
	a.passTDs += b2i(f.IsPassTD)
	a.interceptions += b2i(f.IsInt)
	a.sacks += b2i(f.IsSack)
	a.sackFumbles += b2i(f.SackFumble)
	a.sackFumblesLost += b2i(f.SackFumbleLost)
	a.passFirstDowns += b2i(f.PassFirstDown)
	a.pass2Pt += b2i(f.IsPass2Pt)
	a.qbTargets += b2i(f.QBTarget)

	a.carries += b2i(f.IsCarry)
	a.rushTDs += b2i(f.IsRushTD)
	a.rushFumbles += b2i(f.RushFumble)
	a.rushFumblesLost += b2i(f.RushFumbleLost)
	a.rushFirstDowns += b2i(f.RushFirstDown)
	a.rush2Pt += b2i(f.IsRush2Pt)

	a.receptions += b2i(f.IsRec)
	a.targets += b2i(f.IsTarget)
	a.recTDs += b2i(f.IsRecTD)
	a.recFumbles += b2i(f.RecFumble)
	a.recFumblesLost += b2i(f.RecFumbleLost)
	a.recFirstDowns += b2i(f.RecFirstDown)
	a.rec2Pt += b2i(f.IsRec2Pt)

	a.specialTDs += b2i(f.SpecialTD)

	a.passYards += f.PassYards
	a.sackYards += f.SackYards
	a.passAirYards += f.AirYards
	a.airYardsComplete += f.AirYardsComplete
	a.rushYards += f.RushYards
	a.recYards += f.RecYards
	a.recYAC += f.YardsAfterCatch

	// Receiving air yards: a player's targeted plays use the whole play's
	// air yards; a team just sums its air-yard events.
	if g.Type == StatPlayer {
		if f.IsTarget {
			a.recvAirYards += f.TeamPlayAirYards
		}
	} else {
		a.recvAirYards += f.AirYards
	}
}

func (a *rowAcc) finish(k grainKey, cats CategoryTables, g Grouping) StatRow {
	r := StatRow{
		Season:     k.Season,
		Week:       k.Week,
		GameID:     k.GameID,
		SeasonType: joinSeasonTypes(a.seasonTypes),

		Completions:           a.completions,
		Attempts:              a.attempts,
		PassingYards:          a.passYards,
		PassingTDs:            a.passTDs,
		Interceptions:         a.interceptions,
		Sacks:                 a.sacks,
		SackYards:             a.sackYards,
		SackFumbles:           a.sackFumbles,
		SackFumblesLost:       a.sackFumblesLost,
		PassingAirYards:       a.passAirYards,
		PassingFirstDowns:     a.passFirstDowns,
		Passing2PtConversions: a.pass2Pt,
		QBTargets:             a.qbTargets,

		Carries:               a.carries,
		RushingYards:          a.rushYards,
		RushingTDs:            a.rushTDs,
		RushingFumbles:        a.rushFumbles,
		RushingFumblesLost:    a.rushFumblesLost,
		RushingFirstDowns:     a.rushFirstDowns,
		Rushing2PtConversions: a.rush2Pt,

		Receptions:               a.receptions,
		Targets:                  a.targets,
		ReceivingYards:           a.recYards,
		ReceivingYardsAfterCatch: a.recYAC,
		ReceivingAirYards:        a.recvAirYards,
		ReceivingTDs:             a.recTDs,
		ReceivingFumbles:         a.recFumbles,
		ReceivingFumblesLost:     a.recFumblesLost,
		ReceivingFirstDowns:      a.recFirstDowns,
		Receiving2PtConversions:  a.rec2Pt,

		SpecialTeamsTDs: a.specialTDs,
	}
	r.PassingYardsAfterCatch = r.PassingYards - a.airYardsComplete

	if g.Type == StatPlayer {
		r.PlayerID = k.Entity
		r.PlayerName = modeName(a.nameCounts)
		if g.Level == SummaryWeek {
			r.Team = a.lastTeam
		} else {
			r.Team = a.firstTeam
		}
	} else {
		r.Team = k.Entity
	}

	if g.Level == SummaryWeek {
		if r.Team == a.firstOff {
			r.OpponentTeam = a.firstDef
		} else {
			r.OpponentTeam = a.firstOff
		}
	} else {
		r.Games = len(a.games)
	}

	r.QBADOT = ratio(r.PassingAirYards, float64(r.QBTargets))

	if g.Type == StatPlayer {
		r.PACR = ratio(r.PassingYards, r.PassingAirYards)
		r.RACR = ratio(r.ReceivingYards, r.ReceivingAirYards)
		r.ReceiverADOT = ratio(r.ReceivingAirYards, float64(r.Targets))

		// Share denominators: the team's game totals. At season grain
		// they are re-derived from the weekly definition by summing the
		// team totals over exactly the games this player appeared in.
		teamTargets, teamAir := a.weekTeamTargets, a.weekTeamAirYards
		if g.Level == SummarySeason {
			teamTargets, teamAir = 0, 0
			for _, v := range a.gameTeamTargets {
				teamTargets += v
			}
			for _, v := range a.gameTeamAir {
				teamAir += v
			}
		}
		r.TargetShare = ratio(float64(r.Targets), teamTargets)
		r.AirYardsShare = ratio(r.ReceivingAirYards, teamAir)
		if r.TargetShare != nil && r.AirYardsShare != nil {
			w := 1.5**r.TargetShare + 0.7**r.AirYardsShare
			r.WOPR = &w
		}
	}

	mergeCategories(&r, k, cats)
	return r
}

// mergeCategories left-joins the extractor outputs onto the row. Absent
// grains keep null category metrics.
func mergeCategories(r *StatRow, k grainKey, cats CategoryTables) {
	if ps, ok := cats.Passing[k]; ok {
		epa := ps.PassingEPA
		r.PassingEPA = &epa
		r.PassingCPOE = ps.PassingCPOE
		r.PassingSuccessRate = ps.PassingSuccessRate
	}
	if rs, ok := cats.Rushing[k]; ok {
		epa := rs.RushingEPA
		r.RushingEPA = &epa
	}
	if rc, ok := cats.Receiving[k]; ok {
		epa := rc.ReceivingEPA
		r.ReceivingEPA = &epa
	}
	if db, ok := cats.Dropback[k]; ok {
		n := db.Dropbacks
		epa := db.DropbackEPA
		r.Dropbacks = &n
		r.DropbackEPA = &epa
		r.DropbackSuccessRate = db.DropbackSuccessRate
		r.EPAPerDropback = db.EPAPerDropback
	}
	if sc, ok := cats.Scramble[k]; ok {
		n := sc.Scrambles
		epa := sc.ScrambleEPA
		r.Scrambles = &n
		r.ScrambleEPA = &epa
		r.EPAPerScramble = sc.EPAPerScramble
		r.ScrambleSuccessRate = sc.ScrambleSuccessRate
	}
}

// ratio returns num/den, or nil when the denominator is not positive.
func ratio(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}

// modeName picks the most frequent name; ties break to the lexicographically
// smallest for determinism.
func modeName(counts map[string]int) string {
	best := ""
	bestN := 0
	for name, n := range counts {
		if n > bestN || (n == bestN && bestN > 0 && name < best) {
			best = name
			bestN = n
		}
	}
	return best
}

func joinSeasonTypes(types []string) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return types[0]
	}
	out := types[0]
	for _, t := range types[1:] {
		out += "+" + t
	}
	return out
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
