package pbp

// teamSynonyms maps historical team abbreviations (relocations, renames,
// alternate feed spellings) to the current code. Codes not present map to
// themselves, so CanonicalTeam is total and idempotent.
var teamSynonyms = map[string]string{
	"STL": "LA",
	"SL":  "LA",
	"SD":  "LAC",
	"OAK": "LV",
	"JAC": "JAX",
	"ARZ": "ARI",
	"BLT": "BAL",
	"CLV": "CLE",
	"HST": "HOU",
}

// CanonicalTeam returns the current abbreviation for a team code. Unmapped
// codes pass through unchanged.
func CanonicalTeam(code string) string {
	if canonical, ok := teamSynonyms[code]; ok {
		return canonical
	}
	return code
}

// canonicalizeTeams rewrites every team column of a play in place.
func canonicalizeTeams(p *Play) {
	p.HomeTeam = CanonicalTeam(p.HomeTeam)
	p.AwayTeam = CanonicalTeam(p.AwayTeam)
	p.Posteam = CanonicalTeam(p.Posteam)
	p.Defteam = CanonicalTeam(p.Defteam)
}
