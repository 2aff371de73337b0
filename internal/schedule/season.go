// Package schedule provides NFL calendar helpers: Labor Day math and
// detection of the most recent season for a given reference date.
package schedule

import "time"

// FirstSeason is the earliest season with play-by-play data.
const FirstSeason = 1999

// LaborDay returns the first Monday of September for the given year.
func LaborDay(year int) time.Time {
	first := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset)
}

// SeasonOpener returns the date of the season's opening game, the Thursday
// following Labor Day.
func SeasonOpener(year int) time.Time {
	return LaborDay(year).AddDate(0, 0, 3)
}

// MostRecentSeason returns the latest season that has started as of ref.
// Before the opener the previous season is still the most recent one.
func MostRecentSeason(ref time.Time) int {
	year := ref.Year()
	if ref.Before(SeasonOpener(year)) {
		return year - 1
	}
	return year
}

// MostRecentRosterSeason is like MostRecentSeason but cuts over at the
// start of free agency (March 15) instead of the season opener.
func MostRecentRosterSeason(ref time.Time) int {
	year := ref.Year()
	cutover := time.Date(year, time.March, 15, 0, 0, 0, 0, time.UTC)
	if ref.Before(cutover) {
		return year - 1
	}
	return year
}
