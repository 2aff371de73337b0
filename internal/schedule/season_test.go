package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLaborDay(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2023, date(2023, time.September, 4)},
		{2024, date(2024, time.September, 2)},
		{2025, date(2025, time.September, 1)}, // Sept 1 is a Monday
		{2014, date(2014, time.September, 1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LaborDay(tt.year), "year %d", tt.year)
	}
}

func TestMostRecentSeason(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want int
	}{
		{"before opener", date(2024, time.August, 1), 2023},
		{"opener day", date(2024, time.September, 5), 2024},
		{"midseason", date(2024, time.October, 1), 2024},
		{"playoffs following january", date(2025, time.January, 15), 2024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MostRecentSeason(tt.ref))
		})
	}
}

func TestMostRecentRosterSeason(t *testing.T) {
	assert.Equal(t, 2023, MostRecentRosterSeason(date(2024, time.March, 1)))
	assert.Equal(t, 2024, MostRecentRosterSeason(date(2024, time.March, 15)))
	assert.Equal(t, 2024, MostRecentRosterSeason(date(2024, time.July, 4)))
}
