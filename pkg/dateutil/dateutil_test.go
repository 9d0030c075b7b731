package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{
			name:        "Same month and day",
			birthDate:   time.Date(1980, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 45,
		},
		{
			name:        "Day before birthday",
			birthDate:   time.Date(1980, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC),
			expectedAge: 44,
		},
		{
			name:        "Day after birthday",
			birthDate:   time.Date(1980, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC),
			expectedAge: 45,
		},
		{
			name:        "Month before birthday",
			birthDate:   time.Date(1980, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 44,
		},
		{
			name:        "Month after birthday",
			birthDate:   time.Date(1980, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 45,
		},
		{
			name:        "Leap year birth, non-leap year check",
			birthDate:   time.Date(1980, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			expectedAge: 44,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := Age(tt.birthDate, tt.atDate)
			assert.Equal(t, tt.expectedAge, age)
		})
	}
}

func TestYearsBetween(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	years := YearsBetween(from, to)
	assert.InDelta(t, 5.0, years, 0.01)

	assert.InDelta(t, -5.0, YearsBetween(to, from), 0.01)
}

func TestLeapYearHelpers(t *testing.T) {
	tests := []struct {
		year int
		leap bool
		days int
	}{
		{2024, true, 366},
		{2025, false, 365},
		{2000, true, 366},
		{1900, false, 365},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.leap, IsLeapYear(tt.year), "year %d", tt.year)
		assert.Equal(t, tt.days, DaysInYear(tt.year), "year %d", tt.year)
	}
}

func TestAddYears(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := AddYears(date, 10)
	assert.Equal(t, time.Date(2035, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestAddFractionalYears(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("whole years only", func(t *testing.T) {
		got := AddFractionalYears(start, 3)
		assert.Equal(t, time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("half year lands mid-year", func(t *testing.T) {
		got := AddFractionalYears(start, 2.5)
		// 2027 is not a leap year, so half a year is 183 days (rounded)
		assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 183), got)
	})

	t.Run("zero is identity", func(t *testing.T) {
		assert.Equal(t, start, AddFractionalYears(start, 0))
	})

	t.Run("round trip approximates YearsBetween", func(t *testing.T) {
		got := AddFractionalYears(start, 12.75)
		assert.InDelta(t, 12.75, YearsBetween(start, got), 0.01)
	})
}
