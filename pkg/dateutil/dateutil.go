package dateutil

import (
	"math"
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// YearsBetween calculates the number of years between two dates
func YearsBetween(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddFractionalYears advances a date by a possibly fractional number of years.
// Whole years move by calendar year; the remainder becomes days scaled to the
// length of the landing year.
func AddFractionalYears(date time.Time, years float64) time.Time {
	whole := int(years)
	frac := years - float64(whole)
	d := date.AddDate(whole, 0, 0)
	if frac == 0 {
		return d
	}
	days := int(math.Round(frac * float64(DaysInYear(d.Year()))))
	return d.AddDate(0, 0, days)
}
