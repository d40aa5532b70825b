package utils

import "time"

// CalculateAge returns whole elapsed years between birthday and now.
func CalculateAge(birthday time.Time) int {
	return AgeAt(birthday, time.Now())
}

// AgeAt returns whole elapsed years between birthday and the reference time.
func AgeAt(birthday time.Time, at time.Time) int {
	years := at.Year() - birthday.Year()
	if at.Before(birthday.AddDate(years, 0, 0)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
