package calendar

import "time"

// Calendar abstracts the date arithmetic the engine needs. The production
// deployment plugs in a converter between the civil and fiscal calendar
// systems; the engine itself never does calendar math.
type Calendar interface {
	// ElapsedYears returns the whole and fractional years between two dates.
	ElapsedYears(from, to time.Time) float64

	// AddYears moves a date forward by a number of years.
	AddYears(t time.Time, years int) time.Time
}

// Gregorian is the default implementation used when no external calendar
// service is configured.
type Gregorian struct{}

func NewGregorian() Gregorian {
	return Gregorian{}
}

func (Gregorian) ElapsedYears(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}

	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
		anniversary = from.AddDate(years, 0, 0)
	}

	next := from.AddDate(years+1, 0, 0)
	span := next.Sub(anniversary)
	if span <= 0 {
		return float64(years)
	}

	return float64(years) + float64(to.Sub(anniversary))/float64(span)
}

func (Gregorian) AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}
