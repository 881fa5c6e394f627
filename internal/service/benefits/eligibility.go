package benefits

import "time"

// Service length arithmetic is defined once here. Every calculator that
// gates on tenure uses these two functions, never its own variant.

// serviceMonthsInYear returns how many months of the target year the
// employee served, counting the appointment month itself. An employee
// appointed in September serves 4 months (Sep to Dec).
func serviceMonthsInYear(appointmentDate time.Time, year int) int {
	if appointmentDate.Year() > year {
		return 0
	}
	if appointmentDate.Year() < year {
		return 12
	}
	return 12 - int(appointmentDate.Month()) + 1
}

// yearsOfService returns full years of service as of the given date.
func yearsOfService(appointmentDate, asOf time.Time) int {
	if asOf.Before(appointmentDate) {
		return 0
	}
	years := asOf.Year() - appointmentDate.Year()
	anniversary := appointmentDate.AddDate(years, 0, 0)
	if asOf.Before(anniversary) {
		years--
	}
	return years
}

// yearEnd is the reference date for tenure-based benefits in a year.
func yearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
