// Package pregnancy holds the pregnancy-dating rules used by the profile
// endpoints. Dates are calendar dates without a time zone.
package pregnancy

import (
	"cloud.google.com/go/civil"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// GestationDays is the Naegele's rule offset from the last menstrual period
// to the estimated due date.
const GestationDays = 280

// EstimateDueDate returns lmp advanced by GestationDays calendar days.
func EstimateDueDate(lmp civil.Date) civil.Date {
	return lmp.AddDays(GestationDays)
}

// ResolveDueDate picks the due date to store for a profile. A supplied due
// date is kept verbatim; otherwise it is estimated from lmp when present.
// Both nil yields nil.
func ResolveDueDate(lmp, due *civil.Date) *civil.Date {
	if due != nil {
		d := *due
		return &d
	}
	if lmp == nil {
		return nil
	}
	d := EstimateDueDate(*lmp)
	return &d
}

// GestationalWeek returns the current week of pregnancy on today, counting
// the LMP week as week 1, clamped to the supported range.
func GestationalWeek(lmp, today civil.Date) int {
	w := today.DaysSince(lmp)/7 + 1
	switch {
	case w < domain.MinWeek:
		return domain.MinWeek
	case w > domain.MaxWeek:
		return domain.MaxWeek
	}
	return w
}
