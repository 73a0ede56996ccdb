package model

import "time"

const (
	EntityName = "inventory"
)

// Category is one class of room with a fixed total unit count, defined at
// deployment time.
type Category struct {
	Name       string `json:"name"`
	TotalUnits int    `json:"total_units"`
}

// StayLine is one room allocation joined to its owning booking. The booking
// domain resolves the owning status into Canceled before handing lines over.
// A line whose dates failed to parse carries zero times and is skipped.
type StayLine struct {
	RoomType string
	Qty      int
	CheckIn  time.Time
	CheckOut time.Time
	Canceled bool
}

// Occupies reports whether the stay interval [CheckIn, CheckOut) covers the
// given day. The check-out day itself is never occupied.
func (l StayLine) Occupies(day time.Time) bool {
	return !day.Before(l.CheckIn) && day.Before(l.CheckOut)
}

const (
	ClassAvailable    = "AVAILABLE"
	ClassFull         = "FULL"
	ClassOverCapacity = "OVERBOOKED"
)

// Classify maps a remaining-units count onto its display class. Negative
// remainders are representable and must render distinctly from zero.
func Classify(remaining int) string {
	switch {
	case remaining > 0:
		return ClassAvailable
	case remaining == 0:
		return ClassFull
	default:
		return ClassOverCapacity
	}
}
