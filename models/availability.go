package models

import "time"

// Availability is one bookable slot on a court, and the unit of the
// availability cache. A fetch for a (location, date) scope upserts the
// rows in that scope; no two rows for the same court may share
// (date, start, end).
type Availability struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	CourtID         string    `gorm:"size:36;not null;index;uniqueIndex:idx_availability_slot" json:"courtId"`
	Date            string    `gorm:"size:10;not null;index;uniqueIndex:idx_availability_slot" json:"date"`
	StartMinute     int       `gorm:"not null;uniqueIndex:idx_availability_slot" json:"startMinute"`
	EndMinute       int       `gorm:"not null;uniqueIndex:idx_availability_slot" json:"endMinute"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Price           *float64  `json:"price,omitempty"`
	Currency        string    `gorm:"size:8" json:"currency,omitempty"`
	Available       bool      `gorm:"not null" json:"available"`
	FetchedAt       time.Time `gorm:"not null;index" json:"fetchedAt"`
}

// StartClock renders the slot start as "HH:MM".
func (a Availability) StartClock() string { return FormatClock(a.StartMinute) }

// EndClock renders the slot end as "HH:MM".
func (a Availability) EndClock() string { return FormatClock(a.EndMinute) }

// Span returns the slot's own interval as a window.
func (a Availability) Span() Window {
	return Window{Start: a.StartMinute, End: a.EndMinute}
}
