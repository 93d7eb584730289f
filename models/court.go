package models

import "time"

// Court type and configuration filter values.
const (
	CourtTypeAll     = "all"
	CourtTypeIndoor  = "indoor"
	CourtTypeOutdoor = "outdoor"

	CourtConfigAll    = "all"
	CourtConfigSingle = "single"
	CourtConfigDouble = "double"
)

// Court is one playable court at a location. Courts are created during
// normalization of platform data and are unique per (location, platform
// court id).
type Court struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	LocationID      string    `gorm:"size:36;not null;index;uniqueIndex:idx_courts_location_provider" json:"locationId"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Indoor          bool      `json:"indoor"`
	Double          bool      `json:"double"`
	ProviderCourtID string    `gorm:"size:128;not null;uniqueIndex:idx_courts_location_provider" json:"providerCourtId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MatchesType reports whether the court passes an indoor/outdoor filter.
func (c Court) MatchesType(filter string) bool {
	switch filter {
	case "", CourtTypeAll:
		return true
	case CourtTypeIndoor:
		return c.Indoor
	case CourtTypeOutdoor:
		return !c.Indoor
	}
	return false
}

// MatchesConfig reports whether the court passes a single/double filter.
func (c Court) MatchesConfig(filter string) bool {
	switch filter {
	case "", CourtConfigAll:
		return true
	case CourtConfigSingle:
		return !c.Double
	case CourtConfigDouble:
		return c.Double
	}
	return false
}

// ValidCourtType reports whether s is a recognized court type filter.
func ValidCourtType(s string) bool {
	return s == "" || s == CourtTypeAll || s == CourtTypeIndoor || s == CourtTypeOutdoor
}

// ValidCourtConfig reports whether s is a recognized court config filter.
func ValidCourtConfig(s string) bool {
	return s == "" || s == CourtConfigAll || s == CourtConfigSingle || s == CourtConfigDouble
}
