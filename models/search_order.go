package models

import "time"

// SearchOrder is a standing search re-evaluated on a schedule. The
// scheduler stamps LastCheckedAt on every pass and deactivates orders
// whose date has passed.
type SearchOrder struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserID          string     `gorm:"size:64;not null;index" json:"userId"`
	LocationIDs     []string   `gorm:"serializer:json" json:"locationIds"`
	Date            string     `gorm:"size:10;not null;index" json:"date"`
	StartMinute     int        `gorm:"not null" json:"startMinute"`
	EndMinute       int        `gorm:"not null" json:"endMinute"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	CourtType       string     `gorm:"size:16;not null;default:all" json:"courtType"`
	CourtConfig     string     `gorm:"size:16;not null;default:all" json:"courtConfig"`
	Active          bool       `gorm:"not null;index" json:"active"`
	LastCheckedAt   *time.Time `json:"lastCheckedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Window returns the order's preferred time window.
func (o *SearchOrder) Window() Window {
	return Window{Start: o.StartMinute, End: o.EndMinute}
}

// SearchSpec builds the search specification this order stands for.
// Scheduled checks request a live search so fresh data is fetched once
// the cached scope ages past the freshness threshold.
func (o *SearchOrder) SearchSpec() SearchSpec {
	return SearchSpec{
		Date:            o.Date,
		Window:          o.Window(),
		DurationMinutes: o.DurationMinutes,
		LocationIDs:     append([]string(nil), o.LocationIDs...),
		CourtType:       o.CourtType,
		CourtConfig:     o.CourtConfig,
		LiveSearch:      true,
	}
}
