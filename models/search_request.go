package models

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// SearchRequest records one availability lookup for a (location, date)
// scope. The newest live row per scope is the freshness marker the
// cache coordinator consults before deciding on a platform fetch.
type SearchRequest struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	SearchHash  string    `gorm:"size:32;not null;index" json:"searchHash"`
	LocationID  string    `gorm:"size:36;not null;index:idx_search_requests_scope" json:"locationId"`
	Date        string    `gorm:"size:10;not null;index:idx_search_requests_scope" json:"date"`
	LiveSearch  bool      `gorm:"not null" json:"liveSearch"`
	SlotsFound  int       `json:"slotsFound"`
	PerformedAt time.Time `gorm:"not null;index" json:"performedAt"`
}

// SearchScopeHash derives the stable hash identifying a (location, date)
// fetch scope.
func SearchScopeHash(locationID, date string) string {
	sum := md5.Sum([]byte(locationID + "|" + date))
	return hex.EncodeToString(sum[:])
}
