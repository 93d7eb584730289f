package models

import "time"

// SearchOrderNotification ties a search order to one newly seen
// availability match. Rows are immutable after creation except for the
// delivery fields, set by the dispatch worker, and the read flag, set
// by the owning user.
type SearchOrderNotification struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	SearchOrderID  string     `gorm:"size:36;not null;index;uniqueIndex:idx_notifications_order_availability" json:"searchOrderId"`
	CourtID        string     `gorm:"size:36;not null" json:"courtId"`
	AvailabilityID string     `gorm:"size:36;not null;uniqueIndex:idx_notifications_order_availability" json:"availabilityId"`
	Notified       bool       `gorm:"not null" json:"notified"`
	NotifiedAt     *time.Time `json:"notifiedAt,omitempty"`
	Read           bool       `gorm:"not null" json:"read"`
	CreatedAt      time.Time  `json:"createdAt"`
}
