package models

import "time"

// Location is a padel club tracked on an external booking platform.
// Identity is (slug, provider) and is immutable after creation; courts
// and availability rows are removed together with their location.
type Location struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Slug               string    `gorm:"size:255;not null;uniqueIndex:idx_locations_slug_provider" json:"slug"`
	Provider           string    `gorm:"size:64;not null;uniqueIndex:idx_locations_slug_provider" json:"provider"`
	ProviderLocationID string    `gorm:"size:128;index" json:"providerLocationId"`
	Address            Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Phone              string    `gorm:"size:64" json:"phone,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Address is the structured club address as the platform reports it.
type Address struct {
	Street     string  `gorm:"size:255" json:"street,omitempty"`
	City       string  `gorm:"size:128" json:"city,omitempty"`
	PostalCode string  `gorm:"size:32" json:"postalCode,omitempty"`
	Country    string  `gorm:"size:128" json:"country,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Timezone   string  `gorm:"size:64" json:"timezone,omitempty"`
}
