package models

import "time"

// Identity is the caller identity supplied by the upstream gateway.
// Only admins may force a live fetch that bypasses freshness checks.
type Identity struct {
	UserID string `json:"userId"`
	Admin  bool   `json:"admin"`
}

// SearchSpec defines one availability search: the target date, the
// preferred time window, the desired slot duration, the location scope
// (empty means every known location) and the court filters.
type SearchSpec struct {
	Date            string   `json:"date"`
	Window          Window   `json:"window"`
	DurationMinutes int      `json:"durationMinutes"`
	LocationIDs     []string `json:"locationIds,omitempty"`
	CourtType       string   `json:"courtType,omitempty"`
	CourtConfig     string   `json:"courtConfig,omitempty"`
	LiveSearch      bool     `json:"liveSearch,omitempty"`
	ForceLiveSearch bool     `json:"forceLiveSearch,omitempty"`
}

// SearchResult aggregates the matching slots of one search, grouped by
// location and court. Ordering is deterministic: locations in request
// order (or by id when the scope was defaulted), courts by id, slots by
// start time.
type SearchResult struct {
	Date            string            `json:"date"`
	Window          Window            `json:"window"`
	DurationMinutes int               `json:"durationMinutes"`
	Locations       []LocationResult  `json:"locations"`
	Failures        []LocationFailure `json:"failures,omitempty"`
	TotalSlots      int               `json:"totalSlots"`
	PerformedAt     time.Time         `json:"performedAt"`
}

// AvailabilityIDs returns the ids of every matched availability row, in
// result order. The scheduler diffs these against previously notified
// ids.
func (r *SearchResult) AvailabilityIDs() []string {
	var ids []string
	for _, loc := range r.Locations {
		for _, c := range loc.Courts {
			for _, s := range c.Slots {
				ids = append(ids, s.AvailabilityID)
			}
		}
	}
	return ids
}

// LocationResult is one location's contribution to a search result.
type LocationResult struct {
	LocationID   string        `json:"locationId"`
	LocationName string        `json:"locationName"`
	Slug         string        `json:"slug"`
	Cached       bool          `json:"cached"`
	Stale        bool          `json:"stale,omitempty"`
	FetchedAt    *time.Time    `json:"fetchedAt,omitempty"`
	Courts       []CourtResult `json:"courts"`
}

// CourtResult is one court's matching slots.
type CourtResult struct {
	Court Court        `json:"court"`
	Slots []SlotResult `json:"slots"`
}

// SlotResult is one matched slot, ready for presentation.
type SlotResult struct {
	AvailabilityID  string   `json:"availabilityId"`
	CourtID         string   `json:"courtId"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	BookingURL      string   `json:"bookingUrl,omitempty"`
}

// LocationFailure marks a location whose data could not be sourced
// during an otherwise successful search.
type LocationFailure struct {
	LocationID string `json:"locationId"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}
