// Package courtfinder talks to external court booking platforms. Each
// platform implements the Provider interface; a Registry resolves the
// provider tag stored on a location to its client. Providers are
// read-only: they fetch availability and club metadata, never book.
package courtfinder

import (
	"context"
	"fmt"
	"sort"
)

// Provider is one booking platform integration. Implementations are
// stateless and safe for concurrent use; retry policy belongs to the
// caller.
type Provider interface {
	// Name returns the provider tag stored on locations, e.g. "playtomic".
	Name() string
	// FetchAvailability retrieves the raw slots of one club on one date.
	FetchAvailability(ctx context.Context, tenantID, date string) (*RawAvailability, error)
	// FetchClubInfo retrieves club metadata and the court list by slug.
	FetchClubInfo(ctx context.Context, slug string) (*RawClub, error)
	// BookingURL builds a deep link into the platform's booking flow for
	// one slot. Returns "" when the ids are incomplete.
	BookingURL(tenantID, resourceID, date string, startMinute, durationMinutes int) string
}

// RawAvailability is one club's availability on one date, decoded from
// the platform but not yet normalized.
type RawAvailability struct {
	Provider  string
	TenantID  string
	Date      string
	Resources []RawResource
}

// RawResource is one court's slot list as the platform groups it.
type RawResource struct {
	ResourceID string
	StartDate  string
	Slots      []RawSlot
}

// RawSlot is one bookable start time. StartTime keeps the platform's
// clock format; Price keeps the platform's display string (e.g. "24 EUR").
type RawSlot struct {
	StartTime string
	Duration  int
	Price     string
}

// RawClub is club metadata plus the court inventory.
type RawClub struct {
	Provider string
	TenantID string
	Name     string
	Slug     string
	Address  RawAddress
	Courts   []RawCourt
}

// RawAddress mirrors the platform's structured address.
type RawAddress struct {
	Street     string
	City       string
	PostalCode string
	Country    string
	Latitude   float64
	Longitude  float64
	Timezone   string
}

// RawCourt carries the platform's court attributes. Type and Size keep
// the platform vocabulary ("indoor"/"outdoor", "single"/"double"); the
// normalizer owns the mapping to internal flags.
type RawCourt struct {
	ResourceID string
	Name       string
	Type       string
	Size       string
	Feature    string
}

// Registry resolves a provider tag to its client. The provider set is
// closed and small; registration happens once at startup.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown booking provider %q", name)
	}
	return p, nil
}

// Names lists the registered provider tags, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
