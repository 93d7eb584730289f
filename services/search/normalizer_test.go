package search

import (
	"testing"
	"time"

	"padelwatch/courtfinder"
)

func TestNormalizeClubMapsCourtTraits(t *testing.T) {
	raw := &courtfinder.RawClub{
		Provider: courtfinder.ProviderPlaytomic,
		TenantID: "t-1",
		Name:     "Padel Hall",
		Slug:     "padel-hall",
		Address: courtfinder.RawAddress{
			Street:     "Kungsgatan 1",
			City:       "Stockholm",
			PostalCode: "11122",
			Country:    "Sweden",
			Latitude:   59.33,
			Longitude:  18.06,
			Timezone:   "Europe/Stockholm",
		},
		Courts: []courtfinder.RawCourt{
			{ResourceID: "r-1", Name: "Court 1", Type: "indoor", Size: "double"},
			{ResourceID: "r-2", Name: "Court 2", Type: "outdoor", Size: "single"},
			{ResourceID: "r-3", Name: "Court 3", Type: "INDOOR", Size: "DOUBLE"},
			{ResourceID: "r-4", Name: "Court 4"},
		},
	}

	location, courts := NormalizeClub(raw)

	if location.Name != "Padel Hall" || location.Slug != "padel-hall" {
		t.Errorf("unexpected location identity: %+v", location)
	}
	if location.Provider != courtfinder.ProviderPlaytomic || location.ProviderLocationID != "t-1" {
		t.Errorf("unexpected provider linkage: %+v", location)
	}
	if location.Address.City != "Stockholm" || location.Address.Timezone != "Europe/Stockholm" {
		t.Errorf("address not mapped: %+v", location.Address)
	}

	if len(courts) != 4 {
		t.Fatalf("expected 4 courts, got %d", len(courts))
	}
	wantTraits := []struct{ indoor, double bool }{
		{true, true},
		{false, false},
		{true, true},
		{false, false},
	}
	for i, want := range wantTraits {
		if courts[i].Indoor != want.indoor || courts[i].Double != want.double {
			t.Errorf("court %s traits: indoor=%v double=%v, want %v/%v",
				courts[i].ProviderCourtID, courts[i].Indoor, courts[i].Double, want.indoor, want.double)
		}
	}
}

func TestNormalizeAvailabilitySkipsMalformedRecords(t *testing.T) {
	fetchedAt := time.Now().UTC()
	raw := &courtfinder.RawAvailability{
		Provider: courtfinder.ProviderPlaytomic,
		TenantID: "t-1",
		Date:     "2025-11-16",
		Resources: []courtfinder.RawResource{
			rawResource("r-1",
				rawSlot("18:00:00", 90, "36 EUR"),
				rawSlot("banana", 90, "36 EUR"),
				rawSlot("19:00:00", 0, "36 EUR"),
				rawSlot("23:30:00", 60, "24 EUR"),
			),
			rawResource("r-unknown",
				rawSlot("10:00:00", 60, "20 EUR"),
				rawSlot("11:00:00", 60, "20 EUR"),
			),
		},
	}
	courtIDs := map[string]string{"r-1": "court-1"}

	rows, skipped := NormalizeAvailability(raw, courtIDs, fetchedAt)

	if len(rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(rows))
	}
	if skipped != 5 {
		t.Errorf("expected 5 skipped records, got %d", skipped)
	}

	row := rows[0]
	if row.CourtID != "court-1" || row.Date != "2025-11-16" {
		t.Errorf("row scope wrong: %+v", row)
	}
	if row.StartMinute != 18*60 || row.EndMinute != 19*60+30 || row.DurationMinutes != 90 {
		t.Errorf("row span wrong: %+v", row)
	}
	if row.Price == nil || *row.Price != 36 || row.Currency != "EUR" {
		t.Errorf("price not parsed: %+v", row)
	}
	if !row.Available {
		t.Errorf("fetched slots must be available")
	}
	if !row.FetchedAt.Equal(fetchedAt) {
		t.Errorf("fetch timestamp not stamped")
	}
}

func TestNormalizeAvailabilityUsesResourceDate(t *testing.T) {
	raw := &courtfinder.RawAvailability{
		Provider: courtfinder.ProviderPlaytomic,
		TenantID: "t-1",
		Date:     "2025-11-16",
		Resources: []courtfinder.RawResource{
			{ResourceID: "r-1", StartDate: "2025-11-17", Slots: []courtfinder.RawSlot{rawSlot("09:00:00", 60, "")}},
		},
	}
	rows, skipped := NormalizeAvailability(raw, map[string]string{"r-1": "c-1"}, time.Now().UTC())
	if skipped != 0 || len(rows) != 1 {
		t.Fatalf("rows=%d skipped=%d", len(rows), skipped)
	}
	if rows[0].Date != "2025-11-17" {
		t.Errorf("resource start date should win, got %s", rows[0].Date)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in       string
		want     float64
		wantNil  bool
		currency string
	}{
		{"36 EUR", 36, false, "EUR"},
		{"28,5 EUR", 28.5, false, "EUR"},
		{"42", 42, false, ""},
		{"", 0, true, ""},
		{"free", 0, true, ""},
	}
	for _, tc := range cases {
		got, currency := parsePrice(tc.in)
		if tc.wantNil {
			if got != nil {
				t.Errorf("parsePrice(%q) = %v, want nil", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		if currency != tc.currency {
			t.Errorf("parsePrice(%q) currency = %q, want %q", tc.in, currency, tc.currency)
		}
	}
}
