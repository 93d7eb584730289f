package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"padelwatch/courtfinder"
	"padelwatch/models"
)

func rowIDs(data *LocationData) []string {
	ids := make([]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestGetAvailabilitySingleFlight(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR"), rawSlot("19:30:00", 90, "36 EUR")),
	)

	const callers = 8
	results := make([]*LocationData, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
		}(i)
	}
	wg.Wait()

	if n := provider.calls(); n != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", n)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if len(results[i].Rows) != 2 {
			t.Fatalf("caller %d got %d rows, want 2", i, len(results[i].Rows))
		}
	}
	want := rowIDs(results[0])
	for i := 1; i < callers; i++ {
		got := rowIDs(results[i])
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("caller %d saw different dataset: %v vs %v", i, got, want)
			}
		}
	}
}

func TestGetAvailabilityServesFreshCache(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR")),
	)

	first, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Cached {
		t.Errorf("first call should be live")
	}

	second, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !second.Cached || second.Stale {
		t.Errorf("second call should serve fresh cache, got cached=%v stale=%v", second.Cached, second.Stale)
	}
	if n := provider.calls(); n != 1 {
		t.Errorf("fresh cache must not trigger a second upstream call, got %d", n)
	}
}

func TestGetAvailabilityRefetchesWhenStale(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR")),
	)

	if _, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	coord.Freshness = time.Nanosecond
	time.Sleep(2 * time.Millisecond)

	data, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err != nil {
		t.Fatalf("stale call failed: %v", err)
	}
	if data.Cached {
		t.Errorf("stale cache should trigger a live fetch")
	}
	if n := provider.calls(); n != 2 {
		t.Errorf("expected 2 upstream calls, got %d", n)
	}
}

func TestGetAvailabilityRetriesTransientFailureOnce(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR")),
	)
	provider.failNext(loc.ProviderLocationID, upstreamDown())

	data, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err != nil {
		t.Fatalf("retry should have recovered: %v", err)
	}
	if data.Cached {
		t.Errorf("recovered fetch should be live")
	}
	if n := provider.calls(); n != 2 {
		t.Errorf("expected 2 upstream calls (original plus retry), got %d", n)
	}
}

func TestGetAvailabilityDoesNotRetryMalformedPayload(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.failNext(loc.ProviderLocationID, &courtfinder.Error{
		Code:     courtfinder.ErrCodeMalformed,
		Provider: courtfinder.ProviderPlaytomic,
		Message:  "unexpected payload shape",
	})

	_, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err == nil {
		t.Fatalf("malformed payload with empty cache must fail")
	}
	if code := courtfinder.CodeOf(err); code != courtfinder.ErrCodeMalformed {
		t.Errorf("expected malformed code, got %q", code)
	}
	if n := provider.calls(); n != 1 {
		t.Errorf("malformed payloads must not be retried, got %d calls", n)
	}
}

func TestGetAvailabilityFallsBackToStaleCache(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR")),
	)

	if _, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true}); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}
	provider.failAlways(loc.ProviderLocationID, upstreamDown())

	data, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{ForceLiveSearch: true})
	if err != nil {
		t.Fatalf("stale fallback should not propagate the error: %v", err)
	}
	if !data.Cached || !data.Stale {
		t.Errorf("fallback data should be cached and stale, got cached=%v stale=%v", data.Cached, data.Stale)
	}
	if len(data.Rows) != 1 {
		t.Errorf("fallback should serve the stored rows, got %d", len(data.Rows))
	}
	if data.FetchedAt == nil {
		t.Errorf("fallback data should carry the cache timestamp")
	}
}

func TestGetAvailabilityPropagatesErrorWithoutCache(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.failAlways(loc.ProviderLocationID, upstreamDown())

	_, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err == nil {
		t.Fatalf("empty store and failing upstream must surface the error")
	}
	if code := courtfinder.CodeOf(err); code != courtfinder.ErrCodeUnavailable {
		t.Errorf("expected unavailable code, got %q", code)
	}
}

func TestRefreshIsIdempotentAcrossFetches(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR"), rawSlot("19:30:00", 90, "36 EUR")),
	)

	first, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{ForceLiveSearch: true})
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{ForceLiveSearch: true})
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if len(first.Rows) != 2 || len(second.Rows) != 2 {
		t.Fatalf("row counts changed across identical fetches: %d then %d", len(first.Rows), len(second.Rows))
	}
	firstIDs, secondIDs := rowIDs(first), rowIDs(second)
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Errorf("row id changed across identical fetches: %s -> %s", firstIDs[i], secondIDs[i])
		}
	}

	var count int64
	if err := db.Model(&models.Availability{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 persisted rows, got %d", count)
	}
}

func TestRefreshRetiresVanishedSlots(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR"), rawSlot("19:30:00", 90, "36 EUR")),
	)

	if _, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{ForceLiveSearch: true}); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	// The 19:30 slot disappears upstream (booked by someone else).
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-1", rawSlot("18:00:00", 90, "36 EUR")),
	)
	time.Sleep(2 * time.Millisecond)

	data, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{ForceLiveSearch: true})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected both rows to remain, got %d", len(data.Rows))
	}
	for _, row := range data.Rows {
		switch row.StartMinute {
		case 18 * 60:
			if !row.Available {
				t.Errorf("18:00 slot should stay available")
			}
		case 19*60 + 30:
			if row.Available {
				t.Errorf("vanished 19:30 slot should be retired")
			}
		default:
			t.Errorf("unexpected row at %d", row.StartMinute)
		}
	}
}

func TestRefreshCreatesPlaceholderCourts(t *testing.T) {
	provider := newFakeProvider()
	_, coord, db := newTestEnv(t, provider)
	loc := seedLocation(t, db, "loc-1", "club-one")
	provider.setAvailability(loc.ProviderLocationID, "2025-11-16",
		rawResource("r-new", rawSlot("10:00:00", 60, "20 EUR")),
	)

	data, err := coord.GetAvailability(context.Background(), loc, "2025-11-16", FetchOptions{LiveSearch: true})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(data.Courts) != 1 {
		t.Fatalf("expected the placeholder court, got %d courts", len(data.Courts))
	}
	court := data.Courts[0]
	if court.ProviderCourtID != "r-new" || court.Name != "r-new" {
		t.Errorf("placeholder court should be named after the resource id: %+v", court)
	}
	if court.Indoor || court.Double {
		t.Errorf("placeholder court traits should default to outdoor single")
	}

	var count int64
	if err := db.Model(&models.Court{}).Count(&count).Error; err != nil {
		t.Fatalf("count courts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 court row, got %d", count)
	}
}
