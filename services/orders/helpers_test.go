// File: services/orders/helpers_test.go
package orders

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"padelwatch/database"
	notificationRepo "padelwatch/database/repository/notification"
	searchOrderRepo "padelwatch/database/repository/searchorder"
	"padelwatch/models"
	"padelwatch/services/notification"
	"padelwatch/services/search"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection, or every goroutine gets its own empty :memory: DB.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeSearch scripts search outcomes per location scope. Results and
// errors are keyed by the first location id of the spec, which is how
// the order tests tell orders apart.
type fakeSearch struct {
	mu        sync.Mutex
	locations map[string]models.Location
	results   map[string]*models.SearchResult
	errs      map[string]error
	searched  []string
}

func newFakeSearch(locationIDs ...string) *fakeSearch {
	f := &fakeSearch{
		locations: make(map[string]models.Location),
		results:   make(map[string]*models.SearchResult),
		errs:      make(map[string]error),
	}
	for _, id := range locationIDs {
		f.locations[id] = models.Location{ID: id, Name: "Club " + id, Slug: "club-" + id}
	}
	return f
}

func (f *fakeSearch) setResult(locationID string, result *models.SearchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[locationID] = result
}

func (f *fakeSearch) failFor(locationID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[locationID] = err
}

func (f *fakeSearch) searchedScopes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searched...)
}

func (f *fakeSearch) Search(ctx context.Context, identity models.Identity, spec models.SearchSpec) (*models.SearchResult, error) {
	key := ""
	if len(spec.LocationIDs) > 0 {
		key = spec.LocationIDs[0]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, key)

	if err := f.errs[key]; err != nil {
		return nil, err
	}
	if result := f.results[key]; result != nil {
		return result, nil
	}
	return &models.SearchResult{
		Date:            spec.Date,
		Window:          spec.Window,
		DurationMinutes: spec.DurationMinutes,
		PerformedAt:     time.Now().UTC(),
	}, nil
}

func (f *fakeSearch) ResolveLocations(ctx context.Context, locationIDs []string) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var resolved []models.Location
	for _, id := range locationIDs {
		loc, ok := f.locations[id]
		if !ok {
			return nil, search.NewLocationNotFoundError(id)
		}
		resolved = append(resolved, loc)
	}
	return resolved, nil
}

func (f *fakeSearch) SearchLocation(ctx context.Context, identity models.Identity, location models.Location, spec models.SearchSpec) (models.LocationResult, error) {
	return models.LocationResult{LocationID: location.ID}, nil
}

func newOrderEnv(t *testing.T) (*DefaultOrderService, *fakeSearch, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orderRepo := searchOrderRepo.NewGormSearchOrderRepo(db)
	notifRepo := notificationRepo.NewGormNotificationRepo(db)

	notifSvc, err := notification.NewDefaultNotificationService(notifRepo, orderRepo, nil, nil)
	if err != nil {
		t.Fatalf("notification service: %v", err)
	}

	fs := newFakeSearch("loc-a", "loc-b")
	svc, err := NewDefaultOrderService(orderRepo, fs, notifSvc)
	if err != nil {
		t.Fatalf("order service: %v", err)
	}
	return svc, fs, db
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(models.DateLayout)
}

func pastDate() string {
	return time.Now().AddDate(0, 0, -1).Format(models.DateLayout)
}

func draftOrder(locationID, date string) *models.SearchOrder {
	return &models.SearchOrder{
		LocationIDs:     []string{locationID},
		Date:            date,
		StartMinute:     17 * 60,
		EndMinute:       21 * 60,
		DurationMinutes: 90,
	}
}

func slotRef(availabilityID, courtID, start, end string) models.SlotResult {
	return models.SlotResult{
		AvailabilityID:  availabilityID,
		CourtID:         courtID,
		Start:           start,
		End:             end,
		DurationMinutes: 90,
	}
}

// scopeResult wraps slots in a one-location, one-court search result.
func scopeResult(locationID string, slots ...models.SlotResult) *models.SearchResult {
	courts := []models.CourtResult{}
	if len(slots) > 0 {
		courts = append(courts, models.CourtResult{
			Court: models.Court{ID: "court-1", LocationID: locationID, Name: "Court 1"},
			Slots: slots,
		})
	}
	return &models.SearchResult{
		Locations: []models.LocationResult{
			{LocationID: locationID, LocationName: "Club " + locationID, Courts: courts},
		},
		TotalSlots:  len(slots),
		PerformedAt: time.Now().UTC(),
	}
}

var (
	owner    = models.Identity{UserID: "user-1"}
	stranger = models.Identity{UserID: "user-2"}
	admin    = models.Identity{UserID: "admin-1", Admin: true}
)

func mustCreate(t *testing.T, svc *DefaultOrderService, identity models.Identity, order *models.SearchOrder) *models.SearchOrder {
	t.Helper()
	created, err := svc.Create(context.Background(), identity, order)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return created
}
