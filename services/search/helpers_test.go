package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	availabilityRepo "padelwatch/database/repository/availability"
	courtRepo "padelwatch/database/repository/court"
	locationRepo "padelwatch/database/repository/location"
	searchRequestRepo "padelwatch/database/repository/searchrequest"

	"padelwatch/courtfinder"
	"padelwatch/database"
	"padelwatch/models"
)

// fakeProvider is a scriptable booking platform client. Failures can be
// armed per tenant, once or permanently; every upstream call is counted.
type fakeProvider struct {
	mu       sync.Mutex
	total    int
	byScope  map[string]int
	failOnce map[string]error
	fail     map[string]error
	data     map[string]*courtfinder.RawAvailability
	clubs    map[string]*courtfinder.RawClub
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		byScope:  make(map[string]int),
		failOnce: make(map[string]error),
		fail:     make(map[string]error),
		data:     make(map[string]*courtfinder.RawAvailability),
		clubs:    make(map[string]*courtfinder.RawClub),
	}
}

func (f *fakeProvider) Name() string { return courtfinder.ProviderPlaytomic }

func (f *fakeProvider) setAvailability(tenantID, date string, resources ...courtfinder.RawResource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[tenantID+"|"+date] = &courtfinder.RawAvailability{
		Provider:  f.Name(),
		TenantID:  tenantID,
		Date:      date,
		Resources: resources,
	}
}

func (f *fakeProvider) failNext(tenantID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOnce[tenantID] = err
}

func (f *fakeProvider) failAlways(tenantID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[tenantID] = err
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *fakeProvider) FetchAvailability(ctx context.Context, tenantID, date string) (*courtfinder.RawAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total++
	f.byScope[tenantID+"|"+date]++
	if err, ok := f.failOnce[tenantID]; ok {
		delete(f.failOnce, tenantID)
		return nil, err
	}
	if err := f.fail[tenantID]; err != nil {
		return nil, err
	}
	if raw, ok := f.data[tenantID+"|"+date]; ok {
		return raw, nil
	}
	return &courtfinder.RawAvailability{Provider: f.Name(), TenantID: tenantID, Date: date}, nil
}

func (f *fakeProvider) FetchClubInfo(ctx context.Context, slug string) (*courtfinder.RawClub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total++
	if club, ok := f.clubs[slug]; ok {
		return club, nil
	}
	return nil, &courtfinder.Error{Code: courtfinder.ErrCodeRejected, Provider: f.Name(), Message: "no such club"}
}

func (f *fakeProvider) BookingURL(tenantID, resourceID, date string, startMinute, durationMinutes int) string {
	return fmt.Sprintf("https://book.test/%s/%s/%s/%d/%d", tenantID, resourceID, date, startMinute, durationMinutes)
}

func rawResource(resourceID string, slots ...courtfinder.RawSlot) courtfinder.RawResource {
	return courtfinder.RawResource{ResourceID: resourceID, Slots: slots}
}

func rawSlot(start string, duration int, price string) courtfinder.RawSlot {
	return courtfinder.RawSlot{StartTime: start, Duration: duration, Price: price}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T, provider *fakeProvider) (*DefaultSearchService, *CacheCoordinator, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	registry := courtfinder.NewRegistry(provider)
	coord := &CacheCoordinator{
		Providers:         registry,
		CourtRepo:         courtRepo.NewGormCourtRepo(db),
		AvailabilityRepo:  availabilityRepo.NewGormAvailabilityRepo(db),
		SearchRequestRepo: searchRequestRepo.NewGormSearchRequestRepo(db),
		Freshness:         15 * time.Minute,
	}
	svc := &DefaultSearchService{
		LocationRepo:     locationRepo.NewGormLocationRepo(db),
		Coordinator:      coord,
		Providers:        registry,
		FetchConcurrency: 4,
	}
	return svc, coord, db
}

func seedLocation(t *testing.T, db *gorm.DB, id, name string) models.Location {
	t.Helper()
	loc := models.Location{
		ID:                 id,
		Name:               name,
		Slug:               name,
		Provider:           courtfinder.ProviderPlaytomic,
		ProviderLocationID: "tenant-" + id,
	}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return loc
}

func seedCourt(t *testing.T, db *gorm.DB, id, locationID, name string, indoor, double bool) models.Court {
	t.Helper()
	court := models.Court{
		ID:              id,
		LocationID:      locationID,
		Name:            name,
		Indoor:          indoor,
		Double:          double,
		ProviderCourtID: "res-" + id,
	}
	if err := db.Create(&court).Error; err != nil {
		t.Fatalf("seed court: %v", err)
	}
	return court
}

func seedRows(t *testing.T, db *gorm.DB, rows []models.Availability) {
	t.Helper()
	repo := availabilityRepo.NewGormAvailabilityRepo(db)
	if _, _, err := repo.UpsertBatch(context.Background(), rows); err != nil {
		t.Fatalf("seed availability: %v", err)
	}
}

func upstreamDown() error {
	return &courtfinder.Error{
		Code:     courtfinder.ErrCodeUnavailable,
		Provider: courtfinder.ProviderPlaytomic,
		Message:  "connection refused",
	}
}
