// File: services/orders/service_test.go
package orders

import (
	"context"
	"testing"

	"padelwatch/models"
	"padelwatch/services/search"
)

func TestCreateStampsOwnerAndDefaults(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))

	if created.ID == "" {
		t.Fatal("expected a generated order id")
	}
	if created.UserID != owner.UserID {
		t.Fatalf("owner = %q, want %q", created.UserID, owner.UserID)
	}
	if !created.Active {
		t.Fatal("new orders must start active")
	}
	if created.CourtType != "all" || created.CourtConfig != "all" {
		t.Fatalf("court filters = %q/%q, want all/all", created.CourtType, created.CourtConfig)
	}
	if created.LastCheckedAt != nil {
		t.Fatal("a new order has never been checked")
	}

	loaded, err := svc.Get(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Date != created.Date || len(loaded.LocationIDs) != 1 || loaded.LocationIDs[0] != "loc-a" {
		t.Fatalf("persisted order differs: %+v", loaded)
	}
}

func TestCreateRejectsInvalidOrders(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		identity models.Identity
		mutate   func(*models.SearchOrder)
		wantCode string
	}{
		{"missing owner", models.Identity{}, func(o *models.SearchOrder) {}, search.ErrCodeInvalidParameter},
		{"no locations", owner, func(o *models.SearchOrder) { o.LocationIDs = nil }, search.ErrCodeInvalidParameter},
		{"bad date", owner, func(o *models.SearchOrder) { o.Date = "16-11-2025" }, search.ErrCodeInvalidParameter},
		{"inverted window", owner, func(o *models.SearchOrder) { o.StartMinute = 21 * 60; o.EndMinute = 17 * 60 }, search.ErrCodeInvalidParameter},
		{"zero duration", owner, func(o *models.SearchOrder) { o.DurationMinutes = 0 }, search.ErrCodeInvalidParameter},
		{"unknown location", owner, func(o *models.SearchOrder) { o.LocationIDs = []string{"loc-zz"} }, search.ErrCodeLocationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := draftOrder("loc-a", futureDate())
			tc.mutate(order)

			_, err := svc.Create(ctx, tc.identity, order)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := search.CodeOf(err); got != tc.wantCode {
				t.Fatalf("code = %q, want %q (err: %v)", got, tc.wantCode, err)
			}
		})
	}
}

func TestPerOrderOperationsEnforceOwnership(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))

	if _, err := svc.Get(ctx, stranger, created.ID); CodeOf(err) != ErrCodeForbidden {
		t.Fatalf("stranger get: code = %q, want forbidden", CodeOf(err))
	}
	if _, err := svc.Update(ctx, stranger, created.ID, OrderPatch{}); CodeOf(err) != ErrCodeForbidden {
		t.Fatalf("stranger update: code = %q, want forbidden", CodeOf(err))
	}
	if _, err := svc.SetActive(ctx, stranger, created.ID, false); CodeOf(err) != ErrCodeForbidden {
		t.Fatalf("stranger set active: code = %q, want forbidden", CodeOf(err))
	}
	if err := svc.Delete(ctx, stranger, created.ID); CodeOf(err) != ErrCodeForbidden {
		t.Fatalf("stranger delete: code = %q, want forbidden", CodeOf(err))
	}

	if _, err := svc.Get(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if _, err := svc.SetActive(ctx, admin, created.ID, false); err != nil {
		t.Fatalf("admin set active: %v", err)
	}
	if err := svc.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))

	newDate := futureDate()
	duration := 60
	start := 18 * 60
	updated, err := svc.Update(ctx, owner, created.ID, OrderPatch{
		Date:            &newDate,
		DurationMinutes: &duration,
		StartMinute:     &start,
		LocationIDs:     []string{"loc-b"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Date != newDate || updated.DurationMinutes != 60 || updated.StartMinute != 18*60 {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	if updated.EndMinute != 21*60 {
		t.Fatalf("unpatched end minute changed: %d", updated.EndMinute)
	}
	if len(updated.LocationIDs) != 1 || updated.LocationIDs[0] != "loc-b" {
		t.Fatalf("location scope = %v, want [loc-b]", updated.LocationIDs)
	}
}

func TestUpdateRejectsInvalidPatchWithoutPersisting(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))

	badEnd := 10 * 60
	_, err := svc.Update(ctx, owner, created.ID, OrderPatch{EndMinute: &badEnd})
	if search.CodeOf(err) != search.ErrCodeInvalidParameter {
		t.Fatalf("code = %q, want invalid_parameter", search.CodeOf(err))
	}

	loaded, err := svc.Get(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("get after failed update: %v", err)
	}
	if loaded.EndMinute != 21*60 {
		t.Fatalf("failed update leaked into storage: end = %d", loaded.EndMinute)
	}
}

func TestSetActiveToggles(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))

	paused, err := svc.SetActive(ctx, owner, created.ID, false)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if paused.Active {
		t.Fatal("order still active after deactivation")
	}

	// Repeating the same state is a no-op, not an error.
	if _, err := svc.SetActive(ctx, owner, created.ID, false); err != nil {
		t.Fatalf("repeat deactivate: %v", err)
	}

	resumed, err := svc.SetActive(ctx, owner, created.ID, true)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !resumed.Active {
		t.Fatal("order inactive after reactivation")
	}
}

func TestDeleteRemovesOrderAndItsNotifications(t *testing.T) {
	svc, fs, _ := newOrderEnv(t)
	ctx := context.Background()

	created := mustCreate(t, svc, owner, draftOrder("loc-a", futureDate()))
	fs.setResult("loc-a", scopeResult("loc-a", slotRef("avail-1", "court-1", "18:00", "19:30")))

	if _, matches, err := svc.ExecuteNow(ctx, owner, created.ID); err != nil || matches != 1 {
		t.Fatalf("execute now = (%d, %v), want (1, nil)", matches, err)
	}

	if err := svc.Delete(ctx, owner, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, owner, created.ID); CodeOf(err) != ErrCodeOrderNotFound {
		t.Fatalf("get after delete: code = %q, want order_not_found", CodeOf(err))
	}
	rows, err := svc.Notifications.ListForOrder(ctx, created.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("notifications survived the delete: %d", len(rows))
	}
}

func TestUnknownOrderID(t *testing.T) {
	svc, _, _ := newOrderEnv(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, owner, "no-such-order"); CodeOf(err) != ErrCodeOrderNotFound {
		t.Fatalf("get: code = %q, want order_not_found", CodeOf(err))
	}
	if err := svc.Delete(ctx, owner, "no-such-order"); CodeOf(err) != ErrCodeOrderNotFound {
		t.Fatalf("delete: code = %q, want order_not_found", CodeOf(err))
	}
}
