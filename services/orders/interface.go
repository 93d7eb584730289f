// File: services/orders/interface.go
package orders

import (
	"context"
	"errors"

	searchOrderRepo "padelwatch/database/repository/searchorder"
	"padelwatch/models"
	"padelwatch/services/notification"
	"padelwatch/services/search"
)

// OrderPatch carries a partial update for a search order. Nil fields are
// left unchanged; LocationIDs replaces the whole scope when non-nil.
type OrderPatch struct {
	LocationIDs     []string `json:"locationIds,omitempty"`
	Date            *string  `json:"date,omitempty"`
	StartMinute     *int     `json:"startMinute,omitempty"`
	EndMinute       *int     `json:"endMinute,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	CourtType       *string  `json:"courtType,omitempty"`
	CourtConfig     *string  `json:"courtConfig,omitempty"`
}

// CheckSummary reports one scheduler pass over the active orders.
type CheckSummary struct {
	Checked     int `json:"checked"`
	Deactivated int `json:"deactivated"`
	NewMatches  int `json:"newMatches"`
	Failed      int `json:"failed"`
}

// OrderService manages standing search orders: saved searches that the
// scheduler re-runs until their date passes, notifying the owner when a
// slot appears that earlier passes did not see.
//
// Mutations are restricted to the order's owner or an admin.
type OrderService interface {
	Create(ctx context.Context, identity models.Identity, order *models.SearchOrder) (*models.SearchOrder, error)
	Get(ctx context.Context, identity models.Identity, orderID string) (*models.SearchOrder, error)
	ListByUser(ctx context.Context, identity models.Identity) ([]models.SearchOrder, error)
	Update(ctx context.Context, identity models.Identity, orderID string, patch OrderPatch) (*models.SearchOrder, error)
	SetActive(ctx context.Context, identity models.Identity, orderID string, active bool) (*models.SearchOrder, error)
	Delete(ctx context.Context, identity models.Identity, orderID string) error

	// ExecuteNow runs one order's search immediately, outside the
	// schedule, and records notifications for any unseen slots. It
	// returns the search result and the number of new matches.
	ExecuteNow(ctx context.Context, identity models.Identity, orderID string) (*models.SearchResult, int, error)

	// CheckDueOrders is the periodic scheduler pass: it deactivates
	// orders whose date has passed and re-runs the rest. One order
	// failing never stops the pass.
	CheckDueOrders(ctx context.Context) CheckSummary
}

// DefaultOrderService is the production implementation backed by the
// order repository, the search service, and the notification service.
type DefaultOrderService struct {
	OrderRepo     searchOrderRepo.SearchOrderRepository
	Search        search.SearchService
	Notifications notification.NotificationService
}

func NewDefaultOrderService(
	orderRepo searchOrderRepo.SearchOrderRepository,
	searchSvc search.SearchService,
	notifications notification.NotificationService,
) (*DefaultOrderService, error) {
	if orderRepo == nil || searchSvc == nil || notifications == nil {
		return nil, errors.New("orders: missing required dependency")
	}
	return &DefaultOrderService{
		OrderRepo:     orderRepo,
		Search:        searchSvc,
		Notifications: notifications,
	}, nil
}
