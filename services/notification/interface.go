package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	notificationRepo "padelwatch/database/repository/notification"
	searchOrderRepo "padelwatch/database/repository/searchorder"

	"padelwatch/models"
)

// NotificationService records matched slots for standing orders and
// hands delivery to the queue worker.
type NotificationService interface {
	RecordMatch(ctx context.Context, order *models.SearchOrder, slot models.SlotResult) (*models.SearchOrderNotification, error)
	Dispatch(ctx context.Context, notificationID string) error
	ListForOrder(ctx context.Context, orderID string) ([]models.SearchOrderNotification, error)
	// SeenAvailabilityIDs returns every availability id already recorded
	// for the order; the scheduler diffs fresh results against it.
	SeenAvailabilityIDs(ctx context.Context, orderID string) (map[string]bool, error)
	// MarkRead flags a notification as read. Only the owner of the
	// notification's order, or an admin, may do so.
	MarkRead(ctx context.Context, identity models.Identity, notificationID string) error
}

// DefaultNotificationService is the production implementation. Queue
// may be nil, in which case matches are recorded but never dispatched.
type DefaultNotificationService struct {
	Repo      notificationRepo.NotificationRepository
	OrderRepo searchOrderRepo.SearchOrderRepository
	Queue     *asynq.Client
	Mailer    Mailer
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	orderRepo searchOrderRepo.SearchOrderRepository,
	queue *asynq.Client,
	mailer Mailer,
) (*DefaultNotificationService, error) {
	if repo == nil || orderRepo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &DefaultNotificationService{
		Repo:      repo,
		OrderRepo: orderRepo,
		Queue:     queue,
		Mailer:    mailer,
	}, nil
}
