package notification

import (
	"context"

	"go.uber.org/zap"

	"padelwatch/models"
	"padelwatch/utils"
)

// Mailer delivers match alerts to users. Delivery transport is a thin
// seam behind this interface; the queue worker calls it once per
// notification.
type Mailer interface {
	SendMatchAlert(ctx context.Context, userID string, n *models.SearchOrderNotification) error
}

// LogMailer writes alerts to the application log. It stands in until a
// real email transport is wired up.
type LogMailer struct{}

func (LogMailer) SendMatchAlert(ctx context.Context, userID string, n *models.SearchOrderNotification) error {
	utils.GetLogger().Info("match alert",
		zap.String("userID", userID),
		zap.String("searchOrderID", n.SearchOrderID),
		zap.String("availabilityID", n.AvailabilityID),
		zap.String("courtID", n.CourtID))
	return nil
}
