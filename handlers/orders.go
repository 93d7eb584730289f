// File: handlers/orders.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/middleware"
	"padelwatch/models"
	"padelwatch/services/notification"
	"padelwatch/services/orders"
	"padelwatch/services/search"
)

// OrderHandler serves the standing search order endpoints.
type OrderHandler struct {
	Orders        orders.OrderService
	Notifications notification.NotificationService
}

func NewOrderHandler(orderSvc orders.OrderService, notifSvc notification.NotificationService) *OrderHandler {
	return &OrderHandler{Orders: orderSvc, Notifications: notifSvc}
}

type createOrderInput struct {
	LocationIDs     []string `json:"locationIds" binding:"required"`
	Date            string   `json:"date" binding:"required"`
	StartTime       string   `json:"startTime" binding:"required"`
	EndTime         string   `json:"endTime" binding:"required"`
	DurationMinutes int      `json:"durationMinutes"`
	CourtType       string   `json:"courtType"`
	CourtConfig     string   `json:"courtConfig"`
}

// CreateOrderHandler handles POST /api/orders.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := models.ParseClock(input.StartTime)
	if err != nil {
		respondError(c, search.NewInvalidParameterError(err.Error()))
		return
	}
	end, err := models.ParseClock(input.EndTime)
	if err != nil {
		respondError(c, search.NewInvalidParameterError(err.Error()))
		return
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = 90
	}

	order := &models.SearchOrder{
		LocationIDs:     input.LocationIDs,
		Date:            input.Date,
		StartMinute:     start,
		EndMinute:       end,
		DurationMinutes: duration,
		CourtType:       input.CourtType,
		CourtConfig:     input.CourtConfig,
	}
	created, err := h.Orders.Create(c.Request.Context(), middleware.IdentityFrom(c), order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListOrdersHandler handles GET /api/orders.
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	list, err := h.Orders.ListByUser(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrderHandler handles GET /api/orders/:id.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	order, err := h.Orders.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderInput struct {
	LocationIDs     []string `json:"locationIds"`
	Date            *string  `json:"date"`
	StartTime       *string  `json:"startTime"`
	EndTime         *string  `json:"endTime"`
	DurationMinutes *int     `json:"durationMinutes"`
	CourtType       *string  `json:"courtType"`
	CourtConfig     *string  `json:"courtConfig"`
	Active          *bool    `json:"active"`
}

// UpdateOrderHandler handles PATCH /api/orders/:id. Omitted fields stay
// as they are; active toggles pause/resume.
func (h *OrderHandler) UpdateOrderHandler(c *gin.Context) {
	var input updateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	patch := orders.OrderPatch{
		LocationIDs:     input.LocationIDs,
		Date:            input.Date,
		DurationMinutes: input.DurationMinutes,
		CourtType:       input.CourtType,
		CourtConfig:     input.CourtConfig,
	}
	if input.StartTime != nil {
		start, err := models.ParseClock(*input.StartTime)
		if err != nil {
			respondError(c, search.NewInvalidParameterError(err.Error()))
			return
		}
		patch.StartMinute = &start
	}
	if input.EndTime != nil {
		end, err := models.ParseClock(*input.EndTime)
		if err != nil {
			respondError(c, search.NewInvalidParameterError(err.Error()))
			return
		}
		patch.EndMinute = &end
	}

	ctx := c.Request.Context()
	identity := middleware.IdentityFrom(c)
	orderID := c.Param("id")

	order, err := h.Orders.Update(ctx, identity, orderID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	if input.Active != nil {
		order, err = h.Orders.SetActive(ctx, identity, orderID, *input.Active)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrderHandler handles DELETE /api/orders/:id.
func (h *OrderHandler) DeleteOrderHandler(c *gin.Context) {
	if err := h.Orders.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Search order deleted"})
}

// ExecuteOrderHandler handles POST /api/orders/:id/execute, running the
// order's search immediately.
func (h *OrderHandler) ExecuteOrderHandler(c *gin.Context) {
	result, matches, err := h.Orders.ExecuteNow(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newMatches": matches, "result": result})
}

// ListOrderNotificationsHandler handles GET /api/orders/:id/notifications.
func (h *OrderHandler) ListOrderNotificationsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("id")

	// Loading through the order service enforces ownership.
	if _, err := h.Orders.Get(ctx, middleware.IdentityFrom(c), orderID); err != nil {
		respondError(c, err)
		return
	}
	list, err := h.Notifications.ListForOrder(ctx, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkNotificationReadHandler handles POST /api/notifications/:id/read.
func (h *OrderHandler) MarkNotificationReadHandler(c *gin.Context) {
	err := h.Notifications.MarkRead(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}
