// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Search endpoints
	RunSearchHandler gin.HandlerFunc

	// Background search task endpoints
	StartSearchTaskHandler  gin.HandlerFunc
	GetSearchTaskHandler    gin.HandlerFunc
	CancelSearchTaskHandler gin.HandlerFunc

	// Search order endpoints
	CreateOrderHandler            gin.HandlerFunc
	ListOrdersHandler             gin.HandlerFunc
	GetOrderHandler               gin.HandlerFunc
	UpdateOrderHandler            gin.HandlerFunc
	DeleteOrderHandler            gin.HandlerFunc
	ExecuteOrderHandler           gin.HandlerFunc
	ListOrderNotificationsHandler gin.HandlerFunc
	MarkNotificationReadHandler   gin.HandlerFunc

	// Location endpoints
	AddLocationHandler       gin.HandlerFunc
	ListLocationsHandler     gin.HandlerFunc
	GetLocationHandler       gin.HandlerFunc
	GetLocationCourtsHandler gin.HandlerFunc
	DeleteLocationHandler    gin.HandlerFunc

	// Admin endpoints
	ClearCacheHandler     gin.HandlerFunc
	RefreshAllDataHandler gin.HandlerFunc
}
