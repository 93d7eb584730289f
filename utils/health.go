package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Database  bool      `json:"database"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(db *gorm.DB, redisClient *redis.Client) {
	checkHealth(db, redisClient)

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			checkHealth(db, redisClient)
		}
	}()
}

func checkHealth(db *gorm.DB, redisClient *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbHealthy := false
	if sqlDB, err := db.DB(); err == nil {
		dbHealthy = sqlDB.PingContext(ctx) == nil
	}
	redisHealthy := redisClient.Ping(ctx).Err() == nil

	healthMu.Lock()
	currentHealth = HealthStatus{
		Database:  dbHealthy,
		Redis:     redisHealthy,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
