package utils

import (
	"context"
	"log"
	"time"

	"padelwatch/config"

	"github.com/go-redis/redis/v8"
)

// QueueRedisClient is the client for the notification queue's redis,
// shared by health checks and the worker's connection monitor.
var QueueRedisClient *redis.Client

// InitQueueRedis initializes the queue redis client and verifies the
// connection.
func InitQueueRedis() {
	QueueRedisClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := QueueRedisClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (queue): %v", err)
	}
}

// GetQueueRedisClient returns the queue redis client.
func GetQueueRedisClient() *redis.Client {
	if QueueRedisClient == nil {
		InitQueueRedis()
	}
	return QueueRedisClient
}
