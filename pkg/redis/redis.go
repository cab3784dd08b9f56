package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hjakub/drive-backend/config"
	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// productCacheTTL bounds staleness if a product row is ever edited by
// hand; the catalog itself never mutates records after seeding.
const productCacheTTL = time.Hour

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// ProductCache is a read-through cache for immutable product records,
// keyed by whatever the caller looked the product up with (id or slug).
type ProductCache struct {
	client *redis.Client
}

// NewProductCache returns a cache backed by the initialized client.
func NewProductCache() *ProductCache {
	return &ProductCache{client: client}
}

func productKey(key string) string {
	return fmt.Sprintf("product:%s", key)
}

// Get returns the cached product for key, or false on a miss. Cache
// failures are logged and reported as misses, never surfaced.
func (c *ProductCache) Get(ctx context.Context, key string) (*model.Product, bool) {
	val, err := c.client.Get(ctx, productKey(key)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to read product cache", err, map[string]interface{}{
			"key": key,
		})
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		logger.Error("Failed to decode cached product", err, map[string]interface{}{
			"key": key,
		})
		return nil, false
	}
	return &product, true
}

// Set stores a product under key. Failures are logged and ignored.
func (c *ProductCache) Set(ctx context.Context, key string, product *model.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		logger.Error("Failed to encode product for cache", err, map[string]interface{}{
			"key": key,
		})
		return
	}

	if err := c.client.Set(ctx, productKey(key), payload, productCacheTTL).Err(); err != nil {
		logger.Error("Failed to write product cache", err, map[string]interface{}{
			"key": key,
		})
	}
}
