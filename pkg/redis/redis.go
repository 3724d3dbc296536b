package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

var client *redis.Client

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// RevocationCache shares revoked token digests between server replicas.
// Each key holds the token's expiry as unix seconds and expires with it.
type RevocationCache struct {
	client *redis.Client
}

func NewRevocationCache(c *redis.Client) *RevocationCache {
	return &RevocationCache{client: c}
}

// Add marks a token digest as revoked until expiresAt. Already expired
// tokens are not stored.
func (r *RevocationCache) Add(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	value := strconv.FormatInt(expiresAt.Unix(), 10)
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenHash, value, ttl).Err(); err != nil {
		logger.Error("Failed to cache revoked token", err)
		return err
	}
	return nil
}

// Lookup returns the token expiry stored for a revoked digest
func (r *RevocationCache) Lookup(ctx context.Context, tokenHash string) (time.Time, bool, error) {
	val, err := r.client.Get(ctx, revokedKeyPrefix+tokenHash).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		logger.Error("Failed to check revoked token cache", err)
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed revocation entry %q: %w", val, err)
	}
	return time.Unix(unix, 0), true, nil
}
