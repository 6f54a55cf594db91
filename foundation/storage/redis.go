package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis keeps the profile records in a redis instance, for deployments
// where several devices share one user profile.
type Redis struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

func NewRedis(addr, password string, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{client: client, logger: logger}, nil
}

func (r *Redis) Load(ctx context.Context, userID, record string) ([]byte, error) {
	blob, err := r.client.Get(ctx, key(userID, record)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key(userID, record), err)
	}
	return blob, nil
}

func (r *Redis) Save(ctx context.Context, userID, record string, blob []byte) error {
	if err := r.client.Set(ctx, key(userID, record), blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key(userID, record), err)
	}

	r.logger.Infow("storage: redis: saved", "user", userID, "record", record, "bytes", len(blob))
	return nil
}

func key(userID, record string) string {
	return fmt.Sprintf("syn10:%s:%s", record, userID)
}
