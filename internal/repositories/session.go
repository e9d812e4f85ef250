package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
)

// SessionRepository keeps revoked session ids in Redis until the session would have expired anyway.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func revokedKey(sessionID string) string {
	return fmt.Sprintf("session:revoked:%s", sessionID)
}

// Revoke marks the session id as revoked for ttl. A non-positive ttl is a no-op,
// the session has already expired.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedKey(sessionID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.FromContext(ctx).Debugw("redis set",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether the session id was revoked.
func (r *SessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := revokedKey(sessionID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.FromContext(ctx).Debugw("redis exists",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}
