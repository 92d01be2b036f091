package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrDeleteFailed     = errors.New("session delete failed")
)

const (
	SessionKeyPrefix = "session:user:token"
	SessionExpire    = 30 * time.Minute
)

// SessionRepository keeps the single active-session token per account.
// Only the account id is authoritative; the user record is always
// re-fetched from the identity store on use.
type SessionRepository struct{}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", SessionKeyPrefix, userID)
}

func (r *SessionRepository) Store(ctx context.Context, userID uint64, token string) error {
	if err := Client.Set(ctx, sessionKey(userID), token, SessionExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID uint64) (string, error) {
	token, err := Client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) Extend(ctx context.Context, userID uint64) error {
	if _, err := Client.Expire(ctx, sessionKey(userID), SessionExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID uint64) error {
	if err := Client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return ErrDeleteFailed
	}
	return nil
}
