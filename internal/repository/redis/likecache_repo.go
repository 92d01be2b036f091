package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	likeSetTTL    = 24 * time.Hour
	likeCntTTL    = 24 * time.Hour
	likeLockTTL   = 300 * time.Millisecond
	likeSetPrefix = "like:set:post"
	likeCntPrefix = "like:cnt:post"
	likeLockKey   = "lock:like:post"
)

// LikeCacheRepository caches per-post like membership and counts.
// Writers update it best-effort after the database commit; readers
// fall back to the database on a miss.
type LikeCacheRepository struct{}

func NewLikeCacheRepository() *LikeCacheRepository {
	return &LikeCacheRepository{}
}

func likeSetKey(postID uint64) string { return fmt.Sprintf("%s:%d", likeSetPrefix, postID) }
func likeCntKey(postID uint64) string { return fmt.Sprintf("%s:%d", likeCntPrefix, postID) }

func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, postID uint64) error {
	k := likeSetKey(postID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, likeSetTTL).Err()

	ck := likeCntKey(postID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, likeCntTTL).Err()
	return nil
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, userID, postID uint64) error {
	if err := Client.SRem(ctx, likeSetKey(postID), userID).Err(); err != nil {
		return err
	}
	ck := likeCntKey(postID)
	// counter must not go negative
	return Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck)
}

// IsLiked reports (liked, cacheHit, err); a missing set is a miss, not
// a negative answer.
func (r *LikeCacheRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, bool, error) {
	k := likeSetKey(postID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

func (r *LikeCacheRepository) GetCount(ctx context.Context, postID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, likeCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (r *LikeCacheRepository) SetCount(ctx context.Context, postID uint64, cnt int64) error {
	return Client.Set(ctx, likeCntKey(postID), cnt, likeCntTTL).Err()
}

// WarmIsLiked backfills membership only when the set already exists,
// so cold posts never grow an unbounded set.
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, postID uint64, liked bool) {
	k := likeSetKey(postID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, likeSetTTL).Err()
	}
}

func (r *LikeCacheRepository) DeleteCount(ctx context.Context, postID uint64) error {
	err := Client.Del(ctx, likeCntKey(postID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// DistLock is a minimal SetNX lock guarding like-count rebuilds.
type DistLock struct {
	RDB *redis.Client
}

func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", likeLockKey, postID)
	return l.RDB.SetNX(ctx, key, token, likeLockTTL).Result()
}

// Release deletes the lock only when the token still matches.
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", likeLockKey, postID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
