package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "events-tracker/pkg/domain-errors"
)

// Redis implements KeyValue on a go-redis client. Every call carries a
// bounded timeout so a slow store surfaces as an error instead of holding the
// request open.
type Redis struct {
	client  redis.Cmdable
	timeout time.Duration
}

// NewRedis wraps an existing client. The client lifecycle is managed by the
// caller.
func NewRedis(client redis.Cmdable, timeout time.Duration) *Redis {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Redis{client: client, timeout: timeout}
}

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "store get failed")
	}
	return v, nil
}

func (r *Redis) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	ok, err := r.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "store set failed")
	}
	return ok, nil
}

func (r *Redis) AddToSet(ctx context.Context, key, member string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.client.SAdd(ctx, key, member).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store set-add failed")
	}
	return nil
}

func (r *Redis) ListSet(ctx context.Context, key string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store set-list failed")
	}
	return members, nil
}

func (r *Redis) UpsertScored(ctx context.Context, key, member string, score float64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store scored-upsert failed")
	}
	return nil
}

func (r *Redis) RangeScoredDesc(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	zs, err := r.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store scored-range failed")
	}
	out := make([]ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, ScoredMember{Member: member, Score: z.Score})
	}
	return out, nil
}
