package restoreledger

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "restore-token::consumed::"

// Redis keeps ids of consumed restore tokens until the tokens would have
// expired anyway.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) Consume(ctx context.Context, claims user.RestoreClaims) (bool, error) {
	ttl := claims.ExpiresAt.Sub(r.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := r.redisClient.SetNX(ctx, key(claims.ID), int64(claims.UserID), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("could not mark restore token as consumed: %w", err)
	}
	if !ok {
		r.log.Warning(
			ctx,
			"Restore token has already been consumed.",
			logging.Entry("userId", claims.UserID),
			logging.Entry("tokenId", claims.ID),
		)
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, claims user.RestoreClaims) error {
	if err := r.redisClient.Del(ctx, key(claims.ID)).Err(); err != nil {
		return fmt.Errorf("could not release restore token: %w", err)
	}
	return nil
}

func key(id user.RestoreTokenID) string {
	return keyPrefix + string(id)
}
