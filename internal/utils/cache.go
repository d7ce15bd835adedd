package utils

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Redis-Schlüssel. Sessions: session:<jti> plus Index user_sessions:<uid>.
const (
	sessionPrefix      = "session:"
	userSessionsPrefix = "user_sessions:"
	userStatsPrefix    = "stats:user:"
)

func SessionKey(jti string) string         { return sessionPrefix + jti }
func UserSessionsKey(userID string) string { return userSessionsPrefix + userID }
func UserStatsKey(userID string) string    { return userStatsPrefix + userID }

// ReadCache entpackt den JSON-Wert unter key nach dest. Bei Cache-Miss (false, nil).
func ReadCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, *app_errors.AppError) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, app_errors.Internal(err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, app_errors.Internal(err)
	}
	return true, nil
}

// GetCacheData ist ReadCache mit Rückgabe als *T; nil bedeutet Cache-Miss.
func GetCacheData[T any](ctx context.Context, rdb *redis.Client, key string) (*T, *app_errors.AppError) {
	var data T
	hit, err := ReadCache(ctx, rdb, key, &data)
	if err != nil || !hit {
		return nil, err
	}
	return &data, nil
}

// SetCacheData speichert value als JSON mit Ablaufzeit.
func SetCacheData(ctx context.Context, rdb *redis.Client, key string, value any, expire time.Duration) *app_errors.AppError {
	raw, err := json.Marshal(value)
	if err != nil {
		return app_errors.Internal(err)
	}
	if err := rdb.Set(ctx, key, raw, expire).Err(); err != nil {
		return app_errors.Internal(err)
	}
	return nil
}

// DeleteCacheData ignoriert fehlende Keys.
func DeleteCacheData(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
