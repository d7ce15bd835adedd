package auth_case

import (
	"context"
	"time"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionStore hält aktive Sessions. Get liefert (nil, nil), wenn die Session nicht (mehr) existiert.
type SessionStore interface {
	Save(ctx context.Context, session *SessionTracker, ttl time.Duration) *app_errors.AppError
	Get(ctx context.Context, jti string) (*SessionTracker, *app_errors.AppError)
	Delete(ctx context.Context, session *SessionTracker) *app_errors.AppError
	ListForUser(ctx context.Context, userID string) ([]SessionTracker, *app_errors.AppError)
	DeleteAllForUser(ctx context.Context, userID string) *app_errors.AppError
}

type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(redis *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: redis}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *SessionTracker, ttl time.Duration) *app_errors.AppError {
	if err := utils.SetCacheData(ctx, s.redis, utils.SessionKey(session.JTI), session, ttl); err != nil {
		return err
	}

	setKey := utils.UserSessionsKey(session.UserID)
	pipe := s.redis.TxPipeline()
	pipe.SAdd(ctx, setKey, session.JTI)
	pipe.Expire(ctx, setKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Msg("Fehler beim Aktualisieren der User-Sessions")
		return app_errors.Internal(err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, jti string) (*SessionTracker, *app_errors.AppError) {
	return utils.GetCacheData[SessionTracker](ctx, s.redis, utils.SessionKey(jti))
}

func (s *RedisSessionStore) Delete(ctx context.Context, session *SessionTracker) *app_errors.AppError {
	// 1. Löschen der Haupt-Session
	if err := utils.DeleteCacheData(ctx, s.redis, utils.SessionKey(session.JTI)); err != nil {
		log.Error().Err(err).Msg("Fehler beim Löschen der Cache")
		return app_errors.Internal(err)
	}

	// 2. Löschen der JTI von dem Set der User-Sessions
	if err := s.redis.SRem(ctx, utils.UserSessionsKey(session.UserID), session.JTI).Err(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Löschen der Cache")
		return app_errors.Internal(err)
	}
	return nil
}

// ListForUser räumt dabei abgelaufene JTIs aus dem Set.
func (s *RedisSessionStore) ListForUser(ctx context.Context, userID string) ([]SessionTracker, *app_errors.AppError) {
	setKey := utils.UserSessionsKey(userID)
	jtis, err := s.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		log.Error().Err(err).Msg("Fehler beim Abrufen der Redis-SMembers")
		return nil, app_errors.Internal(err)
	}

	sessions := make([]SessionTracker, 0, len(jtis))
	for _, jti := range jtis {
		session, getErr := s.Get(ctx, jti)
		if getErr != nil {
			return nil, getErr
		}
		if session == nil {
			s.redis.SRem(ctx, setKey, jti)
			continue
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

func (s *RedisSessionStore) DeleteAllForUser(ctx context.Context, userID string) *app_errors.AppError {
	setKey := utils.UserSessionsKey(userID)
	jtis, err := s.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		log.Error().Err(err).Msg("Fehler beim Abrufen der Redis-SMembers")
		return app_errors.Internal(err)
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, utils.SessionKey(jti))
	}
	keys = append(keys, setKey)

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Löschen der Cache")
		return app_errors.Internal(err)
	}
	return nil
}
