package user_case

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/rs/zerolog/log"
)

const StatsTTL = 5 * time.Minute

// StatsKey ist der Redis-Schlüssel der gecachten Benutzerstatistik.
// Jeder Task-Schreibzugriff des Besitzers löscht ihn.
func StatsKey(userID string) string {
	return utils.UserStatsKey(userID)
}

// Stats liest zuerst den Cache. Parallele Misses für denselben Benutzer rechnen nur einmal.
func (s *UserService) Stats(ctx context.Context, userID string) (*stats.UserStats, *app_errors.AppError) {
	key := StatsKey(userID)

	if s.cache != nil {
		var cached stats.UserStats
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			// Redis dient nur als Cache, bei Fehlern wird neu gerechnet
			log.Warn().Err(err).Str("key", key).Msg("Fehler beim Lesen der Stats-Cache")
		} else if hit {
			return &cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		computed, appErr := s.computeStats(ctx, userID)
		if appErr != nil {
			return nil, appErr
		}

		if s.cache != nil {
			if setErr := s.cache.Set(ctx, key, computed, StatsTTL); setErr != nil {
				log.Warn().Err(setErr).Str("key", key).Msg("Fehler beim Einstellen der Stats-Cache")
			}
		}
		return computed, nil
	})
	if err != nil {
		var appErr *app_errors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, app_errors.Internal(err)
	}

	return v.(*stats.UserStats), nil
}

func (s *UserService) computeStats(ctx context.Context, userID string) (*stats.UserStats, *app_errors.AppError) {
	now := time.Now()

	counts, err := s.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	samples, err := s.tasks.ListCompletedSamples(ctx, userID)
	if err != nil {
		return nil, err
	}

	overdue, err := s.tasks.CountOverdue(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	loc := s.loc
	if loc == nil {
		loc = time.Local
	}

	result := stats.Productivity(counts, samples, loc, now)
	result.Overdue = overdue
	return &result, nil
}

func (s *UserService) UserStats(ctx context.Context, targetID, viewerID string) (*stats.UserStats, *app_errors.AppError) {
	if targetID != viewerID {
		shared, err := s.repo.ShareTeam(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		if !shared {
			return nil, app_errors.Forbidden()
		}
	}

	return s.Stats(ctx, targetID)
}
