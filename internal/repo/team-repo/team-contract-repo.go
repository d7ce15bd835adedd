package team_repo

import (
	"context"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type TeamRepoContract interface {
	InsertTeam(ctx context.Context, team *entity.TeamEntity) *app_errors.AppError
	GetTeamByID(ctx context.Context, teamID string) (*entity.TeamEntity, *app_errors.AppError)
	// GetTeamByIDForUpdate sperrt die Zeile bis zum Ende von t.
	GetTeamByIDForUpdate(ctx context.Context, t tx.Tx, teamID string) (*entity.TeamEntity, *app_errors.AppError)
	GetTeamByInviteCode(ctx context.Context, t tx.Tx, code string) (*entity.TeamEntity, *app_errors.AppError)
	ListTeamsForUser(ctx context.Context, userID string) ([]entity.TeamSummary, *app_errors.AppError)
	CountMemberships(ctx context.Context, userID string) (int, *app_errors.AppError)
	UpdateTeam(ctx context.Context, t tx.Tx, team *entity.TeamEntity) *app_errors.AppError
	DeleteTeam(ctx context.Context, teamID string) *app_errors.AppError
}
