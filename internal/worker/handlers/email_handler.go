package worker_handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/Xenn-00/aufgaben-team/internal/mail"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// WelcomeEmail verschickt die Begrüßungsmail. Der Mailer wiederholt selbst, asynq nicht.
func (wh *WorkerHandler) WelcomeEmail() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.WelcomeEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Payload der Welcome-Mail ist ungültig")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		return wh.mailer.SendWelcome(ctx, mail.WelcomeMail{
			To:        p.Email,
			FullName:  p.FullName,
			Username:  p.Username,
			ClientURL: wh.opts.ClientURL,
		})
	}
}

// TeamInvitationEmail lädt die Einladung zum Versandzeitpunkt nach. Nicht mehr offene Einladungen werden übersprungen.
func (wh *WorkerHandler) TeamInvitationEmail() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.TeamInvitationEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Payload der Einladungs-Mail ist ungültig")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		inv, appErr := wh.invitations.GetInvitationDetail(ctx, p.InvitationID)
		if appErr != nil {
			log.Error().Err(appErr).Str("invitation_id", p.InvitationID).Msg("Worker handler: Einladung nicht ladbar")
			return appErr
		}

		if inv.Status != entity.InvitationPending || !inv.ExpiresAt.After(wh.now()) {
			log.Info().Str("invitation_id", inv.ID).Str("status", string(inv.Status)).Msg("Worker handler: Einladung nicht mehr offen, keine Mail")
			return nil // idempotent
		}
		if inv.InviteeEmail == "" {
			return nil
		}

		msg := ""
		if inv.Message != nil {
			msg = *inv.Message
		}

		return wh.mailer.SendTeamInvitation(ctx, mail.TeamInvitationMail{
			To:              inv.InviteeEmail,
			InviteeUsername: inv.InviteeUsername,
			InviterUsername: inv.InviterUsername,
			TeamName:        inv.TeamName,
			Role:            string(inv.Role),
			Message:         msg,
			ExpiresAt:       inv.ExpiresAt,
			Link:            strings.TrimRight(wh.opts.ClientURL, "/") + "/invitations",
		})
	}
}
