package use_cases

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/rs/zerolog/log"
)

// Notify legt eine Benachrichtigung an. Fehler werden nur geloggt und nie an den Aufrufer
// weitergegeben, die eigentliche Operation ist zu diesem Zeitpunkt bereits erfolgreich.
func Notify(ctx context.Context, repo notification_repo.NotificationRepoContract, n *entity.NotificationEntity) {
	if repo == nil || n == nil || n.RecipientID == "" {
		return
	}

	if n.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			log.Error().Err(err).Msg("Fehler beim Erzeugen der Notification-ID")
			return
		}
		n.ID = id
	}

	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = n.CreatedAt.Add(entity.NotificationTTL)
	}

	if err := repo.InsertNotification(ctx, n); err != nil {
		log.Warn().Err(err).
			Str("recipient_id", n.RecipientID).
			Str("type", string(n.Type)).
			Msg("Benachrichtigung konnte nicht gespeichert werden")
	}
}

// NotifyMany verschickt dieselbe Benachrichtigung an mehrere Empfänger, ohne Duplikate und ohne skip.
func NotifyMany(ctx context.Context, repo notification_repo.NotificationRepoContract, recipients []string, skip string, build func(recipientID string) *entity.NotificationEntity) {
	seen := make(map[string]struct{}, len(recipients))
	for _, r := range recipients {
		if r == "" || r == skip {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		Notify(ctx, repo, build(r))
	}
}
