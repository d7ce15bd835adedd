package notification_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type NotificationRepoContract interface {
	InsertNotification(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError
	ListNotifications(ctx context.Context, filter entity.NotificationListFilter) ([]entity.NotificationEntity, int64, *app_errors.AppError)
	CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError)
	MarkRead(ctx context.Context, recipientID, notificationID string, at time.Time) (*entity.NotificationEntity, *app_errors.AppError)
	MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError)
	DeleteNotification(ctx context.Context, recipientID, notificationID string) *app_errors.AppError
}
