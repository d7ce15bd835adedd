package notification_case

import (
	"context"

	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	notification_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/notification-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type NotificationServiceContract interface {
	ListNotifications(ctx context.Context, userID string, query notification_dto.ListNotificationsQuery) (*dtos.Paged[entity.NotificationEntity], *app_errors.AppError)
	UnreadCount(ctx context.Context, userID string) (*notification_dto.UnreadCountResponse, *app_errors.AppError)
	MarkRead(ctx context.Context, userID, notificationID string) (*entity.NotificationEntity, *app_errors.AppError)
	MarkAllRead(ctx context.Context, userID string) (*notification_dto.MarkAllReadResponse, *app_errors.AppError)
	DeleteNotification(ctx context.Context, userID, notificationID string) *app_errors.AppError
}
