package notification_case

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/dtos"
	notification_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/notification-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

type NotificationService struct {
	repo notification_repo.NotificationRepoContract
}

func NewNotificationService(mdb *mongo.Database) NotificationServiceContract {
	return &NotificationService{repo: notification_repo.NewNotificationRepo(mdb)}
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID string, query notification_dto.ListNotificationsQuery) (*dtos.Paged[entity.NotificationEntity], *app_errors.AppError) {
	page, limit, offset := query.Clamp(defaultPageSize, maxPageSize)

	items, total, err := s.repo.ListNotifications(ctx, entity.NotificationListFilter{
		RecipientID: userID,
		UnreadOnly:  query.UnreadOnly,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.NotificationEntity{}
	}

	return &dtos.Paged[entity.NotificationEntity]{
		Items:      items,
		Pagination: dtos.NewPaginationMeta(page, limit, int(total)),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (*notification_dto.UnreadCountResponse, *app_errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &notification_dto.UnreadCountResponse{Count: count}, nil
}

// MarkRead ist idempotent, readAt bleibt beim ersten Lesen stehen.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*entity.NotificationEntity, *app_errors.AppError) {
	return s.repo.MarkRead(ctx, userID, notificationID, time.Now())
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (*notification_dto.MarkAllReadResponse, *app_errors.AppError) {
	updated, err := s.repo.MarkAllRead(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &notification_dto.MarkAllReadResponse{Updated: updated, Unread: unread}, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notificationID string) *app_errors.AppError {
	return s.repo.DeleteNotification(ctx, userID, notificationID)
}
