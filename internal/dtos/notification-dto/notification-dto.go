package notification_dto

import "github.com/Xenn-00/aufgaben-team/internal/dtos"

type ParamNotificationID struct {
	ID string `params:"notificationId" validate:"required,uuid"`
}

type ListNotificationsQuery struct {
	dtos.PageQuery
	UnreadOnly bool `query:"unreadOnly"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
	Unread  int64 `json:"unread"`
}
