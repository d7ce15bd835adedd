package entity

import "time"

const NotificationTTL = 30 * 24 * time.Hour

type NotificationEntity struct {
	ID          string           `bson:"_id" json:"id"`
	RecipientID string           `bson:"recipientId" json:"recipientId"`
	Type        NotificationType `bson:"type" json:"type"`
	Title       string           `bson:"title" json:"title"`
	Message     string           `bson:"message" json:"message"`
	Data        map[string]any   `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool             `bson:"read" json:"read"`
	ReadAt      *time.Time       `bson:"readAt,omitempty" json:"readAt,omitempty"`
	ExpiresAt   time.Time        `bson:"expiresAt" json:"expiresAt"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
}

type NotificationType string

const (
	NotifyTeamInvitation       NotificationType = "team_invitation"
	NotifyInvitationAccepted   NotificationType = "invitation_accepted"
	NotifyInvitationDenied     NotificationType = "invitation_denied"
	NotifyMemberAdded          NotificationType = "member_added"
	NotifyMemberRemoved        NotificationType = "member_removed"
	NotifyRoleChanged          NotificationType = "role_changed"
	NotifyOwnershipTransferred NotificationType = "ownership_transferred"
	NotifyProjectAdded         NotificationType = "project_added"
	NotifyTaskAssigned         NotificationType = "task_assigned"
	NotifyTaskOverdue          NotificationType = "task_overdue"
	NotifyAchievementUnlocked  NotificationType = "achievement_unlocked"
)

type NotificationListFilter struct {
	RecipientID string
	UnreadOnly  bool
	Limit       int
	Offset      int
}
