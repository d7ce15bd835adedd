package entity

import "time"

const InvitationTTL = 30 * 24 * time.Hour

type InvitationEntity struct {
	ID          string           `json:"id"`
	TeamID      string           `json:"teamId"`
	InviterID   string           `json:"inviterId"`
	InviteeID   string           `json:"inviteeId"`
	Role        TeamRole         `json:"role"`
	Status      InvitationStatus `json:"status"`
	Message     *string          `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`
	ExpiresAt   time.Time        `json:"expiresAt"`
}

// InvitationDetail ergänzt eine Einladung um Anzeigenamen für Listen und E-Mails.
type InvitationDetail struct {
	InvitationEntity
	TeamName        string `json:"teamName"`
	InviterUsername string `json:"inviterUsername"`
	InviteeUsername string `json:"inviteeUsername"`
	InviteeEmail    string `json:"-"`
}

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDenied    InvitationStatus = "denied"
	InvitationCancelled InvitationStatus = "cancelled"
)

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDenied, InvitationCancelled:
		return true
	}
	return false
}

// IsExpired prüft die Ablaufzeit gegen now. Abgelaufen ist nur ein berechneter Zustand.
func (i *InvitationEntity) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
