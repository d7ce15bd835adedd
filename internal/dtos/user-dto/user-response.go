package user_dto

import (
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

// UserResponse ist die bereinigte Sicht auf einen Benutzer (ohne Passwort-Hash).
// Email und Stats werden nur für den Benutzer selbst bzw. Teamkollegen gesetzt.
type UserResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	FullName  string           `json:"fullname"`
	Email     string           `json:"email,omitempty"`
	Bio       *string          `json:"bio,omitempty"`
	AvatarURL *string          `json:"avatarUrl,omitempty"`
	Stats     *stats.UserStats `json:"stats,omitempty"`
	CreatedAt time.Time        `json:"createdAt,omitzero"`
	UpdatedAt time.Time        `json:"updatedAt,omitzero"`
}

func FromEntity(u *entity.UserEntity) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicFromEntity lässt Email und Zeitstempel weg.
func PublicFromEntity(u *entity.UserEntity) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}

type AvatarResponse struct {
	AvatarURL *string `json:"avatarUrl"`
}
