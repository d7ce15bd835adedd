package auth_dto

import (
	"time"

	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
)

// AuthResponse wird nach Registrierung und Anmeldung zurückgegeben. Das Token steckt zusätzlich im Session-Cookie.
type AuthResponse struct {
	User      user_dto.UserResponse `json:"user"`
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
}

type DeviceResponse struct {
	SessionID string    `json:"sessionId"`
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	LoginAt   time.Time `json:"loginAt"`
	Current   bool      `json:"current"`
}
