package auth_case

import "time"

type SessionTracker struct {
	JTI       string    `json:"jti"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Device    string    `json:"device"`
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
