package entity

import "time"

// UserEntity repräsentiert die Benutzerdaten in der Datenbank.
type UserEntity struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FullName       string    `json:"fullname"`
	Bio            *string   `json:"bio,omitempty"`
	AvatarURL      *string   `json:"avatarUrl,omitempty"`
	AvatarPublicID *string   `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserCountFilter repräsentiert die Filterkriterien für die Zählung von Benutzern.
type UserCountFilter struct {
	Email    *string
	Username *string
}

// UserUpdate enthält nur die Felder, die der Benutzer selbst ändern darf. Nil = unverändert.
type UserUpdate struct {
	FullName *string
	Username *string
	Email    *string
	Bio      *string
}

// UserSummary ist die öffentliche Kurzform eines Benutzers (Mitgliederlisten, Einladungen).
type UserSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"fullname"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
