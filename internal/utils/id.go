package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewID liefert eine zeitlich sortierbare UUIDv7.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewInviteCode erzeugt einen 8-stelligen Team-Einladungscode ohne verwechselbare Zeichen.
func NewInviteCode() (string, error) {
	return gonanoid.Generate(inviteCodeAlphabet, 8)
}

// NewSessionID wird als jti und Redis-Schlüssel der Session verwendet.
func NewSessionID() (string, error) {
	return gonanoid.New(32)
}
