package utils

import (
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenAudience = "aufgaben-team"
	tokenIssuer   = "AT-service"
)

// PasetoMaker verarbeitet lokale PASETO-Operationen der Version 4 (symmetrisch).
type PasetoMaker struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewPasetoMaker creates instance with existing key
func NewPasetoMaker(keyHex string) (*PasetoMaker, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("Invalid symmetric key: %w", err)
	}

	return &PasetoMaker{
		symmetricKey: key,
	}, nil
}

// GenerateSymmetricKey generiert einen neuen symmetrischen V4-Schlüssel. Wird verwendet, wenn kein hexKey vorhanden ist, nur einmal.
func GenerateSymmetricKey() string {
	key := paseto.NewV4SymmetricKey()
	return hex.EncodeToString(key.ExportBytes())
}

// CreateToken erstellt ein lokales V4 Token (encrypted). sessionID landet als jti im Token und ist der Redis-Schlüssel der Session.
func (m *PasetoMaker) CreateToken(userID, username, email, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	token := paseto.NewToken()

	// Standard Claims festlegen
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetAudience(tokenAudience)
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID)
	token.SetJti(sessionID)

	// Benutzerdefiniert Claims festlegen
	token.SetString("username", username)
	token.SetString("email", email)

	return token.V4Encrypt(m.symmetricKey, nil), nil
}

type PayloadPaseto struct {
	UserID    string
	Username  string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// VerifyToken decrypts und überprüft das lokale V4 Token.
func (m *PasetoMaker) VerifyToken(tokenString string) (*PayloadPaseto, error) {
	parser := paseto.NewParser()

	// Validierungsregeln hinzufügen
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(time.Now()))

	parsedToken, err := parser.ParseV4Local(m.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("Token decryption/verification failed: %w", err)
	}

	userID, err := parsedToken.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("Token ohne Subject: %w", err)
	}
	jti, err := parsedToken.GetJti()
	if err != nil {
		return nil, fmt.Errorf("Token ohne jti: %w", err)
	}
	username, _ := parsedToken.GetString("username")
	email, _ := parsedToken.GetString("email")
	exp, _ := parsedToken.GetExpiration()

	return &PayloadPaseto{
		UserID:    userID,
		Username:  username,
		Email:     email,
		JTI:       jti,
		ExpiresAt: exp,
	}, nil
}
