package middleware

import (
	"context"
	"slices"
	"strings"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	auth_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/auth-case"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func unauthorized(err error) *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", err)
}

// sessionTokens liefert die Kandidaten in Prüfreihenfolge: Session-Cookie, dann "Authorization: Bearer <token>".
func sessionTokens(c *fiber.Ctx, cookieName string) []string {
	var tokens []string
	if token := c.Cookies(cookieName); token != "" {
		tokens = append(tokens, token)
	}

	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" && !slices.Contains(tokens, token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// resolveSession prüft ein Token samt Session. Liefert (nil, nil), wenn das Token nicht taugt;
// ein Fehler bedeutet, dass der Session-Store selbst nicht antwortet.
func resolveSession(ctx context.Context, pasetoMaker *utils.PasetoMaker, sessions auth_case.SessionStore, token string) (*utils.PayloadPaseto, *app_errors.AppError) {
	payload, err := pasetoMaker.VerifyToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("Token-Verifizierung fehlgeschlagen")
		return nil, nil
	}

	// Logout löscht die Session, das Token selbst bleibt bis ExpiresAt gültig.
	session, appErr := sessions.Get(ctx, payload.JTI)
	if appErr != nil {
		return nil, appErr
	}
	if session == nil || session.UserID != payload.UserID {
		return nil, nil
	}
	return payload, nil
}

// AuthMiddleware verifiziert das PASETO-Token und prüft, ob die Session im Store noch existiert.
// Ein veraltetes Cookie verdeckt kein gültiges Bearer-Token.
// Bei Erfolg stehen "user_id", "username", "email" und "jti" in c.Locals.
func AuthMiddleware(pasetoMaker *utils.PasetoMaker, sessions auth_case.SessionStore, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, token := range sessionTokens(c, cookieName) {
			payload, appErr := resolveSession(c.Context(), pasetoMaker, sessions, token)
			if appErr != nil {
				return appErr
			}
			if payload == nil {
				continue
			}

			c.Locals("user_id", payload.UserID)
			c.Locals("username", payload.Username)
			c.Locals("email", payload.Email)
			c.Locals("jti", payload.JTI)

			return c.Next()
		}

		return unauthorized(nil)
	}
}
