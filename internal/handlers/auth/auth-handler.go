package auth_handlers

import (
	"time"

	auth_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/auth-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/handlers"
	internal_i18n "github.com/Xenn-00/aufgaben-team/internal/i18n"
	auth_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/auth-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CookieConfig beschreibt das Session-Cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	validator *validator.Validate
	service   auth_case.AuthServiceContract
	i18n      internal_i18n.Service
	cookie    CookieConfig
}

func NewAuthHandler(service auth_case.AuthServiceContract, i18n internal_i18n.Service, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
		cookie:    cookie,
	}
}

func loginMetadata(c *fiber.Ctx) auth_dto.LoginMetadata {
	ua := c.Get("User-Agent")
	if ua == "" {
		ua = "Unknown-Client"
	}

	device := c.Get("X-Device-Name")
	if device == "" {
		device = deviceLabel(ua)
	}

	return auth_dto.LoginMetadata{UserAgent: ua, Device: device, IP: c.IP()}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RegisterUser behandelt die Registrierung eines neuen Benutzers.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	// 1. Anfrage parsen und validieren
	req, err := handlers.ParseBody[auth_dto.RegisterUserRequest](c, h.validator)
	if err != nil {
		return err
	}

	// 2. Service aufrufen
	resp, err := h.service.RegisterUser(c.Context(), *req, loginMetadata(c))
	if err != nil {
		return err
	}

	// 3. Cookie setzen, Antwort zurückgeben
	h.setSessionCookie(c, resp.Token, resp.ExpiresAt)
	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_register", resp)
}

// LoginUser behandelt die Anmeldung mit Benutzername oder E-Mail.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	req, err := handlers.ParseBody[auth_dto.LoginUserRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.LoginUser(c.Context(), *req, loginMetadata(c))
	if err != nil {
		return err
	}

	h.setSessionCookie(c, resp.Token, resp.ExpiresAt)
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_login", resp)
}

// LogoutUser beendet die aktuelle Sitzung. Die JTI kommt aus der Auth-Middleware.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	jti, ok := c.Locals("jti").(string)
	if !ok || jti == "" {
		return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	if err := h.service.LogoutUser(c.Context(), jti); err != nil {
		return err
	}

	c.ClearCookie(h.cookie.Name)
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_logout", "OK")
}

// ListSessions listet alle aktiven Geräte des Benutzers, die aktuelle Sitzung ist markiert.
func (h *AuthHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	jti, _ := c.Locals("jti").(string)

	devices, err := h.service.ListAllUserDevices(c.Context(), userID, jti)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_device", devices)
}

func (h *AuthHandler) LogoutAllDevices(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.LogoutAllDevices(c.Context(), userID); err != nil {
		return err
	}

	c.ClearCookie(h.cookie.Name)
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_logout_all", "OK")
}
