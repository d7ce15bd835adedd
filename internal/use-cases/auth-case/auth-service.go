package auth_case

import (
	"context"
	"strings"
	"time"

	auth_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/auth-dto"
	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/queue"
	auth_repo "github.com/Xenn-00/aufgaben-team/internal/repo/auth-repo"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultSessionTTL = 24 * time.Hour

type AuthService struct {
	repo       auth_repo.AuthRepoContract
	sessions   SessionStore
	paseto     *utils.PasetoMaker
	taskQueue  queue.TaskQueueClient
	sessionTTL time.Duration
}

func NewAuthService(db *pgxpool.Pool, redis *redis.Client, paseto *utils.PasetoMaker, taskQueue queue.TaskQueueClient, sessionTTL time.Duration) AuthServiceContract {
	return &AuthService{
		repo:       auth_repo.NewAuthRepo(db),
		sessions:   NewRedisSessionStore(redis),
		paseto:     paseto,
		taskQueue:  taskQueue,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) ttl() time.Duration {
	if s.sessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return s.sessionTTL
}

// RegisterUser registriert einen neuen Benutzer und meldet ihn direkt an.
func (s *AuthService) RegisterUser(ctx context.Context, req auth_dto.RegisterUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.AuthResponse, *app_errors.AppError) {
	// Benutzername und E-Mail getrennt prüfen, damit die Fehlermeldung das Feld nennt
	count, err := s.repo.CountUsers(ctx, entity.UserCountFilter{Username: &req.Username})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		log.Debug().Str("username", req.Username).Msg("Username already exists")
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUserExists, "auth.username_exists", nil)
	}

	count, err = s.repo.CountUsers(ctx, entity.UserCountFilter{Email: &req.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUserExists, "auth.email_exists", nil)
	}

	// Passwort hashen
	hashed, hashErr := utils.HashPassword(req.Password)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("An Error occured when trying to generate password hash")
		return nil, app_errors.Internal(hashErr)
	}

	userID, idErr := utils.NewID()
	if idErr != nil {
		log.Error().Err(idErr).Msg("An Error occured when trying to generate uuid v7")
		return nil, app_errors.Internal(idErr)
	}

	// SaveUser fängt parallele Registrierungen über die Unique-Indizes ab
	user, err := s.repo.SaveUser(ctx, entity.UserEntity{
		ID:           userID,
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashed,
		FullName:     req.FullName,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.openSession(ctx, user, loginMeta)
	if err != nil {
		return nil, err
	}

	// Welcome-Mail ist ein Nebeneffekt und darf die Registrierung nicht scheitern lassen
	if s.taskQueue != nil {
		payload := &worker_task.WelcomeEmailPayload{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Username: user.Username,
		}
		if err := s.taskQueue.EnqueueWelcomeEmail(payload); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Welcome-Mail konnte nicht eingereiht werden")
		}
	}

	return resp, nil
}

// LoginUser authentifiziert einen Benutzer anhand von E-Mail oder Benutzername
// und legt eine Session in Redis ab.
func (s *AuthService) LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.AuthResponse, *app_errors.AppError) {
	identifier := strings.TrimSpace(req.Identifier)

	var user *entity.UserEntity
	var err *app_errors.AppError
	if strings.Contains(identifier, "@") {
		user, err = s.repo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.repo.FindByUsername(ctx, identifier)
	}

	if err != nil {
		if err.Code != fiber.StatusNotFound {
			return nil, err
		}
		return nil, invalidCredentials()
	}

	// Passwort überprüfen
	if ok, hashErr := utils.CheckPassword(user.PasswordHash, req.Password); !ok || hashErr != nil {
		log.Debug().Err(hashErr).Str("user_id", user.ID).Msg("Passwort stimmt nicht überein")
		return nil, invalidCredentials()
	}

	return s.openSession(ctx, user, loginMeta)
}

func invalidCredentials() *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrInvalidCredentials, "auth.invalid_credentials", nil)
}

func (s *AuthService) openSession(ctx context.Context, user *entity.UserEntity, loginMeta auth_dto.LoginMetadata) (*auth_dto.AuthResponse, *app_errors.AppError) {
	sessionID, idErr := utils.NewSessionID()
	if idErr != nil {
		log.Error().Err(idErr).Msg("Fehler beim Erzeugen der Session-ID")
		return nil, app_errors.Internal(idErr)
	}

	ttl := s.ttl()
	token, pasetoErr := s.paseto.CreateToken(user.ID, user.Username, user.Email, sessionID, ttl)
	if pasetoErr != nil {
		log.Error().Err(pasetoErr).Msg("Fehler beim Erstellen der Paseto-Token")
		return nil, app_errors.Internal(pasetoErr)
	}

	if loginMeta.Device == "" {
		loginMeta.Device = "Unknown Device"
	}

	now := time.Now()
	session := &SessionTracker{
		JTI:       sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Device:    loginMeta.Device,
		UserAgent: loginMeta.UserAgent,
		IP:        loginMeta.IP,
		LoginAt:   now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.sessions.Save(ctx, session, ttl); err != nil {
		return nil, err
	}

	return &auth_dto.AuthResponse{
		User:      user_dto.FromEntity(user),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// LogoutUser beendet die Sitzung mit der gegebenen JTI.
func (s *AuthService) LogoutUser(ctx context.Context, sessionID string) *app_errors.AppError {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		// Session bereits beendet / ungültig
		return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	return s.sessions.Delete(ctx, session)
}

// ListAllUserDevices ruft alle aktiven Geräte/Sessions eines Benutzers aus Redis ab.
func (s *AuthService) ListAllUserDevices(ctx context.Context, userID, currentSessionID string) ([]auth_dto.DeviceResponse, *app_errors.AppError) {
	sessions, err := s.sessions.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	devices := make([]auth_dto.DeviceResponse, 0, len(sessions))
	for _, session := range sessions {
		devices = append(devices, auth_dto.DeviceResponse{
			SessionID: session.JTI,
			Device:    session.Device,
			IP:        session.IP,
			UserAgent: session.UserAgent,
			LoginAt:   session.LoginAt,
			Current:   session.JTI == currentSessionID,
		})
	}
	return devices, nil
}

// LogoutAllDevices löscht alle aktiven Sessions/Geräte eines Benutzers aus Redis.
func (s *AuthService) LogoutAllDevices(ctx context.Context, userID string) *app_errors.AppError {
	return s.sessions.DeleteAllForUser(ctx, userID)
}
