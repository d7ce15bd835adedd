package app_errors

import "net/http"

// AppError repräsentiert einen Anwendungsfehler mit einem Code, einer Nachricht und optional einem Feld.
type AppError struct {
	Code       int            // HTTP status code
	Type       string         // VALIDATION_ERROR, NOT_FOUND, usw
	MessageKey string         // i18n key
	Params     map[string]any // Template-Daten für MessageKey
	Details    []FieldError   // optional (validation)
	Err        error          // original error (internal only)
}

const (
	ErrValidation         = "VALIDATION_ERROR"
	ErrInvalidBody        = "INVALID_BODY"
	ErrInvalidParam       = "INVALID_PARAM"
	ErrInvalidQuery       = "INVALID_QUERY"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrForbidden          = "FORBIDDEN"
	ErrNotFound           = "NOT_FOUND"
	ErrConflict           = "CONFLICT"
	ErrDuplicateKey       = "DUPLICATE_KEY"
	ErrUserExists         = "USER_EXISTS"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrLimitReached       = "LIMIT_REACHED"
	ErrInvitation         = "INVITATION_ERROR"
	ErrTeam               = "TEAM_ERROR"
	ErrProject            = "PROJECT_ERROR"
	ErrTask               = "TASK_ERROR"
	ErrUpload             = "UPLOAD_ERROR"
	ErrRateLimited        = "RATE_LIMITED"
	ErrInternal           = "INTERNAL_ERROR"
)

type FieldError struct {
	Field      string         `json:"field"`
	Reason     string         `json:"reason"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

func NewAppError(code int, errType string, messageKey string, err error) *AppError {
	return &AppError{
		Code:       code,
		Type:       errType,
		MessageKey: messageKey,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Code:       http.StatusBadRequest,
		Type:       ErrValidation,
		MessageKey: "invalid_request",
		Details:    details,
	}
}

// WithParams setzt Template-Daten für die lokalisierte Nachricht.
func (e *AppError) WithParams(params map[string]any) *AppError {
	e.Params = params
	return e
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ErrInternal, "internal_error", err)
}

func Forbidden() *AppError {
	return NewAppError(http.StatusForbidden, ErrForbidden, "forbidden", nil)
}

func NotFound(messageKey string) *AppError {
	return NewAppError(http.StatusNotFound, ErrNotFound, messageKey, nil)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.MessageKey
}

func (e *AppError) Unwrap() error {
	return e.Err
}
