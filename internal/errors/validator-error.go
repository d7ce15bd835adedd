package app_errors

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator erstellt einen Validator, der Feldnamen aus dem json-Tag meldet.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "params", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

func ParseValidationError(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	var out []FieldError
	for _, fe := range ve {
		msgKey, params := validationMessageKey(fe)

		out = append(out, FieldError{
			Field:      fe.Field(),
			Reason:     fe.Tag(),
			MessageKey: msgKey,
			Params:     params,
		})
	}

	return out
}

func validationMessageKey(fe validator.FieldError) (string, map[string]any) {
	switch fe.Tag() {
	case "required", "required_without":
		return "validation.required", nil
	case "min":
		return "validation.min", map[string]any{
			"min": fe.Param(),
		}
	case "max":
		return "validation.max", map[string]any{
			"max": fe.Param(),
		}
	case "email":
		return "validation.email", nil
	case "uuid", "uuid4", "uuid7":
		return "validation.uuid", nil
	case "hexcolor":
		return "validation.hexcolor", nil
	case "alphanum":
		return "validation.alphanum", nil
	case "gtfield":
		return "validation.after", map[string]any{
			"other": fe.Param(),
		}
	case "taskStatus", "taskPriority", "teamRole", "projectRole", "projectStatus",
		"visibility", "invitePolicy", "recurrencePattern", "invitationStatus":
		return "validation.enum", map[string]any{
			"field": fe.Field(),
		}
	default:
		return "validation.invalid", nil
	}
}
