package app_errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

func TestParseValidationError_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(sampleRequest{Username: "ab", Email: "nope"})
	require.Error(t, err)

	details := ParseValidationError(err)
	require.Len(t, details, 3)

	assert.Equal(t, "fullname", details[0].Field)
	assert.Equal(t, "validation.required", details[0].MessageKey)
	assert.Equal(t, "username", details[1].Field)
	assert.Equal(t, "validation.min", details[1].MessageKey)
	assert.Equal(t, map[string]any{"min": "3"}, details[1].Params)
	assert.Equal(t, "email", details[2].Field)
	assert.Equal(t, "validation.email", details[2].MessageKey)
}

func TestParseValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, ParseValidationError(errors.New("boom")))
}
