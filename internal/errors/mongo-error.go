package app_errors

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

func MapMongoError(err error, notFoundKey string) *AppError {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(notFoundKey)
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewAppError(http.StatusConflict, ErrDuplicateKey, "conflict.duplicate_key", err)
	}
	return Internal(err)
}
