package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword erzeugt einen bcrypt-Hash mit Standardkosten.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword meldet (false, nil) bei falschem Passwort und einen Fehler nur bei kaputtem Hash.
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
