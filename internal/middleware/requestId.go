package middleware

import (
	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	requestIDPrefix   = "AT-"
	requestIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	requestIDLength   = 16
	maxIncomingIDLen  = 64
)

// RequestIDMiddleware übernimmt eine X-Request-ID vom Proxy, sofern sie harmlos ist,
// sonst wird eine neue erzeugt. Die ID landet in Locals, Response-Header und Logs.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if !acceptableRequestID(requestID) {
			id, err := gonanoid.Generate(requestIDAlphabet, requestIDLength)
			if err != nil {
				return err
			}
			requestID = requestIDPrefix + id
		}

		c.Locals("request_id", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		return c.Next()
	}
}

// nur druckbares ASCII ohne Leerzeichen, damit nichts Fremdes in Logzeilen landet
func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxIncomingIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
