package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// Reihenfolge = Fallback: der erste Eintrag gilt, wenn nichts passt.
var supportedLanguages = []language.Tag{language.English, language.German}

var langMatcher = language.NewMatcher(supportedLanguages)

// AcceptLanguageMiddleware legt die passende Sprache (en|de) als c.Locals("lang") ab.
// ?lang= hat Vorrang vor dem Header.
func AcceptLanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("lang", matchLanguage(c.Query("lang"), c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

func matchLanguage(candidates ...string) string {
	for _, raw := range candidates {
		if raw == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(raw)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := langMatcher.Match(tags...)
		if conf == language.No {
			continue
		}
		base, _ := supportedLanguages[idx].Base()
		return base.String()
	}
	return "en"
}
