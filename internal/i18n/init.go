package i18n

import (
	"embed"

	"github.com/goccy/go-json"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed en.json de.json
var messageFS embed.FS

type Service interface {
	T(lang string, key string, params map[string]any) string
}

type I18nService struct {
	bundle *i18n.Bundle
}

func NewInitI18nService() *I18nService {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, f := range []string{"en.json", "de.json"} {
		if _, err := bundle.LoadMessageFileFS(messageFS, f); err != nil {
			panic(err)
		}
	}

	return &I18nService{bundle: bundle}
}

// T übersetzt key in lang. Unbekannte Keys werden unverändert zurückgegeben.
func (g *I18nService) T(lang string, key string, params map[string]any) string {
	localizer := i18n.NewLocalizer(g.bundle, lang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	})

	// bei fehlender Übersetzung liefert go-i18n die englische Fassung plus Fehler
	if err != nil && msg == "" {
		return key
	}

	return msg
}
