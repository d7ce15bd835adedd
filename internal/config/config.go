package config

import (
	"errors"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	APP struct {
		Name      string `mapstructure:"NAME"`
		Port      string `mapstructure:"PORT"`
		State     string `mapstructure:"STATE"`
		LogLevel  string `mapstructure:"LOG_LEVEL"`
		ClientURL string `mapstructure:"CLIENT_URL"`
		Timezone  string `mapstructure:"TIMEZONE"`
	}

	DATABASE struct {
		Postgres struct {
			DSN      string `mapstructure:"DSN"`
			Migrate  bool   `mapstructure:"MIGRATE"`
			MaxConns int32  `mapstructure:"MAX_CONNS"`
			MinConns int32  `mapstructure:"MIN_CONNS"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
			DB       int    `mapstructure:"DB"`
			PoolSize int    `mapstructure:"POOL_SIZE"`
		}
		Mongo struct {
			URI      string `mapstructure:"URI"`
			Database string `mapstructure:"DATABASE"`
		}
	}

	APP_SECRET struct {
		Paseto struct {
			HexKey string `mapstructure:"HEX_KEY"`
		}
	}

	SESSION struct {
		TTL        time.Duration `mapstructure:"TTL"`
		CookieName string        `mapstructure:"COOKIE_NAME"`
		Secure     bool          `mapstructure:"SECURE"`
	}

	CORS struct {
		AllowOrigins     string `mapstructure:"ALLOW_ORIGINS"`
		AllowCredentials bool   `mapstructure:"ALLOW_CREDENTIALS"`
	}

	RATE_LIMIT struct {
		General int           `mapstructure:"GENERAL"`
		Auth    int           `mapstructure:"AUTH"`
		User    int           `mapstructure:"USER"`
		Window  time.Duration `mapstructure:"WINDOW"`
	}

	MEDIA struct {
		Cloudinary struct {
			CloudName string `mapstructure:"CLOUD_NAME"`
			APIKey    string `mapstructure:"API_KEY"`
			APISecret string `mapstructure:"API_SECRET"`
			Folder    string `mapstructure:"FOLDER"`
		}
	}

	MAIL struct {
		APIURL         string        `mapstructure:"API_URL"`
		APIKey         string        `mapstructure:"API_KEY"`
		FromAddress    string        `mapstructure:"FROM_ADDRESS"`
		FromName       string        `mapstructure:"FROM_NAME"`
		MaxAttempts    int           `mapstructure:"MAX_ATTEMPTS"`
		InitialBackoff time.Duration `mapstructure:"INITIAL_BACKOFF"`
	}

	JOBS struct {
		MaterializeFailed bool `mapstructure:"MATERIALIZE_FAILED"`
	}
}

var defaults = map[string]any{
	"APP.NAME":                    "aufgaben-team",
	"APP.PORT":                    "8080",
	"APP.STATE":                   "dev",
	"APP.LOG_LEVEL":               "debug",
	"APP.CLIENT_URL":              "http://localhost:5173",
	"APP.TIMEZONE":                "Local",
	"DATABASE.POSTGRES.DSN":       "",
	"DATABASE.POSTGRES.MIGRATE":   true,
	"DATABASE.POSTGRES.MAX_CONNS": 20,
	"DATABASE.POSTGRES.MIN_CONNS": 2,
	"DATABASE.REDIS.ADDR":         "localhost:6379",
	"DATABASE.REDIS.PASSWORD":     "",
	"DATABASE.REDIS.DB":           0,
	"DATABASE.REDIS.POOL_SIZE":    20,
	"DATABASE.MONGO.URI":          "mongodb://localhost:27017",
	"DATABASE.MONGO.DATABASE":     "aufgaben_team",
	"APP_SECRET.PASETO.HEX_KEY":   "",
	"SESSION.TTL":                 24 * time.Hour,
	"SESSION.COOKIE_NAME":         "aufgaben_session",
	"SESSION.SECURE":              false,
	"CORS.ALLOW_ORIGINS":          "*",
	"CORS.ALLOW_CREDENTIALS":      false,
	"RATE_LIMIT.GENERAL":          300,
	"RATE_LIMIT.AUTH":             20,
	"RATE_LIMIT.USER":             120,
	"RATE_LIMIT.WINDOW":           15 * time.Minute,
	"MEDIA.CLOUDINARY.CLOUD_NAME": "",
	"MEDIA.CLOUDINARY.API_KEY":    "",
	"MEDIA.CLOUDINARY.API_SECRET": "",
	"MEDIA.CLOUDINARY.FOLDER":     "aufgaben-team/avatars",
	"MAIL.API_URL":                "",
	"MAIL.API_KEY":                "",
	"MAIL.FROM_ADDRESS":           "no-reply@aufgaben-team.local",
	"MAIL.FROM_NAME":              "Aufgaben Team",
	"MAIL.MAX_ATTEMPTS":           3,
	"MAIL.INITIAL_BACKOFF":        time.Second,
	"JOBS.MATERIALIZE_FAILED":     false,
}

// LoadConfig liest application.yaml (optional) und überschreibt mit Umgebungsvariablen (APP_PORT, DATABASE_POSTGRES_DSN, ...).
func LoadConfig() *AppConfig {
	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Error().Err(err).Msg("Fehler beim Lesen der Konfigurationsdatei")
			return nil
		}
		log.Warn().Msg("application.yaml nicht gefunden, nur Umgebungsvariablen werden verwendet")
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Fehler beim Entpacken der Konfiguration")
		return nil
	}

	if config.DATABASE.Postgres.DSN == "" {
		log.Error().Msg("Datenbank-DSN ist nicht konfiguriert")
		return nil
	}

	if config.APP_SECRET.Paseto.HexKey == "" {
		config.APP_SECRET.Paseto.HexKey = utils.GenerateSymmetricKey()
		log.Warn().Msg("Kein Paseto-Schlüssel konfiguriert, flüchtiger Schlüssel generiert. Sessions überleben keinen Neustart.")
	}

	if config.MAIL.MaxAttempts < 1 {
		config.MAIL.MaxAttempts = 1
	}

	log.Info().Msg("Konfiguration geladen...")
	return &config
}

// Location liefert die Zeitzone für Kalendertage (Streaks).
func (c *AppConfig) Location() *time.Location {
	if c.APP.Timezone == "" || c.APP.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.APP.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.APP.Timezone).Msg("Unbekannte Zeitzone, verwende Local")
		return time.Local
	}
	return loc
}

func (c *AppConfig) IsProd() bool {
	return c.APP.State == "prod"
}
