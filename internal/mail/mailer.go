package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/config"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type Mailer interface {
	SendWelcome(ctx context.Context, m WelcomeMail) error
	SendTeamInvitation(ctx context.Context, m TeamInvitationMail) error
}

type WelcomeMail struct {
	To        string
	FullName  string
	Username  string
	ClientURL string
}

type TeamInvitationMail struct {
	To              string
	InviteeUsername string
	InviterUsername string
	TeamName        string
	Role            string
	Message         string
	ExpiresAt       time.Time
	Link            string
}

// MailService schickt Mails über eine HTTP-API im Mailtrap-Format.
type MailService struct {
	apiURL         string
	apiKey         string
	fromAddress    string
	fromName       string
	maxAttempts    int
	initialBackoff time.Duration
	client         *http.Client
}

func NewMailer(cfg *config.AppConfig) Mailer {
	if cfg.MAIL.APIURL == "" {
		log.Warn().Msg("MAIL.API_URL ist leer, Mails werden nur geloggt")
		return &LogMailer{}
	}

	return &MailService{
		apiURL:         cfg.MAIL.APIURL,
		apiKey:         cfg.MAIL.APIKey,
		fromAddress:    cfg.MAIL.FromAddress,
		fromName:       cfg.MAIL.FromName,
		maxAttempts:    cfg.MAIL.MaxAttempts,
		initialBackoff: cfg.MAIL.InitialBackoff,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *MailService) SendWelcome(ctx context.Context, w WelcomeMail) error {
	html, err := render(welcomeTemplate, w)
	if err != nil {
		return err
	}
	return m.send(ctx, w.To, fmt.Sprintf("Welcome to Aufgaben Team, %s!", w.FullName), html, "Welcome")
}

func (m *MailService) SendTeamInvitation(ctx context.Context, inv TeamInvitationMail) error {
	html, err := render(teamInvitationTemplate, inv)
	if err != nil {
		return err
	}
	return m.send(ctx, inv.To, fmt.Sprintf("%s invited you to join %s", inv.InviterUsername, inv.TeamName), html, "Team Invitation")
}

// send versucht die Zustellung bis zu maxAttempts mal, die Wartezeit verdoppelt sich jedes Mal.
// Zurückgegeben wird der letzte Fehler.
func (m *MailService) send(ctx context.Context, to, subject, html, category string) error {
	body, err := json.Marshal(map[string]any{
		"from": map[string]string{
			"email": m.fromAddress,
			"name":  m.fromName,
		},
		"to": []map[string]string{
			{"email": to},
		},
		"subject":  subject,
		"html":     html,
		"category": category,
	})
	if err != nil {
		return err
	}

	attempts := max(m.maxAttempts, 1)
	backoff := m.initialBackoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = m.post(ctx, body)
		if lastErr == nil {
			return nil
		}

		log.Warn().Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Str("category", category).
			Msg("Mailer: Zustellung fehlgeschlagen")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("mail nach %d Versuchen nicht zugestellt: %w", attempts, lastErr)
}

func (m *MailService) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail api send failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	return nil
}

// LogMailer wird ohne konfigurierte Mail-API verwendet (lokale Entwicklung).
type LogMailer struct{}

func (LogMailer) SendWelcome(ctx context.Context, w WelcomeMail) error {
	log.Info().Str("to", w.To).Str("username", w.Username).Msg("Mailer (log): Welcome-Mail")
	return nil
}

func (LogMailer) SendTeamInvitation(ctx context.Context, inv TeamInvitationMail) error {
	log.Info().Str("to", inv.To).Str("team", inv.TeamName).Str("link", inv.Link).Msg("Mailer (log): Team-Einladung")
	return nil
}
