package mail

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(url string, attempts int) *MailService {
	return &MailService{
		apiURL:         url,
		apiKey:         "key",
		fromAddress:    "no-reply@example.com",
		fromName:       "Aufgaben Team",
		maxAttempts:    attempts,
		initialBackoff: time.Millisecond,
		client:         &http.Client{Timeout: time.Second},
	}
}

func TestSend_RetriesUntilSuccess(t *testing.T) {
	var hits atomic.Int32
	var lastBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &lastBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL, 3)
	err := m.SendWelcome(context.Background(), WelcomeMail{
		To: "jane@x.com", FullName: "Jane Doe", Username: "janedoe", ClientURL: "http://localhost:5173",
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, "Welcome to Aufgaben Team, Jane Doe!", lastBody["subject"])
	assert.Contains(t, lastBody["html"], "@janedoe")
}

func TestSend_ReturnsLastErrorAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL, 2)
	err := m.SendTeamInvitation(context.Background(), TeamInvitationMail{
		To: "bob@x.com", InviterUsername: "jane", TeamName: "Core", Role: "member", ExpiresAt: time.Now(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
	assert.Equal(t, int32(2), hits.Load())
}

func TestSend_StopsOnCancelledContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL, 5)
	m.initialBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.SendWelcome(ctx, WelcomeMail{To: "jane@x.com"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), hits.Load())
}

func TestTeamInvitationTemplate_EscapesMessage(t *testing.T) {
	html, err := render(teamInvitationTemplate, TeamInvitationMail{
		InviterUsername: "jane",
		TeamName:        "Core",
		Role:            "admin",
		Message:         "<script>alert(1)</script>",
		ExpiresAt:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Link:            "http://localhost:5173/invitations",
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "01 Mar 2026")
	assert.Contains(t, html, "Hi there")
}
