package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/taskdesk/backend/internal/config"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"golang.org/x/oauth2"
)

type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time { return c.now }

func newAuth(t *testing.T, clock ports.Clock, google config.GoogleConfig, endpoint *oauth2.Endpoint) ports.AuthService {
	t.Helper()
	svc, err := NewAuthService(AuthServiceConfig{
		JWTSecret:     "test-secret",
		EncryptionKey: "test-encryption-key",
		TokenTTL:      time.Hour,
		Google:        google,
		Endpoint:      endpoint,
		Clock:         clock,
		Logger:        logger.NewNop(),
	})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestDemoLoginIssuesVerifiableToken(t *testing.T) {
	clock := &movableClock{now: time.Now()}
	svc := newAuth(t, clock, config.GoogleConfig{}, nil)

	session, err := svc.DemoLogin(context.Background())
	if err != nil {
		t.Fatalf("demo login failed: %v", err)
	}
	if session.User != domain.DemoUser {
		t.Fatalf("expected demo user, got %+v", session.User)
	}
	if !session.ExpiresAt.Equal(clock.now.Add(time.Hour)) {
		t.Fatalf("expected expiry in one hour, got %s", session.ExpiresAt)
	}

	user, err := svc.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if *user != domain.DemoUser {
		t.Fatalf("expected demo user from token, got %+v", user)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	clock := &movableClock{now: time.Now()}
	svc := newAuth(t, clock, config.GoogleConfig{}, nil)
	session, _ := svc.DemoLogin(context.Background())

	other := newAuth(t, clock, config.GoogleConfig{}, nil)
	otherSvc := other.(*authService)
	otherSvc.secret = []byte("different")
	foreign, _ := other.DemoLogin(context.Background())

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"wrong secret": foreign.Token,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Authenticate(token); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	clock.now = clock.now.Add(2 * time.Hour)
	if _, err := svc.Authenticate(session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestGoogleDisabledWithoutCredentials(t *testing.T) {
	svc := newAuth(t, SystemClock{}, config.GoogleConfig{}, nil)
	if svc.GoogleEnabled() {
		t.Fatal("expected google to be disabled")
	}
	if _, _, err := svc.GoogleLoginURL(); !errors.Is(err, ErrGoogleDisabled) {
		t.Fatalf("expected ErrGoogleDisabled, got %v", err)
	}
}

func TestGoogleLoginAndCallback(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.FormValue("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	clock := &movableClock{now: time.Now()}
	google := config.GoogleConfig{ClientID: "cid", ClientSecret: "csecret", RedirectURL: "http://localhost/callback"}
	endpoint := &oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth", TokenURL: tokenServer.URL}
	svc := newAuth(t, clock, google, endpoint)

	loginURL, cookie, err := svc.GoogleLoginURL()
	if err != nil {
		t.Fatalf("login url failed: %v", err)
	}
	parsed, err := url.Parse(loginURL)
	if err != nil {
		t.Fatalf("invalid login url: %v", err)
	}
	state := parsed.Query().Get("state")
	if state == "" || parsed.Query().Get("client_id") != "cid" {
		t.Fatalf("unexpected login url %s", loginURL)
	}

	ctx := context.Background()
	if _, err := svc.GoogleCallback(ctx, "forged", cookie, "good-code"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for forged state, got %v", err)
	}
	if _, err := svc.GoogleCallback(ctx, state, cookie, "bad-code"); !errors.Is(err, ErrCodeExchange) {
		t.Fatalf("expected ErrCodeExchange, got %v", err)
	}

	session, err := svc.GoogleCallback(ctx, state, cookie, "good-code")
	if err != nil {
		t.Fatalf("callback failed: %v", err)
	}
	if session.User != domain.DemoUser {
		t.Fatalf("expected demo user, got %+v", session.User)
	}

	clock.now = clock.now.Add(stateCookieTTL + time.Second)
	if _, err := svc.GoogleCallback(ctx, state, cookie, "good-code"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected expired state to be rejected, got %v", err)
	}
}
