package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdesk/backend/internal/config"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/pkg/utils/crypto"
	"github.com/taskdesk/backend/pkg/utils/keygen"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	tokenIssuer      = "taskdesk"
	stateCookieTTL   = 10 * time.Minute
	statePurpose     = "oauth-state"
	defaultTokenTTL  = 24 * time.Hour
	generatedKeySize = 32
)

type sessionClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

type authService struct {
	secret   []byte
	stateKey string
	ttl      time.Duration
	oauth    *oauth2.Config
	clock    ports.Clock
	logger   *logger.Logger
}

type AuthServiceConfig struct {
	JWTSecret     string
	EncryptionKey string
	TokenTTL      time.Duration
	Google        config.GoogleConfig
	// Endpoint overrides Google's OAuth endpoints.
	Endpoint *oauth2.Endpoint
	Clock    ports.Clock
	Logger   *logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (ports.AuthService, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := keygen.GenerateSecret(generatedKeySize)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = generated
		cfg.Logger.Warnw("auth_jwt_secret_generated", "hint", "set auth.jwt_secret to keep sessions across restarts")
	}

	stateKey := cfg.EncryptionKey
	if stateKey == "" {
		stateKey = secret
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	s := &authService{
		secret:   []byte(secret),
		stateKey: stateKey,
		ttl:      ttl,
		clock:    clock,
		logger:   cfg.Logger,
	}

	if cfg.Google.Enabled() {
		endpoint := google.Endpoint
		if cfg.Endpoint != nil {
			endpoint = *cfg.Endpoint
		}
		s.oauth = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		}
	}
	return s, nil
}

func (s *authService) DemoLogin(ctx context.Context) (*ports.Session, error) {
	session, err := s.issue(domain.DemoUser)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("auth_demo_login_ok", "user", session.User.Email, "request_id", RequestID(ctx))
	return session, nil
}

func (s *authService) issue(user domain.User) (*ports.Session, error) {
	now := s.clock.Now()
	expires := now.Add(s.ttl)

	claims := sessionClaims{
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &ports.Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// Authenticate verifies a session token and returns the user it names.
func (s *authService) Authenticate(token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return &domain.User{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}

func (s *authService) GoogleEnabled() bool {
	return s.oauth != nil
}

// GoogleLoginURL returns the consent page URL and the sealed state value the
// caller must hand back to GoogleCallback, normally through a cookie.
func (s *authService) GoogleLoginURL() (string, string, error) {
	if s.oauth == nil {
		return "", "", ErrGoogleDisabled
	}

	state, err := keygen.GenerateSecret(16)
	if err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	expires := s.clock.Now().Add(stateCookieTTL).Unix()
	payload := state + "." + strconv.FormatInt(expires, 10)

	sealed, err := crypto.Seal([]byte(payload), s.stateKey, statePurpose)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), sealed, nil
}

// GoogleCallback checks the returned state against the sealed cookie and
// exchanges the code. The Google identity is not inspected: every successful
// sign-in becomes the demo user.
func (s *authService) GoogleCallback(ctx context.Context, state, stateCookie, code string) (*ports.Session, error) {
	if s.oauth == nil {
		return nil, ErrGoogleDisabled
	}
	if err := s.checkState(state, stateCookie); err != nil {
		s.logger.Warnw("auth_google_state_rejected", "error", err, "request_id", RequestID(ctx))
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrCodeExchange)
	}

	if _, err := s.oauth.Exchange(ctx, code); err != nil {
		s.logger.Warnw("auth_google_exchange_failed", "error", err, "request_id", RequestID(ctx))
		return nil, fmt.Errorf("%w: %v", ErrCodeExchange, err)
	}

	session, err := s.issue(domain.DemoUser)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("auth_google_login_ok", "user", session.User.Email, "request_id", RequestID(ctx))
	return session, nil
}

func (s *authService) checkState(state, stateCookie string) error {
	if state == "" || stateCookie == "" {
		return ErrInvalidState
	}

	plain, err := crypto.Open(stateCookie, s.stateKey, statePurpose)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKey) {
			return fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
		}
		return ErrInvalidState
	}

	want, expiry, ok := strings.Cut(string(plain), ".")
	if !ok || want != state {
		return ErrInvalidState
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil || s.clock.Now().After(time.Unix(unix, 0)) {
		return ErrInvalidState
	}
	return nil
}
