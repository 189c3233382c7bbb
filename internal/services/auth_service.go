package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/utils"
	"gorm.io/gorm"
)

// Principal is the authenticated caller
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// SessionVerifier turns a bearer token or session cookie into a Principal
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// Claims are the JWT claims issued for local accounts
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for the user
func IssueToken(user *models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expires := now.Add(ttl)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies signature and expiry and returns the claims
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// JWTVerifier validates locally issued tokens. The role is read from the users
// table so role changes apply to live sessions.
type JWTVerifier struct {
	DB     *gorm.DB
	Secret string
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	claims, err := ParseToken(token, v.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	user, err := GetUser(ctx, v.DB, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
		}
		return nil, err
	}
	return &Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

var (
	authClient *authorizer.AuthorizerClient
	authMu     sync.Mutex
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	authMu.Lock()
	defer authMu.Unlock()
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client. A failed attempt is
// retried on the next call.
func InitAuthorizer(ctx context.Context, cfg *config.Config, redirectURL string) error {
	authMu.Lock()
	defer authMu.Unlock()
	if authClient != nil {
		return nil
	}

	if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
		return fmt.Errorf("authorizer ping failed: %w", err)
	}

	slog.InfoContext(ctx, "initializing authorizer", "url", cfg.AuthzURL, "clientId", cfg.AuthzClientID, "redirectUrl", redirectURL)

	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create authorizer client: %w", err)
	}
	authClient = client
	return nil
}

// AuthorizerVerifier validates Authorizer session cookies and mirrors the
// identity into the local users table
type AuthorizerVerifier struct {
	DB          *gorm.DB
	Config      *config.Config
	RedirectURL string
}

func (v *AuthorizerVerifier) Verify(ctx context.Context, cookie string) (*Principal, error) {
	if err := InitAuthorizer(ctx, v.Config, v.RedirectURL); err != nil {
		return nil, err
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("%w: session is not valid", ErrUnauthenticated)
	}

	user, err := UpsertExternalUser(ctx, v.DB, res.User.ID, res.User.Email, "")
	if err != nil {
		return nil, err
	}
	return &Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// NewSessionVerifier picks the verifier for AUTH_PROVIDER
func NewSessionVerifier(cfg *config.Config, db *gorm.DB) SessionVerifier {
	if cfg.AuthProvider == "authorizer" {
		return &AuthorizerVerifier{DB: db, Config: cfg, RedirectURL: cfg.PublicURL}
	}
	return &JWTVerifier{DB: db, Secret: cfg.JWTSecret}
}
