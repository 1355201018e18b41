package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/shared/biztime"
	"github.com/lyceum-io/lyceum/internal/shared/config"
	"github.com/lyceum-io/lyceum/internal/shared/errors"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the token payload. Access tokens carry the full identity;
// refresh tokens only id, username and type.
type Claims struct {
	UserID    uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      user.Role `json:"role,omitempty"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies access and refresh tokens. It is pure: no
// I/O, no state beyond the configured secrets. Each token class has its own
// secret and lifetime, and both are bound to the configured issuer/audience
// pair.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec builds a codec from validated configuration. Missing secrets
// are rejected here as well as in config validation: a codec without secrets
// must never come into existence.
func NewTokenCodec(cfg config.JWTConfig) (*TokenCodec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("token secrets are not configured")
	}

	return &TokenCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		accessTTL:     time.Duration(cfg.AccessExpHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.RefreshExpDays) * 24 * time.Hour,
	}, nil
}

// AccessTTL returns the access token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

// RefreshTTL returns the refresh token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// IssueAccessToken mints a short-lived access token for the user.
func (c *TokenCodec) IssueAccessToken(u *user.User) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.FullName(),
		Role:      u.Role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken mints a long-lived refresh token for the user.
func (c *TokenCodec) IssueRefreshToken(u *user.User) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UserID:    u.ID,
		Username:  u.Username,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, lifetime, issuer/audience, and token class.
// The signing key is selected by the token's own type claim so that a valid
// token of the wrong class fails with a wrong-type error instead of a
// misleading signature failure.
func (c *TokenCodec) Verify(tokenString string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, c.keyForToken,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
	)
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.NewTokenExpiredError(string(expected))
		case stderrors.Is(err, jwt.ErrTokenInvalidAudience), stderrors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, errors.NewTokenWrongAudienceError()
		default:
			return nil, errors.NewTokenMalformedError(string(expected))
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewTokenMalformedError(string(expected))
	}

	if claims.TokenType != expected {
		return nil, errors.NewTokenWrongTypeError(string(expected))
	}

	return claims, nil
}

func (c *TokenCodec) keyForToken(token *jwt.Token) (interface{}, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	switch claims.TokenType {
	case TokenTypeAccess:
		return c.accessSecret, nil
	case TokenTypeRefresh:
		return c.refreshSecret, nil
	default:
		return nil, fmt.Errorf("unknown token type %q", claims.TokenType)
	}
}
