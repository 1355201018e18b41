package usecases

import (
	"time"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
)

// TokenCodec mirrors the codec surface the use cases depend on.
type TokenCodec interface {
	IssueAccessToken(u *user.User) (string, error)
	IssueRefreshToken(u *user.User) (string, error)
	Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
