package user

import "context"

// Repository is the read-mostly account store. Lookup by identifier matches
// username or email exactly as stored. Create exists for administrative
// provisioning; there is no self-service registration.
type Repository interface {
	Create(ctx context.Context, account *User) error
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

// PasswordHasher abstracts the password hashing primitive. Verify must use a
// constant-time comparison.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}
