// Package usercmd provides administrative account provisioning. There is no
// self-service registration; accounts are created by an operator.
package usercmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lyceum-io/lyceum/internal/domain/user"
	"github.com/lyceum-io/lyceum/internal/infrastructure/auth"
	"github.com/lyceum-io/lyceum/internal/infrastructure/config"
	"github.com/lyceum-io/lyceum/internal/infrastructure/database"
	"github.com/lyceum-io/lyceum/internal/infrastructure/repository"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

var (
	env       string
	username  string
	email     string
	firstName string
	lastName  string
	role      string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User account administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long:  `Create a user account. The password is read interactively and never echoed.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&email, "email", "m", "", "Email address (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVarP(&role, "role", "r", string(user.RoleStaff), "Role (admin, staff, student)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	accountRole := user.Role(role)
	if !accountRole.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	password, err := promptPassword()
	if err != nil {
		return err
	}
	if len(password) < cfg.Auth.Password.MinLength {
		return fmt.Errorf("password must be at least %d characters long", cfg.Auth.Password.MinLength)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &user.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         accountRole,
		IsActive:     true,
	}

	userRepo := repository.NewUserRepository(database.Get())
	if err := userRepo.Create(context.Background(), account); err != nil {
		return err
	}

	fmt.Printf("created user %s (id=%d, role=%s)\n", account.Username, account.ID, account.Role)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	password := strings.TrimRight(string(raw), "\r\n")
	if password != strings.TrimRight(string(confirm), "\r\n") {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}
