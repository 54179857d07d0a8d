package seed

import (
	"context"
	"errors"
	"fmt"

	"pawhaven/internal/store"
	"pawhaven/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// SeedStaffUser creates the initial staff account if no account exists for
// the email yet. The password comes from the caller so it never lives in
// source control.
func SeedStaffUser(ctx context.Context, repo *store.UserRepository, email, password string) error {
	_, err := repo.UserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		return fmt.Errorf("failed to check for existing staff user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	user := &types.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "PawHaven",
		LastName:     "Staff",
		IsStaff:      true,
	}

	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	return nil
}
