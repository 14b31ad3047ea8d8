// ABOUTME: User store methods for account lookup and provisioning
// ABOUTME: Accounts are created by the CLI; the service only reads them

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateUser inserts a new user. Generates ID and CreatedAt if not set.
func (s *GormStore) CreateUser(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if err := s.withCtx(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("created user", "id", user.ID, "email", user.Email)
	return nil
}

// GetUser retrieves a user by ID.
func (s *GormStore) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.withCtx(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.withCtx(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// ListUsers returns all users ordered by name.
func (s *GormStore) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := s.withCtx(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of provisioned users.
func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.withCtx(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
