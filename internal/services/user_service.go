package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}

func (us *UserService) GetUserByAuthID(ctx context.Context, authID string) (*models.User, error) {
	if authID == "" {
		return nil, fmt.Errorf("auth id is required")
	}
	return us.userRepo.GetUserByAuthID(ctx, authID)
}

func (us *UserService) ListUsers(ctx context.Context, filter map[string]string) ([]*models.User, error) {
	return us.userRepo.ListUsers(ctx, filter)
}

// UpdateProfile applies a self-service edit. Role is immutable on
// this path; only SetRole may change it.
func (us *UserService) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (*models.User, error) {
	delete(fields, "role")
	delete(fields, "auth_id")
	delete(fields, "id")
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalidInput)
	}

	fields["updated_at"] = time.Now()
	return us.userRepo.UpdateUser(ctx, id, fields)
}

// SetRole is the explicit admin command for role changes.
func (us *UserService) SetRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unsupported role %q", models.ErrInvalidInput, role)
	}
	return us.userRepo.UpdateUser(ctx, id, map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	})
}

// CreateUser is the admin-tooling path: a confirmed identity through
// the service-role client, then the linked profile row.
func (us *UserService) CreateUser(ctx context.Context, email, password, name, phone string, role models.Role) (*models.User, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email format: %v", models.ErrInvalidInput, err)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("%w: password must mix upper and lower case letters and digits", models.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unsupported role %q", models.ErrInvalidInput, role)
	}

	authID, err := us.userRepo.AdminCreateIdentity(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.CreateProfile(ctx, &models.UserInsert{
		AuthID: authID,
		Name:   name,
		Email:  email,
		Phone:  phone,
		Role:   role,
	})
	if err != nil {
		return nil, fmt.Errorf("profile creation failed after identity creation, identity %s is orphaned: %w", authID, err)
	}

	return user, nil
}

// DeleteUser removes the profile row first, then the linked identity,
// so a half-completed delete never leaves a profile without a login.
func (us *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("delete user %d: %w", id, models.ErrNotFound)
	}

	if err := us.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	if err := us.userRepo.AdminDeleteIdentity(ctx, user.AuthID); err != nil {
		return fmt.Errorf("profile deleted but identity %s remains: %w", user.AuthID, err)
	}

	return nil
}
