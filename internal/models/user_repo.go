package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

// UserRepo covers both planes the auth bridge spans: the GoTrue
// identity store and the users profile table. The two are linked by
// auth_id; keeping them on one interface lets the services fake the
// whole bridge in tests.
type UserRepo interface {
	// Identity plane.
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	SendPasswordReset(ctx context.Context, email string) error
	AdminCreateIdentity(ctx context.Context, email, password string) (string, error)
	AdminDeleteIdentity(ctx context.Context, authID string) error

	// Profile table.
	CreateProfile(ctx context.Context, insert *UserInsert) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByAuthID(ctx context.Context, authID string) (*User, error)
	ListUsers(ctx context.Context, filter map[string]string) ([]*User, error)
	UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// SignUp creates a GoTrue identity and returns its id. The linked
// profile row is a separate write (CreateProfile); see the auth
// service for the two-step gap.
func (su *SupabaseRepo) SignUp(ctx context.Context, email, password string) (string, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", TranslateAuthError(err)
	}
	return res.ID.String(), nil
}

func (su *SupabaseRepo) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, TranslateAuthError(err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, TranslateAuthError(err)
	}
	return resp, nil
}

// SignOut invalidates the session behind the token. GoTrue treats a
// second call for the same session as a no-op, so this is idempotent.
func (su *SupabaseRepo) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := su.supabaseClient.Auth.WithToken(accessToken).Logout(); err != nil {
		return TranslateAuthError(err)
	}
	return nil
}

func (su *SupabaseRepo) SendPasswordReset(ctx context.Context, email string) error {
	err := su.supabaseClient.Auth.Recover(types.RecoverRequest{Email: email})
	if err != nil {
		return TranslateAuthError(err)
	}
	return nil
}

// AdminCreateIdentity creates a confirmed identity through the
// service-role client. Used by management tooling only.
func (su *SupabaseRepo) AdminCreateIdentity(ctx context.Context, email, password string) (string, error) {
	if su.adminClient == nil {
		return "", fmt.Errorf("service-role client is not configured")
	}
	resp, err := su.adminClient.Auth.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
	})
	if err != nil {
		return "", TranslateAuthError(err)
	}
	return resp.ID.String(), nil
}

// AdminDeleteIdentity removes the GoTrue identity linked to a deleted
// profile so no orphaned login is left behind.
func (su *SupabaseRepo) AdminDeleteIdentity(ctx context.Context, authID string) error {
	if su.adminClient == nil {
		return fmt.Errorf("service-role client is not configured")
	}
	uid, err := uuid.Parse(authID)
	if err != nil {
		return fmt.Errorf("invalid auth id %q: %v", authID, err)
	}
	if err := su.adminClient.Auth.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: uid}); err != nil {
		return TranslateAuthError(err)
	}
	return nil
}

func (su *SupabaseRepo) CreateProfile(ctx context.Context, insert *UserInsert) (*User, error) {
	raw, count, err := su.supabaseClient.
		From(UsersTable).
		Insert(insert, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, TranslateRestError("create user", 0, err)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created user: %v", err)
	}
	if count == 0 || len(users) == 0 {
		return nil, fmt.Errorf("no user data returned after insert")
	}

	return &users[0], nil
}

// GetUserByID returns (nil, nil) when no row exists, so callers can do
// plain presence checks instead of matching errors.
func (su *SupabaseRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	raw, _, err := su.supabaseClient.
		From(UsersTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Single().
		Execute()
	if err != nil {
		if IsSingleRowNotFound(err) {
			return nil, nil
		}
		return nil, TranslateRestError("get user", 0, err)
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user row: %v", err)
	}

	return user, nil
}

// GetUserByAuthID resolves the profile linked to a GoTrue identity.
// Same absence contract as GetUserByID.
func (su *SupabaseRepo) GetUserByAuthID(ctx context.Context, authID string) (*User, error) {
	raw, _, err := su.supabaseClient.
		From(UsersTable).
		Select("*", "", false).
		Eq("auth_id", authID).
		Single().
		Execute()
	if err != nil {
		if IsSingleRowNotFound(err) {
			return nil, nil
		}
		return nil, TranslateRestError("get user by auth id", 0, err)
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user row: %v", err)
	}

	return user, nil
}

func (su *SupabaseRepo) ListUsers(ctx context.Context, filter map[string]string) ([]*User, error) {
	query := su.supabaseClient.From(UsersTable).Select("*", "exact", false)
	for column, value := range filter {
		query = query.Eq(column, value)
	}

	raw, count, err := query.Execute()
	if err != nil {
		return nil, TranslateRestError("list users", 0, err)
	}
	if count == 0 {
		return []*User{}, nil
	}

	var users []*User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user rows: %v", err)
	}

	return users, nil
}

func (su *SupabaseRepo) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) (*User, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	raw, count, err := su.supabaseClient.
		From(UsersTable).
		Update(fields, "", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, TranslateRestError("update user", 0, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("update user %d: %w", id, ErrNotFound)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated user: %v", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no user data returned after update")
	}

	return &users[0], nil
}

func (su *SupabaseRepo) DeleteUser(ctx context.Context, id int64) error {
	_, count, err := su.supabaseClient.
		From(UsersTable).
		Delete("", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return TranslateRestError("delete user", 0, err)
	}
	if count == 0 {
		return fmt.Errorf("delete user %d: %w", id, ErrNotFound)
	}

	return nil
}
