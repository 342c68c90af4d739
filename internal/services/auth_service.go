package services

import (
	"context"
	"fmt"

	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

// AuthService is the bridge between the GoTrue identity store and the
// users profile table. A session is either anonymous or authenticated;
// an authenticated session always carries the resolved profile role.
type AuthService struct {
	userRepo models.UserRepo
}

func NewAuthService(userRepo models.UserRepo) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=admin agent landlord tenant"`
	Phone    string      `json:"phone,omitempty"`
}

// LoginResult pairs the resolved profile with the session tokens.
type LoginResult struct {
	User  *models.User
	Token *types.TokenResponse
}

// Login authenticates against GoTrue and resolves the linked profile.
// A bad email/password pair yields models.ErrInvalidCredentials; a
// valid identity with no profile row yields models.ErrProfileNotFound,
// which is a data-integrity signal, not a login failure.
func (as *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email format: %v", models.ErrInvalidInput, err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := as.userRepo.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := as.userRepo.GetUserByAuthID(ctx, token.User.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if user == nil {
		return nil, models.ErrProfileNotFound
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Register creates the GoTrue identity first, then the linked profile
// row. The two writes are not transactional: a failure on the second
// step leaves an orphaned identity, which the returned error names so
// operators can repair it.
func (as *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, fmt.Errorf("%w: password must mix upper and lower case letters and digits", models.ErrInvalidInput)
	}

	authID, err := as.userRepo.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	user, err := as.userRepo.CreateProfile(ctx, &models.UserInsert{
		AuthID: authID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("profile creation failed after signup, identity %s is orphaned: %w", authID, err)
	}

	return user, nil
}

func (as *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	return as.userRepo.RefreshToken(ctx, refreshToken)
}

// Logout invalidates the session with GoTrue. Idempotent; a missing
// or already-invalidated token is not an error.
func (as *AuthService) Logout(ctx context.Context, accessToken string) error {
	return as.userRepo.SignOut(ctx, accessToken)
}

// IsAuthenticated reports whether the token represents a live session.
// Pure read, no side effect.
func (as *AuthService) IsAuthenticated(token string) bool {
	if token == "" {
		return false
	}
	_, err := helpers.ValidateToken(token)
	return err == nil
}

func (as *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email format: %v", models.ErrInvalidInput, err)
	}
	return as.userRepo.SendPasswordReset(ctx, email)
}
