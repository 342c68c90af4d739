package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
)

// Register handles public signup. The admin role can only be granted
// through the management tooling, never self-assigned.
func Register(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if req.Role == "" {
			req.Role = models.RoleTenant
		}
		if req.Role == models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("admin accounts cannot be self-registered"))
			return
		}

		user, err := a.Register(c.Request.Context(), &req)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "account created"))
	}
}

// Login authenticates and starts a cookie session. A wrong
// email/password pair and an identity with no linked profile are
// surfaced as different failures so the UI can message them apart.
func Login(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		result, err := a.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrProfileNotFound) {
				c.JSON(http.StatusForbidden, models.ErrorResponse("account has no profile, contact support"))
				return
			}
			if errors.Is(err, models.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
				return
			}
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		setSessionCookies(c, result.Token.AccessToken, result.Token.RefreshToken, result.Token.ExpiresIn)

		c.JSON(http.StatusOK, gin.H{
			"user":         result.User,
			"access_token": result.Token.AccessToken,
		})
	}
}

func Refresh(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token not found"))
			return
		}

		tokenRes, err := a.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse("token refresh failed"))
			return
		}

		setSessionCookies(c, tokenRes.AccessToken, tokenRes.RefreshToken, tokenRes.ExpiresIn)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "session refreshed"))
	}
}

// Logout invalidates the session and clears the cookies. Calling it
// with no live session is harmless.
func Logout(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("access_token")
		if err := a.Logout(c.Request.Context(), token); err != nil {
			// Session may already be gone; clearing cookies is enough.
			_ = err
		}

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "logged out"))
	}
}

// Session reports whether the caller currently holds a live session.
func Session(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		authenticated := err == nil && a.IsAuthenticated(token)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	}
}

func RequestPasswordReset(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if err := a.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse("could not send reset email"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "reset email sent"))
	}
}

func setSessionCookies(c *gin.Context, accessToken, refreshToken string, expiresIn int) {
	isProduction := os.Getenv("GIN_MODE") == "production"

	c.SetCookie(
		"access_token",
		accessToken,
		expiresIn,
		"/",
		"", // let Gin pick current domain
		isProduction,
		true,
	)
	c.SetCookie(
		"refresh_token",
		refreshToken,
		3600*24*30,
		"/",
		"",
		isProduction,
		true,
	)
}
