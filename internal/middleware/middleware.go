package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(500, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware validates the session cookie, transparently refreshes
// an expired token, and enriches the context with the caller's profile
// claims. Pages behind it can assume c.Get("user") holds
// *helpers.EnhancedClaims.
func AuthMiddleware(authService *services.AuthService, userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "JWT token not found in cookie",
			})
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			// Token validation failed, try to refresh
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   err.Error(),
				})
				c.Abort()
				return
			}

			tokenRes, refreshErr := authService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil {
				logger.Error("Token refresh failed", "error", refreshErr)
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Token expired and refresh failed",
				})
				c.Abort()
				return
			}

			isProduction := os.Getenv("GIN_MODE") == "production"
			logger.Info("Token refreshed successfully",
				"user_id", tokenRes.User.ID,
				"expires_in", tokenRes.ExpiresIn,
			)
			c.SetCookie(
				"access_token",
				tokenRes.AccessToken,
				tokenRes.ExpiresIn,
				"/",
				"", // let Gin pick current domain
				isProduction,
				true,
			)
			c.SetCookie(
				"refresh_token",
				tokenRes.RefreshToken,
				3600*24*30, // 30 days
				"/",
				"",
				isProduction,
				true,
			)
			token = tokenRes.AccessToken
			claims, err = helpers.ValidateToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Refreshed token validation failed",
				})
				c.Abort()
				return
			}
		}

		// The token subject is the GoTrue identity id; the profile row
		// linked by auth_id carries the role that gates queries.
		enhanced := &helpers.EnhancedClaims{
			CustomClaims: claims,
			AuthID:       claims.Subject,
			Email:        claims.Email,
			Role:         "guest",
		}

		user, err := userService.GetUserByAuthID(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Error("Profile lookup failed", "auth_id", claims.Subject, "error", err)
		} else if user == nil {
			logger.Warn("Authenticated identity has no linked profile",
				"auth_id", claims.Subject,
			)
		} else {
			enhanced.UserID = user.ID
			enhanced.Role = string(user.Role)
			enhanced.Name = user.Name
			enhanced.Email = user.Email
			enhanced.Phone = user.Phone
			enhanced.AvatarURL = user.AvatarURL
			enhanced.CreatedAt = user.CreatedAt.Format(time.RFC3339)
		}

		c.Set("user", enhanced)
		c.Set("access_token", token)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		userClaims, ok := claims.(*helpers.EnhancedClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user claims"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if userClaims.HasRole(role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		c.Abort()
	}
}
