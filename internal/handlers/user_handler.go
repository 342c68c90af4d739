package handlers

import (
	"net/http"
	"strconv"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}

func GetUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}
		if !claims.IsOwner(id) && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		user, err := u.GetUser(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("user not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

// ListUsers is admin tooling; an optional role query narrows the list.
func ListUsers(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := map[string]string{}
		if role := c.Query("role"); role != "" {
			if !models.Role(role).Valid() {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("unsupported role"))
				return
			}
			filter["role"] = role
		}

		users, err := u.ListUsers(c.Request.Context(), filter)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(users, len(users)))
	}
}

// UpdateUser is the self-service profile edit; admins may edit anyone.
// Role changes are rejected here, SetUserRole is the explicit command.
func UpdateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}
		if !claims.IsOwner(id) && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.UpdateProfile(c.Request.Context(), id, fields)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "profile updated"))
	}
}

// SetUserRole is the admin-only role change command.
func SetUserRole(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var req struct {
			Role models.Role `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.SetRole(c.Request.Context(), id, req.Role)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "role updated"))
	}
}

// CreateUser is the admin tooling path that provisions a confirmed
// identity plus its profile row in one call.
func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string      `json:"email" binding:"required,email"`
			Password string      `json:"password" binding:"required,min=8"`
			Name     string      `json:"name" binding:"required"`
			Phone    string      `json:"phone"`
			Role     models.Role `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name, req.Phone, req.Role)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "user created"))
	}
}

func DeleteUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := u.DeleteUser(c.Request.Context(), id); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "user deleted"))
	}
}

// Profile returns the caller's own resolved claims.
func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":    claims.UserID,
			"auth_id":    claims.AuthID,
			"email":      claims.Email,
			"name":       claims.Name,
			"role":       claims.Role,
			"phone":      claims.Phone,
			"avatar_url": claims.AvatarURL,
			"is_admin":   claims.IsAdmin(),
		})
	}
}
