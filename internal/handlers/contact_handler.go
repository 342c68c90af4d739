package handlers

import (
	"net/http"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
)

// SubmitContactMessage takes a public contact-form submission.
// Subject and phone are optional.
func SubmitContactMessage(s *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg models.ContactMessage
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.SubmitMessage(c.Request.Context(), &msg)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "message received"))
	}
}

// ListContactMessages is the management inbox; ?unread=true narrows
// to unread messages.
func ListContactMessages(s *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		unreadOnly := c.Query("unread") == "true"

		messages, err := s.ListMessages(c.Request.Context(), unreadOnly)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(messages, len(messages)))
	}
}

func MarkContactMessageRead(s *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.MarkMessageRead(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "message marked read"))
	}
}

func DeleteContactMessage(s *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "message deleted"))
	}
}
