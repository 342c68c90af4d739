package handlers

import (
	"net/http"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
)

// ListBlogPosts is the public listing: published posts only, newest
// first.
func ListBlogPosts(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := b.ListPublishedPosts(c.Request.Context())
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(posts, len(posts)))
	}
}

// GetBlogPost serves the public article page; drafts look like a
// missing post here.
func GetBlogPost(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		post, err := b.GetPost(c.Request.Context(), id, false)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		if post == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("blog post not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(post, ""))
	}
}

// ListAllBlogPosts is the management listing, drafts included.
func ListAllBlogPosts(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := b.ListAllPosts(c.Request.Context())
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(posts, len(posts)))
	}
}

func GetBlogPostDraft(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		post, err := b.GetPost(c.Request.Context(), id, true)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		if post == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("blog post not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(post, ""))
	}
}

func CreateBlogPost(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		var insert models.BlogPostInsert
		if err := c.ShouldBindJSON(&insert); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if insert.AuthorID == nil && claims.UserID != 0 {
			insert.AuthorID = &claims.UserID
		}

		post, err := b.CreatePost(c.Request.Context(), &insert)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(post, "blog post created"))
	}
}

func UpdateBlogPost(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		post, err := b.UpdatePost(c.Request.Context(), id, fields)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(post, "blog post updated"))
	}
}

func DeleteBlogPost(b *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := b.DeletePost(c.Request.Context(), id); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "blog post deleted"))
	}
}
