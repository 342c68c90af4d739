package handlers

import (
	"net/http"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/gin-gonic/gin"
)

// listingFilterColumns are the equality filters the public listing
// accepts from the query string.
var listingFilterColumns = []string{"status", "type", "city", "featured", "landlord_id", "agent_id"}

func listingFilter(c *gin.Context) map[string]string {
	filter := map[string]string{}
	for _, column := range listingFilterColumns {
		if v := c.Query(column); v != "" {
			filter[column] = v
		}
	}
	return filter
}

// ListProperties serves the public brochure pages: every listing,
// optionally narrowed by query filters, relations resolved.
func ListProperties(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		properties, err := p.ListProperties(c.Request.Context(), "", 0, listingFilter(c))
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(properties, len(properties)))
	}
}

// ListMyProperties serves the dashboards: the caller's role decides
// the scope (landlords their own rows, agents assigned rows, admins
// and tenants everything).
func ListMyProperties(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		properties, err := p.ListProperties(c.Request.Context(), models.Role(claims.Role), claims.UserID, listingFilter(c))
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(properties, len(properties)))
	}
}

func GetProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		property, err := p.GetProperty(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		if property == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("property not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(property, ""))
	}
}

func CreateProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}
		if !claims.CanManageListings() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		var insert models.PropertyInsert
		if err := c.ShouldBindJSON(&insert); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		property, err := p.CreateProperty(c.Request.Context(), &insert, models.Role(claims.Role), claims.UserID)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(property, "property created"))
	}
}

func UpdateProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		property, err := p.UpdateProperty(c.Request.Context(), id, fields, models.Role(claims.Role), claims.UserID)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(property, "property updated"))
	}
}

func DeleteProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		if err := p.DeleteProperty(c.Request.Context(), id, models.Role(claims.Role), claims.UserID); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "property deleted"))
	}
}
