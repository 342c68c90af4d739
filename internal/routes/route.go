package routes

import (
	"os"

	"github.com/PropertyIntelLTD/property-intel-server/internal/container"
	"github.com/PropertyIntelLTD/property-intel-server/internal/handlers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "property-intel-api",
			})
		})

		// public auth routes
		v1.POST("/signup", handlers.Register(container.AuthService))
		v1.POST("/login", handlers.Login(container.AuthService))
		v1.POST("/refresh", handlers.Refresh(container.AuthService))
		v1.POST("/password-reset", handlers.RequestPasswordReset(container.AuthService))
		v1.GET("/session", handlers.Session(container.AuthService))

		// public brochure routes
		v1.GET("/properties", handlers.ListProperties(container.PropertyService))
		v1.GET("/properties/:id", handlers.GetProperty(container.PropertyService))
		v1.GET("/blog", handlers.ListBlogPosts(container.BlogService))
		v1.GET("/blog/:id", handlers.GetBlogPost(container.BlogService))
		v1.POST("/contact", handlers.SubmitContactMessage(container.ContactService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.AuthService, container.UserService, container.Logger))

	protected.POST("/logout", handlers.Logout(container.AuthService))
	protected.GET("/profile", handlers.Profile())

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/:id", handlers.GetUser(container.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateUser(container.UserService))

		adminUsers := userRoutes.Group("/")
		adminUsers.Use(middleware.RequireRole("admin"))
		adminUsers.GET("/", handlers.ListUsers(container.UserService))
		adminUsers.POST("/", handlers.CreateUser(container.UserService))
		adminUsers.PATCH("/:id/role", handlers.SetUserRole(container.UserService))
		adminUsers.DELETE("/:id", handlers.DeleteUser(container.UserService))
	}

	propertyRoutes := protected.Group("/portfolio")
	{
		propertyRoutes.GET("/properties", handlers.ListMyProperties(container.PropertyService))
		propertyRoutes.POST("/properties", handlers.CreateProperty(container.PropertyService))
		propertyRoutes.PATCH("/properties/:id", handlers.UpdateProperty(container.PropertyService))
		propertyRoutes.DELETE("/properties/:id", handlers.DeleteProperty(container.PropertyService))
	}

	blogAdmin := protected.Group("/admin/blog")
	blogAdmin.Use(middleware.RequireRole("admin"))
	{
		blogAdmin.GET("/", handlers.ListAllBlogPosts(container.BlogService))
		blogAdmin.GET("/:id", handlers.GetBlogPostDraft(container.BlogService))
		blogAdmin.POST("/", handlers.CreateBlogPost(container.BlogService))
		blogAdmin.PATCH("/:id", handlers.UpdateBlogPost(container.BlogService))
		blogAdmin.DELETE("/:id", handlers.DeleteBlogPost(container.BlogService))
	}

	contactAdmin := protected.Group("/admin/messages")
	contactAdmin.Use(middleware.RequireRole("admin"))
	{
		contactAdmin.GET("/", handlers.ListContactMessages(container.ContactService))
		contactAdmin.PATCH("/:id/read", handlers.MarkContactMessageRead(container.ContactService))
		contactAdmin.DELETE("/:id", handlers.DeleteContactMessage(container.ContactService))
	}

	return r
}
