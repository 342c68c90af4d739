package container

import (
	"log/slog"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/PropertyIntelLTD/property-intel-server/internal/services"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies. Everything is wired
// once at startup and handed down, so tests can substitute fakes at
// the repo interfaces.
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient  *supabase.Client
	MongoDBClient   *mongo.Client
	AuthService     *services.AuthService
	UserService     *services.UserService
	PropertyService *services.PropertyService
	BlogService     *services.BlogService
	ContactService  *services.ContactService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	adminClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, adminClient, supaUrl, supaKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)

	return &Container{
		Logger:          logger,
		Cloudinary:      cld,
		SupabaseClient:  supabaseClient,
		MongoDBClient:   mongoDBClient,
		AuthService:     services.NewAuthService(supa),
		UserService:     services.NewUserService(supa),
		PropertyService: services.NewPropertyService(supa),
		BlogService:     services.NewBlogService(supa),
		ContactService:  services.NewContactService(mongoRepo),
	}
}
