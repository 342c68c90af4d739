package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	UsersTable      = "users"
	PropertiesTable = "properties"
	BlogPostsTable  = "blog_posts"
)

// SupabaseRepo holds the anon client plus an optional service-role
// client for the admin-only auth endpoints.
type SupabaseRepo struct {
	supabaseClient *supabase.Client
	adminClient    *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient, adminClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		adminClient:    adminClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client carrying the given
// access token, so row-level security applies to the caller.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}
