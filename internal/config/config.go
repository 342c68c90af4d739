package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port                string
	SupabaseURL         string
	SupabaseAnonKey     string
	SupabaseServiceKey  string
	MongoDBURI          string
	MongoDBPassword     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	FrontendURL         string
	Environment         string
	LogLevel            string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey:  os.Getenv("SUPABASE_SERVICE_KEY"),
		MongoDBURI:          os.Getenv("MONGODB_URI"),
		MongoDBPassword:     os.Getenv("MONGODB_PASSWORD"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		FrontendURL:         getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"),
		Environment:         getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
