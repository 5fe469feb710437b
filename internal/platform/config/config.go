package config

import (
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	URI    string // MongoDB connection string
	DBName string
}

type StorageConfig struct {
	PublicDir string // static assets served at /
	UploadDir string // stored images, served at /uploads
}

// Load reads an optional .env file and then the environment. Missing keys
// fall back to local-development defaults.
func Load() (ServerConfig, DBConfig, StorageConfig) {
	// .env is optional, plain env vars still apply
	_ = godotenv.Load()

	server := ServerConfig{
		Port: ":" + GetEnv("PORT", "3000"),
	}
	db := DBConfig{
		URI:    GetEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName: GetEnv("MONGO_DB", "inventory"),
	}
	storage := StorageConfig{
		PublicDir: GetEnv("PUBLIC_DIR", "public"),
		UploadDir: GetEnv("UPLOAD_DIR", "public/uploads"),
	}
	return server, db, storage
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
