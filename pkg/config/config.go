package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Host     string
	Port     string
	Env      string
	DemoData bool
}

type DatabaseConfig struct {
	Type string // "memory", "sqlite" or "postgres"
	DSN  string
	Path string // For SQLite: file path
}

type RedisConfig struct {
	Addr     string // empty disables the leaderboard cache
	Password string
	DB       int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dbType := getEnv("DB_TYPE", "memory") // Default to the in-process store
	dsn, dbPath := buildDSN(dbType)

	return &Config{
		Server: ServerConfig{
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			Port:     getEnv("SERVER_PORT", "8000"),
			Env:      getEnv("ENV", "development"),
			DemoData: getEnv("DEMO_DATA", "true") == "true",
		},
		Database: DatabaseConfig{
			Type: dbType,
			DSN:  dsn,
			Path: dbPath,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
	}, nil
}

func buildDSN(dbType string) (string, string) {
	switch dbType {
	case "postgres":
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "kidlearn")
		sslMode := getEnv("DB_SSLMODE", "disable")

		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbHost, dbPort, dbUser, dbPassword, dbName, sslMode,
		)
		return dsn, ""
	case "sqlite":
		dbPath := getEnv("SQLITE_PATH", "./data/kidlearn.db")
		dsn := dbPath + "?mode=rwc&cache=shared&timeout=5000"
		return dsn, dbPath
	default:
		// The in-memory store needs no DSN
		return "", ""
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
