package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBPath        string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	JWTAlgorithm  string
	JWTIssuer     string
	TokenTTLHours int
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
// The signing secret has no default: the service refuses to start without it.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "db_users.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     secret,
		JWTAlgorithm:  getEnv("JWT_ALGORITHM", "HS256"),
		JWTIssuer:     getEnv("JWT_ISSUER", "alea-lumen-auth"),
		TokenTTLHours: getEnvInt("JWT_TOKEN_TTL_HOURS", 8),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
