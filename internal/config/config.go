package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	Database     string
	QueryTimeout time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGODB_URI must be set")
	}

	database := os.Getenv("MONGODB_DATABASE")
	if database == "" {
		database = "rpg_market"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("QUERY_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("QUERY_TIMEOUT must be a positive number of seconds, got %q", raw)
		}
		timeout = time.Duration(secs) * time.Second
	}

	return &Config{
		MongoURI:     uri,
		Database:     database,
		QueryTimeout: timeout,
	}, nil
}
