package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	LegacyBridgeURL    string
	LegacyTokenURL     string
	LegacyClientID     string
	LegacyClientSecret string
	ConnectionID       string
	Mode               string
	Scopes             []string // empty means every scope
	DryRun             bool
	RunOnce            bool
	SyncInterval       int // seconds
	ShutdownTimeout    int // seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error in production)
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	bridgeURL := os.Getenv("LEGACY_BRIDGE_URL")
	if bridgeURL == "" {
		return nil, fmt.Errorf("LEGACY_BRIDGE_URL is required")
	}

	connectionID := os.Getenv("CONNECTION_ID")
	if connectionID == "" {
		return nil, fmt.Errorf("CONNECTION_ID is required")
	}

	tokenURL := os.Getenv("LEGACY_TOKEN_URL")
	clientID := os.Getenv("LEGACY_CLIENT_ID")
	clientSecret := os.Getenv("LEGACY_CLIENT_SECRET")
	if tokenURL != "" && (clientID == "" || clientSecret == "") {
		return nil, fmt.Errorf("LEGACY_CLIENT_ID and LEGACY_CLIENT_SECRET are required when LEGACY_TOKEN_URL is set")
	}
	if tokenURL == "" {
		fmt.Println("Warning: LEGACY_TOKEN_URL not set, bridge requests will not be authenticated")
	}

	return &Config{
		DatabaseURL:        dbURL,
		LegacyBridgeURL:    bridgeURL,
		LegacyTokenURL:     tokenURL,
		LegacyClientID:     clientID,
		LegacyClientSecret: clientSecret,
		ConnectionID:       connectionID,
		Mode:               os.Getenv("SYNC_MODE"),
		Scopes:             splitScopes(os.Getenv("SYNC_SCOPES")),
		DryRun:             envBool("SYNC_DRY_RUN"),
		RunOnce:            envBool("RUN_ONCE"),
		SyncInterval:       envInt("SYNC_INTERVAL_SECONDS", 300),
		ShutdownTimeout:    envInt("SHUTDOWN_TIMEOUT_SECONDS", 30),
	}, nil
}

func splitScopes(raw string) []string {
	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, strings.ToLower(s))
		}
	}
	return scopes
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
