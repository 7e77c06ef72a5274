package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port string

	// DBPath is the SQLite file. The process owns it exclusively.
	DBPath string

	// LLMBaseURL is the relay endpoint for report and echo generation.
	// Empty disables both features; everything else keeps working.
	LLMBaseURL string
	LLMTimeout time.Duration

	Timezone string
}

// Load reads configuration from the environment, with a .env file as a
// convenience source. Every key has a workable default; a missing .env is
// not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}
	return Config{
		Port:       getEnv("PORT", "8844"),
		DBPath:     getEnv("KOE_DB_PATH", "data/koe.db"),
		LLMBaseURL: getEnv("KOE_LLM_URL", ""),
		LLMTimeout: getEnvAsDuration("KOE_LLM_TIMEOUT_SECONDS", 30*time.Second),
		Timezone:   getEnv("TZ", ""),
	}
}

// Location resolves the configured timezone, falling back to the system
// local zone when unset or unknown.
func (config Config) Location() *time.Location {
	if config.Timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		log.Printf("config: unknown timezone %q, using local", config.Timezone)
		return time.Local
	}
	return location
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
