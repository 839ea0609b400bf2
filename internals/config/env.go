package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// GetEnv fetches a key or returns an empty string.
// Critical env vars should use this function.
func GetEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	log.Printf("Critical: Environment variable %s not set\n", key)
	return ""
}

// GetEnvAsStr fetches a key or returns a fallback value.
// Useful for non-critical env vars.
func GetEnvAsStr(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvAsInt fetches a key as a positive integer or returns a fallback value.
func GetEnvAsInt(key string, fallback int) int {
	if valueStr, ok := os.LookupEnv(key); ok {
		if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
			return value
		}
		log.Printf("Warning: Environment variable %s is not a positive integer, using fallback value\n", key)
	}
	return fallback
}

// AllowedOrigins returns the browser origins CORS should accept, read from
// ALLOWED_ORIGINS (comma separated). "*" allows any origin and is the local
// development default.
func AllowedOrigins() []string {
	raw := GetEnvAsStr("ALLOWED_ORIGINS", "*")

	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
