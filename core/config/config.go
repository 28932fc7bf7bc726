package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Version is the release tag reported by service info and health endpoints.
const Version = "0.1.0"

// Config holds all application configuration in a structured way.
// Load it once at startup and pass it down explicitly; there is no
// package-level instance.
type Config struct {
	App     AppConfig
	Rest    RestConfig
	MCP     MCPConfig
	PokeAPI PokeAPIConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	LogFormat   string // "text" or "json"
	ServerID    string
}

type RestConfig struct {
	Port               string
	BasicAuth          []string
	TrustedProxies     []string
	CorsAllowedOrigins []string
	BodyLimit          int
	RateLimitMax       int
	RateLimitWindow    time.Duration
}

type MCPConfig struct {
	Port      string
	Host      string
	Transport string // "sse" or "stdio"
}

type PokeAPIConfig struct {
	BaseURL          string
	Timeout          time.Duration
	UserAgent        string
	MaxResponseBytes int64

	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerMinRequests      uint32
	BreakerFailureThreshold float64
}

type CacheConfig struct {
	Enabled         bool
	Backend         string        // "memory" or "valkey"
	TTL             time.Duration // zero keeps entries forever
	CleanupInterval time.Duration

	ValkeyAddress        string
	ValkeyPassword       string
	ValkeyDB             int
	ValkeyKeyPrefix      string
	ValkeyConnectTimeout time.Duration
}

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	// App Defaults
	debug := false
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" || v == "on" {
		debug = true
	} else if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		debug = true
	}

	// Basic Auth
	var basicAuth []string
	if v := os.Getenv("APP_BASIC_AUTH"); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	// Cors
	corsOrigins := []string{"*"}
	if v := os.Getenv("APP_CORS_ALLOWED_ORIGINS"); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Name:        "pokemcp",
		Version:     Version,
		Environment: getEnv("APP_ENV", "development"),
		Debug:       debug,
		LogFormat:   getEnv("APP_LOG_FORMAT", "text"),
		ServerID:    getEnv("SERVER_ID", ""),
	}

	restCfg := RestConfig{
		Port:               getEnv("APP_PORT", "3000"),
		BasicAuth:          basicAuth,
		CorsAllowedOrigins: corsOrigins,
		BodyLimit:          getEnvInt("REST_BODY_LIMIT", 1024*1024),
		RateLimitMax:       getEnvInt("REST_RATE_LIMIT_MAX", 1000),
		RateLimitWindow:    getEnvDuration("REST_RATE_LIMIT_WINDOW", 1*time.Minute),
	}
	if v := os.Getenv("APP_TRUSTED_PROXIES"); v != "" {
		restCfg.TrustedProxies = strings.Split(v, ",")
	}

	mcpCfg := MCPConfig{
		Port:      getEnv("MCP_PORT", "8000"),
		Host:      getEnv("MCP_HOST", "localhost"),
		Transport: getEnv("MCP_TRANSPORT", "sse"),
	}

	pokeapiCfg := PokeAPIConfig{
		BaseURL:          getEnv("POKEAPI_URL", "https://pokeapi.co/api/v2"),
		Timeout:          getEnvDuration("POKEAPI_TIMEOUT", 10*time.Second),
		UserAgent:        getEnv("POKEAPI_USER_AGENT", "pokemcp/"+Version),
		MaxResponseBytes: getEnvInt64("POKEAPI_MAX_RESPONSE_BYTES", 10*1024*1024),

		BreakerMaxRequests:      uint32(getEnvInt("POKEAPI_BREAKER_MAX_REQUESTS", 3)),
		BreakerInterval:         getEnvDuration("POKEAPI_BREAKER_INTERVAL", 30*time.Second),
		BreakerTimeout:          getEnvDuration("POKEAPI_BREAKER_TIMEOUT", 60*time.Second),
		BreakerMinRequests:      uint32(getEnvInt("POKEAPI_BREAKER_MIN_REQUESTS", 5)),
		BreakerFailureThreshold: getEnvFloat("POKEAPI_BREAKER_FAILURE_THRESHOLD", 0.6),
	}

	cacheCfg := CacheConfig{
		Enabled:         getEnvBool("CACHE_ENABLED", true),
		Backend:         getEnv("CACHE_BACKEND", "memory"),
		TTL:             getEnvDuration("CACHE_TTL", 0),
		CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 1*time.Minute),

		ValkeyAddress:        getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:       getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:             getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix:      getEnv("VALKEY_KEY_PREFIX", "pokemcp:"),
		ValkeyConnectTimeout: getEnvDuration("VALKEY_CONNECT_TIMEOUT", 5*time.Second),
	}

	cfg := &Config{
		App:     appCfg,
		Rest:    restCfg,
		MCP:     mcpCfg,
		PokeAPI: pokeapiCfg,
		Cache:   cacheCfg,
	}

	switch cfg.Cache.Backend {
	case "memory", "valkey":
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q, expected memory or valkey", cfg.Cache.Backend)
	}
	switch cfg.MCP.Transport {
	case "sse", "stdio":
	default:
		return nil, fmt.Errorf("unsupported MCP_TRANSPORT %q, expected sse or stdio", cfg.MCP.Transport)
	}

	return cfg, nil
}
