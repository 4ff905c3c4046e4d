package utils

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig is everything the api-server needs, read from env vars
// with dev defaults.
type ServerConfig struct {
	HTTPAddr       string
	SourceURL      string
	SourceFile     string
	PageSize       int
	TickInterval   time.Duration
	WhatsAppNumber string
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		HTTPAddr:       envOr("PROMOHUB_HTTP_ADDR", ":8080"),
		SourceURL:      os.Getenv("PROMOHUB_SOURCE_URL"),
		SourceFile:     envOr("PROMOHUB_SOURCE_FILE", "data/promocoes_site.json"),
		PageSize:       envIntOr("PROMOHUB_PAGE_SIZE", 4),
		TickInterval:   time.Duration(envIntOr("PROMOHUB_TICK_SECONDS", 60)) * time.Second,
		WhatsAppNumber: envOr("PROMOHUB_WHATSAPP_NUMBER", "556535494404"),
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 4
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 60 * time.Second
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
