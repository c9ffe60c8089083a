package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	TokenKey    string
	DatabaseURL string
	CatalogPath string

	GeminiAPIKey string
	GeminiModel  string

	// Requests per second and burst for the per-IP limiter on /api.
	RateLimit float64
	RateBurst int

	SecureCookies bool
}

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

// Load reads .env if present and then the process environment, which wins.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env: %w", err)
		}
		log.Println("no .env file, using process environment")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	c := Config{
		Addr:         getenv("ADDR", ":443"),
		TLSCert:      os.Getenv("TLS_CERT"),
		TLSKey:       os.Getenv("TLS_KEY"),
		TokenKey:     os.Getenv("TOKEN_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		CatalogPath:  os.Getenv("CATALOG_PATH"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		RateLimit:    1,
		RateBurst:    3,
	}
	if c.TokenKey == "" {
		return Config{}, ErrNoTokenKey
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return Config{}, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	c.SecureCookies = c.TLSCert != ""

	var err error
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || c.RateLimit <= 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT %q", v)
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if c.RateBurst, err = strconv.Atoi(v); err != nil || c.RateBurst < 1 {
			return Config{}, fmt.Errorf("RATE_BURST %q", v)
		}
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
