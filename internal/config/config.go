// Package config loads server settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string  `env:"ADDR" envDefault:":8443"`
	TLSCert       string  `env:"TLS_CERT"`
	TLSKey        string  `env:"TLS_KEY"`
	TokenKey      string  `env:"TOKEN_KEY"`
	DatabaseURL   string  `env:"DATABASE_URL"`
	DefaultMethod string  `env:"DEFAULT_METHOD" envDefault:"Bowles_FS_3.0"`
	Workers       int     `env:"WORKERS" envDefault:"0"`
	RateLimit     float64 `env:"RATE_LIMIT" envDefault:"5"`
	RateBurst     int     `env:"RATE_BURST" envDefault:"10"`
	UploadLimitMB int64   `env:"UPLOAD_LIMIT_MB" envDefault:"10"`
	Debug         bool    `env:"DEBUG" envDefault:"false"`
}

// Load reads files (".env" when none are given) into the environment and
// parses it. Missing files are not an error; variables already set win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Server checks the settings the HTTP server cannot start without.
func (c Config) Server() error {
	if c.TokenKey == "" {
		return errors.New("TOKEN_KEY environment variable is not set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit %g/s with burst %d must be positive", c.RateLimit, c.RateBurst)
	}
	if c.UploadLimitMB <= 0 {
		return fmt.Errorf("upload limit %d MB must be positive", c.UploadLimitMB)
	}
	return nil
}

// TLS reports whether the server should serve HTTPS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// UploadLimit is the multipart body limit in bytes.
func (c Config) UploadLimit() int64 {
	return c.UploadLimitMB << 20
}
