package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.Addr)
	assert.Equal(t, "Bowles_FS_3.0", cfg.DefaultMethod)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, int64(10<<20), cfg.UploadLimit())
	assert.False(t, cfg.TLS())
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ADDR=:9000\nWORKERS=3\nDEFAULT_METHOD=AASHTO_2020\n"), 0o600))
	t.Setenv("WORKERS", "6")
	t.Setenv("TOKEN_KEY", "secret")
	t.Cleanup(func() {
		os.Unsetenv("ADDR")
		os.Unsetenv("DEFAULT_METHOD")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "AASHTO_2020", cfg.DefaultMethod)
	assert.Equal(t, 6, cfg.Workers, "variables already set take precedence over the file")
	assert.NoError(t, cfg.Server())
}

func TestLoadBadValue(t *testing.T) {
	t.Setenv("RATE_BURST", "many")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestServer(t *testing.T) {
	ok := Config{TokenKey: "k", RateLimit: 1, RateBurst: 1, UploadLimitMB: 1}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no token key", func(c *Config) { c.TokenKey = "" }, true},
		{"cert without key", func(c *Config) { c.TLSCert = "server.crt" }, true},
		{"zero burst", func(c *Config) { c.RateBurst = 0 }, true},
		{"zero upload", func(c *Config) { c.UploadLimitMB = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Server())
			} else {
				assert.NoError(t, c.Server())
			}
		})
	}
}
