package config

import (
	"strings"
	"testing"
)

func secureConfig() *Config {
	return &Config{
		JWT:      JWTConfig{SecretKey: "0123456789abcdef0123456789abcdef"},
		Creds:    CredsConfig{PassIV: "some-iv-material"},
		AdminKey: "a-real-admin-key",
	}
}

func TestValidate(t *testing.T) {
	if err := secureConfig().Validate(); err != nil {
		t.Errorf("Validate rejected a secure config: %v", err)
	}
}

func TestValidateRejectsInsecureSecrets(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty jwt key", func(c *Config) { c.JWT.SecretKey = "" }, "JWT_SECRET_KEY"},
		{"placeholder jwt key", func(c *Config) { c.JWT.SecretKey = "change-me" }, "JWT_SECRET_KEY"},
		{"short jwt key", func(c *Config) { c.JWT.SecretKey = "tooshort" }, "at least 32 characters"},
		{"development admin key", func(c *Config) { c.AdminKey = "THIS_IS_THE_ADMIN_KEY" }, "ADMIN_KEY"},
		{"empty admin key", func(c *Config) { c.AdminKey = "" }, "ADMIN_KEY"},
		{"missing pass iv", func(c *Config) { c.Creds.PassIV = "" }, "CREDS_PASS_IV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := secureConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want default 8000", cfg.Server.Port)
	}
	if cfg.Database.Schema != "sshmgmt" {
		t.Errorf("Schema = %q", cfg.Database.Schema)
	}
	if cfg.Creds.UserPrefix != "sshmgmt" || cfg.Creds.GroupPrefix != "grp" {
		t.Errorf("creds prefixes = %q/%q", cfg.Creds.UserPrefix, cfg.Creds.GroupPrefix)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want default 16", cfg.Workers)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("WORKER_POOL_SIZE", "4")

	cfg := Load()
	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, want override 9000", cfg.Server.Port)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want override 4", cfg.Workers)
	}
}

func TestDSN(t *testing.T) {
	db := &DatabaseConfig{
		Host: "dbhost", Port: "5432",
		User: "u", Password: "p",
		DBName: "d", SSLMode: "disable",
	}

	want := "postgres://u:p@dbhost:5432/d?sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
