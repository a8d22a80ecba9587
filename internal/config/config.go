package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Known-insecure values that must never survive into production.
var insecureDefaults = map[string]bool{
	"change-me":             true,
	"THIS_IS_THE_ADMIN_KEY": true,
	"secret":                true,
	"":                      true,
}

// Config is the centric-api (control plane) configuration, loaded from the
// environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Creds    CredsConfig
	AdminKey string
	Workers  int
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Schema   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

// CredsConfig feeds the credential generator. The IV must match the one on
// the node fleet or recovered passwords will not line up.
type CredsConfig struct {
	UserPrefix  string
	GroupPrefix string
	PassPrefix  string
	PassIV      string
	CryptSalt   string
}

func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Mode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "sshmgmt_user"),
			Password: getEnv("DB_PASSWORD", "sshmgmt_pass"),
			DBName:   getEnv("DB_NAME", "sshmgmt_db"),
			Schema:   getEnv("DB_SCHEMA", "sshmgmt"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", ""),
		},
		Creds: CredsConfig{
			UserPrefix:  getEnv("CREDS_USER_PREFIX", "sshmgmt"),
			GroupPrefix: getEnv("CREDS_GROUP_PREFIX", "grp"),
			PassPrefix:  getEnv("CREDS_PASS_PREFIX", "SSHMGMTKIT_"),
			PassIV:      getEnv("CREDS_PASS_IV", ""),
			CryptSalt:   getEnv("CREDS_CRYPT_SALT", ""),
		},
		AdminKey: getEnv("ADMIN_KEY", ""),
		Workers:  getEnvInt("WORKER_POOL_SIZE", 16),
	}

	// Never log secrets.
	log.Printf("[config] centric-api loaded: port=%s db=%s/%s.%s",
		cfg.Server.Port, cfg.Database.Host, cfg.Database.DBName, cfg.Database.Schema)

	return cfg
}

// Validate rejects missing or insecure secret material.
func (c *Config) Validate() error {
	if insecureDefaults[c.JWT.SecretKey] {
		return fmt.Errorf("JWT_SECRET_KEY must be set to a secure value")
	}
	if len(c.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters long")
	}

	if insecureDefaults[c.AdminKey] {
		return fmt.Errorf("ADMIN_KEY must be set to a secure value")
	}

	if c.Creds.PassIV == "" {
		return fmt.Errorf("CREDS_PASS_IV must be set")
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
