package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// DefaultNodeConfigPath is where the agent looks for its config file unless
// SSHMGMT_CONFIG points elsewhere.
const DefaultNodeConfigPath = "/etc/sshmgmt_config.json"

// NodeInfo is the node's self-description, served unauthenticated on the
// info path.
type NodeInfo struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Capacity *uint64 `json:"capacity"`
}

// NodeConfig is the node-api configuration, loaded once at process start
// from a fixed JSON file. All secret material is injected here; the binary
// carries no compiled-in defaults for it.
type NodeConfig struct {
	NodeInfo NodeInfo `json:"node_info"`

	Server struct {
		Port string `json:"port"`
		Mode string `json:"mode"`
	} `json:"server"`

	Auth struct {
		JWTSecret string `json:"jwt_secret"`
	} `json:"auth"`

	Accounts struct {
		DefaultShell string `json:"default_shell"`
		UserPrefix   string `json:"user_prefix"`
		GroupPrefix  string `json:"group_prefix"`
		PassPrefix   string `json:"pass_prefix"`
		PassIV       string `json:"pass_iv"`
		CryptSalt    string `json:"crypt_salt"`
	} `json:"accounts"`

	Usage struct {
		TracePath string `json:"trace_path"`
	} `json:"usage"`

	Workers int `json:"workers"`
}

// LoadNodeConfig reads and validates the agent configuration.
func LoadNodeConfig() (*NodeConfig, error) {
	path := getEnv("SSHMGMT_CONFIG", DefaultNodeConfigPath)
	return LoadNodeConfigFile(path)
}

func LoadNodeConfigFile(path string) (*NodeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read node config %s: %w", path, err)
	}

	cfg := &NodeConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse node config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("[config] node-api loaded: name=%s location=%s port=%s",
		cfg.NodeInfo.Name, cfg.NodeInfo.Location, cfg.Server.Port)

	return cfg, nil
}

func (c *NodeConfig) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8010"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Accounts.DefaultShell == "" {
		c.Accounts.DefaultShell = "/bin/rbash"
	}
	if c.Accounts.UserPrefix == "" {
		c.Accounts.UserPrefix = "sshmgmt"
	}
	if c.Accounts.GroupPrefix == "" {
		c.Accounts.GroupPrefix = "grp"
	}
	if c.Accounts.PassPrefix == "" {
		c.Accounts.PassPrefix = "SSHMGMTKIT_"
	}
	if c.Usage.TracePath == "" {
		c.Usage.TracePath = "/tmp/log"
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
}

func (c *NodeConfig) validate() error {
	if c.NodeInfo.Name == "" {
		return fmt.Errorf("node config: node_info.name is required")
	}
	if insecureDefaults[c.Auth.JWTSecret] {
		return fmt.Errorf("node config: auth.jwt_secret must be set to a secure value")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("node config: auth.jwt_secret must be at least 32 characters long")
	}
	if c.Accounts.PassIV == "" {
		return fmt.Errorf("node config: accounts.pass_iv is required")
	}
	return nil
}
