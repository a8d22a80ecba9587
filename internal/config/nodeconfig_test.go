package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const validNodeConfig = `{
	"node_info": {"name": "node-1", "location": "fsn1", "capacity": 100},
	"auth": {"jwt_secret": "0123456789abcdef0123456789abcdef"},
	"accounts": {"pass_iv": "some-iv-material"}
}`

func TestLoadNodeConfigFile(t *testing.T) {
	cfg, err := LoadNodeConfigFile(writeConfig(t, validNodeConfig))
	if err != nil {
		t.Fatalf("LoadNodeConfigFile: %v", err)
	}

	if cfg.NodeInfo.Name != "node-1" {
		t.Errorf("Name = %q", cfg.NodeInfo.Name)
	}
	if cfg.NodeInfo.Capacity == nil || *cfg.NodeInfo.Capacity != 100 {
		t.Errorf("Capacity = %v", cfg.NodeInfo.Capacity)
	}

	// Defaults fill the omitted sections.
	if cfg.Server.Port != "8010" {
		t.Errorf("Port = %q, want default 8010", cfg.Server.Port)
	}
	if cfg.Accounts.DefaultShell != "/bin/rbash" {
		t.Errorf("DefaultShell = %q", cfg.Accounts.DefaultShell)
	}
	if cfg.Accounts.UserPrefix != "sshmgmt" {
		t.Errorf("UserPrefix = %q", cfg.Accounts.UserPrefix)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want default 8", cfg.Workers)
	}
}

func TestLoadNodeConfigFileMissing(t *testing.T) {
	if _, err := LoadNodeConfigFile("/nonexistent/config.json"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadNodeConfigFileRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"invalid json",
			`{not json`,
			"parse node config",
		},
		{
			"missing name",
			`{"auth": {"jwt_secret": "0123456789abcdef0123456789abcdef"}, "accounts": {"pass_iv": "iv"}}`,
			"node_info.name is required",
		},
		{
			"short secret",
			`{"node_info": {"name": "n"}, "auth": {"jwt_secret": "short"}, "accounts": {"pass_iv": "iv"}}`,
			"at least 32 characters",
		},
		{
			"missing pass iv",
			`{"node_info": {"name": "n"}, "auth": {"jwt_secret": "0123456789abcdef0123456789abcdef"}}`,
			"pass_iv is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadNodeConfigFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadNodeConfigHonorsEnvOverride(t *testing.T) {
	path := writeConfig(t, validNodeConfig)
	t.Setenv("SSHMGMT_CONFIG", path)

	cfg, err := LoadNodeConfig()
	if err != nil {
		t.Fatalf("LoadNodeConfig: %v", err)
	}
	if cfg.NodeInfo.Name != "node-1" {
		t.Errorf("Name = %q", cfg.NodeInfo.Name)
	}
}
