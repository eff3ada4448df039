package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/ArbiterXofficial/arbiterx-quotes/config"
)

// helper to reset env vars with ARBITERX_ prefix between tests
func unsetArbiterxEnv() {
	for _, e := range os.Environ() {
		if len(e) > 9 && e[:9] == "ARBITERX_" {
			if idx := strings.Index(e, "="); idx != -1 {
				_ = os.Unsetenv(e[:idx])
			}
		}
	}
}

func TestLoadServiceConfig_FromEnv_Success(t *testing.T) {
	unsetArbiterxEnv()
	// set minimal valid envs
	_ = os.Setenv("ARBITERX_PORT", "8080")
	_ = os.Setenv("ARBITERX_HOST", "0.0.0.0")
	_ = os.Setenv("ARBITERX_ALLOWED_ORIGINS", "*")
	_ = os.Setenv("ARBITERX_ONEINCH_API_KEY", "env-key")
	_ = os.Setenv("ARBITERX_RATE_PER_MINUTE", "120")

	cfg, err := LoadServiceConfig(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected config, got nil")
	}
	if cfg.Port != 8080 || cfg.Host != "0.0.0.0" {
		t.Errorf("unexpected port/host: %v %v", cfg.Port, cfg.Host)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Errorf("expected at least one allowed origin")
	}
	// multi-word keys must decode from env into the struct
	if cfg.OneinchAPIKey != "env-key" {
		t.Errorf("expected 1inch api key from env, got %q", cfg.OneinchAPIKey)
	}
	if cfg.RatePerMinute != 120 {
		t.Errorf("expected rate_per_minute from env, got %d", cfg.RatePerMinute)
	}
	if cfg.OneinchURL != "https://api.1inch.dev" {
		t.Errorf("expected default 1inch url, got %q", cfg.OneinchURL)
	}
	if cfg.ProviderTimeoutSeconds != 10 {
		t.Errorf("expected default provider timeout of 10, got %d", cfg.ProviderTimeoutSeconds)
	}
}

func TestLoadServiceConfig_FromEnv_FailVerification(t *testing.T) {
	unsetArbiterxEnv()
	_ = os.Unsetenv("ARBITERX_HOST")
	// Run in empty dir so godotenv.Load() inside the loader doesn't set ARBITERX_* from a .env file
	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	_ = os.Chdir(t.TempDir())

	// missing HOST
	_ = os.Setenv("ARBITERX_PORT", "8080")
	_ = os.Setenv("ARBITERX_ALLOWED_ORIGINS", "*")

	_, err := LoadServiceConfig(nil)
	if err == nil {
		t.Fatalf("expected error due to missing host, got nil")
	}
}

func TestLoadServiceConfig_FromFile_Success(t *testing.T) {
	unsetArbiterxEnv()

	dir := t.TempDir()
	path := filepath.Join(dir, "service_config.toml")
	content := `
port = 9090
host = "127.0.0.1"
allowed_origins = ["https://example.com"]
oneinch_api_key = "test-key"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed writing temp config: %v", err)
	}

	cfgPath := path
	cfg, err := LoadServiceConfig(&cfgPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 9090 || cfg.Host != "127.0.0.1" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("unexpected allowed origins: %+v", cfg.AllowedOrigins)
	}
	if cfg.OneinchAPIKey != "test-key" {
		t.Errorf("unexpected 1inch api key: %q", cfg.OneinchAPIKey)
	}
}

func TestLoadServiceConfig_FromFile_WrongExtension(t *testing.T) {
	unsetArbiterxEnv()
	p := "config.yaml"
	_, err := LoadServiceConfig(&p)
	if err == nil {
		t.Fatalf("expected error for non-toml file")
	}
}

func TestLoadServiceConfig_FileOverridesEnv(t *testing.T) {
	unsetArbiterxEnv()
	// set env with different values
	_ = os.Setenv("ARBITERX_PORT", "8000")
	_ = os.Setenv("ARBITERX_HOST", "0.0.0.0")
	_ = os.Setenv("ARBITERX_ALLOWED_ORIGINS", "*")

	dir := t.TempDir()
	path := filepath.Join(dir, "service_config.toml")
	content := `
port = 7000
host = "1.2.3.4"
allowed_origins = ["https://a.com"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed writing temp config: %v", err)
	}
	cfgPath := path
	cfg, err := LoadServiceConfig(&cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7000 || cfg.Host != "1.2.3.4" {
		t.Errorf("expected file values to be used, got: %+v", cfg)
	}
}

func TestLoadServiceConfig_RejectsBadProviderTimeout(t *testing.T) {
	unsetArbiterxEnv()

	dir := t.TempDir()
	path := filepath.Join(dir, "service_config.toml")
	content := `
port = 9090
host = "127.0.0.1"
allowed_origins = ["*"]
provider_timeout_seconds = 0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed writing temp config: %v", err)
	}
	cfgPath := path
	if _, err := LoadServiceConfig(&cfgPath); err == nil {
		t.Fatalf("expected error for zero provider timeout")
	}
}
