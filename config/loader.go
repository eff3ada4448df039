package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadServiceConfig loads the service config from the given TOML file, or
// from ARBITERX_* environment variables when configPath is nil.
func LoadServiceConfig(configPath *string) (*ServiceConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == nil {
		config, err := loadEnv(v)
		if err != nil {
			return nil, fmt.Errorf("failed to load env config: %w", err)
		}
		return config, nil
	}

	config, err := loadFile(v, *configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load file config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("oneinch_url", "https://api.1inch.dev")
	v.SetDefault("zerox_url", "https://api.0x.org")
	v.SetDefault("lifi_url", "https://li.quest")
	v.SetDefault("provider_timeout_seconds", 10)
	v.SetDefault("rate_per_minute", 0)
	v.SetDefault("max_concurrent_requests", 200)
}

func loadEnv(v *viper.Viper) (*ServiceConfig, error) {
	// godotenv may fail when no .env file exists; env can come from docker,
	// systemd or other means, so the error is skipped
	_ = godotenv.Load()
	v.SetEnvPrefix("ARBITERX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var config ServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal env config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}
	return &config, nil
}

// bindEnvKeys binds each config key to its env var so Unmarshal sees env
// values when no config file is loaded (env-only mode).
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"port", "host", "allowed_origins",
		"rate_per_minute", "max_concurrent_requests",
		"registry_path", "registry_source",
		"oneinch_url", "oneinch_api_key",
		"zerox_url", "zerox_api_key",
		"lifi_url", "provider_timeout_seconds",
		"service_name", "service_version", "environment",
		"enable_tracing", "use_otlp_traces", "otlp_traces_url",
		"enable_metrics", "use_prometheus", "use_otlp_metrics", "otlp_metrics_url",
		"enable_logs", "use_otlp_logs", "otlp_logs_url",
		"insecure_otlp", "development_mode",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func loadFile(v *viper.Viper, configPath string) (*ServiceConfig, error) {
	if !strings.HasSuffix(configPath, ".toml") {
		return nil, fmt.Errorf("config file must be a toml file")
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}

	return &config, nil
}

func verifyConfig(config *ServiceConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	if config.Host == "" {
		return fmt.Errorf("host is required")
	}

	if len(config.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed_origins is required")
	}

	if config.OneinchURL == "" || config.ZeroxURL == "" || config.LifiURL == "" {
		return fmt.Errorf("provider base urls must not be empty")
	}

	if config.ProviderTimeoutSeconds <= 0 {
		return fmt.Errorf("provider_timeout_seconds must be positive")
	}

	return nil
}
