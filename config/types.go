package config

// ServiceConfig is the full runtime configuration of the quote service,
// loaded either from ARBITERX_* environment variables or a TOML file.
// Both tag sets matter: toml for direct file parsing, mapstructure for
// viper.Unmarshal.
type ServiceConfig struct {
	// http server
	Port int    `toml:"port" mapstructure:"port"`
	Host string `toml:"host" mapstructure:"host"`

	// CORS
	AllowedOrigins []string `toml:"allowed_origins" mapstructure:"allowed_origins"`

	// rate limiting
	RatePerMinute         int `toml:"rate_per_minute" mapstructure:"rate_per_minute"`
	MaxConcurrentRequests int `toml:"max_concurrent_requests" mapstructure:"max_concurrent_requests"`

	// chain/token registry; empty means the compiled-in tables
	RegistryPath string `toml:"registry_path" mapstructure:"registry_path"`
	// optional go-getter source the registry file is fetched from at startup
	RegistrySource string `toml:"registry_source" mapstructure:"registry_source"`

	// upstream providers
	OneinchURL             string `toml:"oneinch_url" mapstructure:"oneinch_url"`
	OneinchAPIKey          string `toml:"oneinch_api_key" mapstructure:"oneinch_api_key"`
	ZeroxURL               string `toml:"zerox_url" mapstructure:"zerox_url"`
	ZeroxAPIKey            string `toml:"zerox_api_key" mapstructure:"zerox_api_key"`
	LifiURL                string `toml:"lifi_url" mapstructure:"lifi_url"`
	ProviderTimeoutSeconds int    `toml:"provider_timeout_seconds" mapstructure:"provider_timeout_seconds"`

	// OpenTelemetry
	ServiceName    string `toml:"service_name" mapstructure:"service_name"`
	ServiceVersion string `toml:"service_version" mapstructure:"service_version"`
	Environment    string `toml:"environment" mapstructure:"environment"` // PROD, DEV, TEST, LOCAL
	EnableTracing  bool   `toml:"enable_tracing" mapstructure:"enable_tracing"`
	UseOTLPTraces  bool   `toml:"use_otlp_traces" mapstructure:"use_otlp_traces"`
	OTLPTracesURL  string `toml:"otlp_traces_url" mapstructure:"otlp_traces_url"`
	EnableMetrics  bool   `toml:"enable_metrics" mapstructure:"enable_metrics"`
	UsePrometheus  bool   `toml:"use_prometheus" mapstructure:"use_prometheus"`
	UseOTLPMetrics bool   `toml:"use_otlp_metrics" mapstructure:"use_otlp_metrics"`
	OTLPMetricsURL string `toml:"otlp_metrics_url" mapstructure:"otlp_metrics_url"`
	EnableLogs     bool   `toml:"enable_logs" mapstructure:"enable_logs"`
	UseOTLPLogs    bool   `toml:"use_otlp_logs" mapstructure:"use_otlp_logs"`
	OTLPLogsURL    string `toml:"otlp_logs_url" mapstructure:"otlp_logs_url"`

	InsecureOTLP bool `toml:"insecure_otlp" mapstructure:"insecure_otlp"`

	// Development mode uses stdout exporters
	DevelopmentMode bool `toml:"development_mode" mapstructure:"development_mode"`
}
