package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ArbiterXofficial/arbiterx-quotes/aggregator"
	"github.com/ArbiterXofficial/arbiterx-quotes/config"
	"github.com/ArbiterXofficial/arbiterx-quotes/metrics"
	"github.com/ArbiterXofficial/arbiterx-quotes/providers/lifi"
	"github.com/ArbiterXofficial/arbiterx-quotes/providers/oneinch"
	"github.com/ArbiterXofficial/arbiterx-quotes/providers/zerox"
	"github.com/ArbiterXofficial/arbiterx-quotes/registry"
	"github.com/ArbiterXofficial/arbiterx-quotes/rpc"
)

var log zerolog.Logger

func init() {
	// Initialize zerolog with console writer
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Logger()

	// Share the logger with the RPC package
	rpc.SetLogger(log)
}

func main() {
	configPath := flag.String("config", "", "service config file (toml); env vars are used when empty")
	flag.Parse()

	log.Info().Str("config", *configPath).Msg("Starting ArbiterX quote service")

	// Load service configuration
	var cfgPath *string
	if *configPath != "" {
		cfgPath = configPath
	}
	cfg, err := config.LoadServiceConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load service config")
	}

	// Load the chain/token registry
	reg := loadRegistry(cfg)
	log.Info().Int("chains", len(reg.Chains())).Msg("Registry loaded")

	// Register Prometheus metrics
	metrics.Init()

	// Build provider clients
	timeout := time.Duration(cfg.ProviderTimeoutSeconds) * time.Second

	oneinchClient, err := oneinch.NewClient(cfg.OneinchURL, cfg.OneinchAPIKey, timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create 1inch client")
	}
	zeroxClient, err := zerox.NewClient(cfg.ZeroxURL, cfg.ZeroxAPIKey, timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create 0x client")
	}
	lifiClient, err := lifi.NewClient(cfg.LifiURL, timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create lifi client")
	}

	agg := aggregator.New(
		reg,
		[]aggregator.DexQuoter{oneinchClient, zeroxClient},
		lifiClient,
		timeout,
	)

	// Create the server configuration
	serverConfig := buildServerConfig(cfg)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := rpc.NewServer(ctx, serverConfig, agg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			sigCh <- syscall.SIGTERM
		}
	}()

	// Wait for shutdown signal
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}

// loadRegistry resolves the chain/token registry: a remote source is fetched
// first when configured, then the local path is read, and the built-in
// tables stand in when neither is set.
func loadRegistry(cfg *config.ServiceConfig) *registry.Registry {
	path := cfg.RegistryPath

	if cfg.RegistrySource != "" {
		if path == "" {
			path = filepath.Join(os.TempDir(), "arbiterx-registry.toml")
		}
		log.Info().Str("source", cfg.RegistrySource).Str("path", path).Msg("Fetching registry")
		if err := config.FetchRegistry(cfg.RegistrySource, path); err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch registry")
		}
	}

	if path == "" {
		return registry.Default()
	}

	reg, err := config.NewRegistryLoader().LoadFromFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load registry")
	}
	return reg
}

// buildServerConfig converts the loaded ServiceConfig to rpc.ServerConfig
func buildServerConfig(cfg *config.ServiceConfig) *rpc.ServerConfig {
	serverConfig := &rpc.ServerConfig{
		Address:        cfg.Host + ":" + itoa(cfg.Port),
		AllowedOrigins: cfg.AllowedOrigins,
		EnableMetrics:  cfg.UsePrometheus, // Enable metrics endpoint if prometheus is enabled
	}

	// Set rate limiting if configured
	if cfg.RatePerMinute > 0 {
		serverConfig.RatePerMinute = &cfg.RatePerMinute
	}
	if cfg.MaxConcurrentRequests > 0 {
		serverConfig.MaxConcurrentRequests = &cfg.MaxConcurrentRequests
	}

	// Set OpenTelemetry configuration if any telemetry is enabled
	if cfg.EnableTracing || cfg.EnableMetrics || cfg.EnableLogs || cfg.UsePrometheus {
		serverConfig.OTelConfig = &rpc.OTelConfig{
			ServiceName:     defaultString(cfg.ServiceName, "arbiterx-quotes"),
			ServiceVersion:  defaultString(cfg.ServiceVersion, "1.0.0"),
			Environment:     defaultString(cfg.Environment, "development"),
			EnableTracing:   cfg.EnableTracing,
			UseOTLPTraces:   cfg.UseOTLPTraces,
			OTLPTracesURL:   cfg.OTLPTracesURL,
			EnableMetrics:   cfg.EnableMetrics,
			UsePrometheus:   cfg.UsePrometheus,
			UseOTLPMetrics:  cfg.UseOTLPMetrics,
			OTLPMetricsURL:  cfg.OTLPMetricsURL,
			EnableLogs:      cfg.EnableLogs,
			UseOTLPLogs:     cfg.UseOTLPLogs,
			OTLPLogsURL:     cfg.OTLPLogsURL,
			InsecureOTLP:    cfg.InsecureOTLP,
			DevelopmentMode: cfg.DevelopmentMode,
		}
	}

	return serverConfig
}

// itoa converts int to string without importing strconv
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	negative := i < 0
	if negative {
		i = -i
	}
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if negative {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// defaultString returns the default value if s is empty
func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
