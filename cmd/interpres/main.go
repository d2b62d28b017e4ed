package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/interpres/internal/common"
	"github.com/ternarybob/interpres/internal/reference"
	"github.com/ternarybob/interpres/internal/server"
	"github.com/ternarybob/interpres/internal/services/query"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	oneShotQuery = flag.String("query", "", "Interpret one query, print the result as JSON, and exit")
	showVersion  = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Interpres version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("interpres.toml"); err == nil {
			configFiles = append(configFiles, "interpres.toml")
		}
	}

	// Startup sequence: config -> CLI overrides -> logger -> banner
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	common.ApplyFlagOverrides(config, *serverPort, *serverHost)

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	data, err := reference.Load(config.Interpreter.ReferenceFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", config.Interpreter.ReferenceFile).Msg("Failed to load reference data")
		os.Exit(1)
	}

	querySvc := query.NewService(data, logger).
		WithDefaultTicker(config.Interpreter.DefaultTicker).
		WithConcurrentExtraction()
	if !config.Interpreter.PreferFiscal {
		querySvc = querySvc.WithCalendarPreference()
	}

	// One-shot mode: interpret, print, exit
	if *oneShotQuery != "" {
		result, err := querySvc.Interpret(context.Background(), *oneShotQuery)
		if err != nil {
			logger.Fatal().Err(err).Msg("Interpretation failed")
			os.Exit(1)
		}
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to encode result")
			os.Exit(1)
		}
		fmt.Println(string(encoded))
		return
	}

	logger.Info().
		Strs("config_files", configFiles).
		Int("port", config.Server.Port).
		Str("host", config.Server.Host).
		Msg("Application configuration loaded")

	srv := server.New(config, logger, querySvc)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("Interrupt signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
