// Package main is the entry point for credserve, a credibility review
// pipeline service that scores claims, tweets, websites, and articles by
// fanning out to external analytic services and aggregating their
// confidence-weighted verdicts into a content-addressable review graph.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coinform/credserve/consts"
	"github.com/coinform/credserve/internal/check"
	"github.com/coinform/credserve/internal/config"
	"github.com/coinform/credserve/internal/server"
	"github.com/coinform/credserve/internal/shared"
	"github.com/coinform/credserve/pkg/logger"
)

// Build information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "credserve",
	Short: "credserve - credibility review pipeline service",
	Long: `credserve reviews claims, tweets, websites, and articles for
credibility by delegating to external similarity, worthiness, and
website-credibility services, then aggregating their confidence-weighted
sub-reviews into a deduplicated, content-addressable review graph.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the credserve HTTP server",
	Long: `Start the HTTP server that handles claim, website, webpage, and
tweet credibility review requests.

Run 'credserve doctor' first to check that your configuration's external
services and cache backend are reachable.`,
	Run: runServe,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the configured services and cache backend are reachable",
	Long: `doctor validates the loaded configuration's shape, probes every
configured external service, and checks the cache backend, printing a
report. Pass --non-interactive for a CI-friendly run that never prompts
and exits non-zero on any error.`,
	Run: runDoctor,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("credserve %s\n", Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: configs/config.example.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("debug", false, "enable debug mode")

	doctorCmd.Flags().Bool("non-interactive", false, "run checks without prompting and exit non-zero on error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	consts.SetStartedAt(time.Now())

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Server.Debug = debug
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pipeline, err := shared.Init(ctx, cfg)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize pipeline: %v", err))
	}

	srv := server.New(cfg, pipeline)
	if err := srv.Start(); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start server: %v", err))
	}

	logger.Info(fmt.Sprintf("credserve is running at %s", cfg.Server.Address()))
	if lanIP := getLocalIP(); lanIP != "" {
		logger.Info(fmt.Sprintf("  Network: http://%s:%d", lanIP, cfg.Server.Port))
	}

	srv.WaitForShutdown()
	logger.Info("credserve stopped")
}

func runDoctor(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	checker := check.NewChecker(cfg)
	ctx := context.Background()

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if nonInteractive {
		result := checker.RunNonInteractive(ctx)
		check.PrintCheckResult(result)
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	if err := checker.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Doctor check failed: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration from configPath, defaulting to the
// checked-in example if no path was given.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = "configs/config.example.yaml"
	}
	if _, err := os.Stat(path); err != nil {
		if configPath == "" {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}

// getLocalIP returns the first non-loopback IPv4 address.
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
