package cmd

import (
	"context"
	"errors"
	"fmt"
	"ipv6-rotator/internal/adapter/infrastructure/file"
	"ipv6-rotator/internal/adapter/infrastructure/network"
	"ipv6-rotator/internal/adapter/infrastructure/probe"
	"ipv6-rotator/internal/adapter/infrastructure/reload"
	"ipv6-rotator/internal/adapter/infrastructure/render"
	"ipv6-rotator/internal/adapter/rotator"
	"ipv6-rotator/internal/pkg/addrgen"
	"ipv6-rotator/internal/pkg/config"
	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/pkg/metrics"
	"ipv6-rotator/internal/pkg/pool"
	"ipv6-rotator/internal/pkg/route"
	"ipv6-rotator/internal/port"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configFlag      string
	templateFlag    string
	outputFlag      string
	metricsAddrFlag string
)

// createConfigurationRotator wires the adapters for cfg into a control loop
func createConfigurationRotator(cfg *config.Config) (port.ConfigurationRotator, error) {
	logger := logging.GetLogger()

	generator, err := addrgen.NewGenerator(cfg.Subnet, nil)
	if err != nil {
		return nil, err
	}

	if cfg.LocalRoute.Device != "" {
		if err := route.EnsureLocalRoute(network.NewManagerAdapter(), generator.Subnet(), cfg.LocalRoute.Device); err != nil {
			return nil, err
		}
	}

	fileMgr := file.NewManagerAdapter()
	prober := probe.NewTCPProber(cfg.Probe.Port, cfg.ProbeTimeout())
	builder := pool.NewBuilder(generator, prober, cfg.IPCount, cfg.IPv4Address)
	renderer := render.NewRenderer(cfg.TemplatePath, fileMgr)
	reloader := reload.NewCommandReloader(cfg.Reload.Command)

	logger.WithFields(map[string]interface{}{
		"subnet":        cfg.Subnet,
		"ip_count":      cfg.IPCount,
		"ipv4_fallback": cfg.IPv4Address,
		"template":      cfg.TemplatePath,
		"reload":        strings.Join(reloader.Command(), " "),
	}).Info("Created configuration rotator")

	return rotator.NewManager(builder, renderer, fileMgr, reloader, cfg.OutputPath, cfg.IntervalDuration()), nil
}

// applyFlags lets explicitly set flags override the file and environment
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("template") {
		cfg.TemplatePath = templateFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = outputFlag
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Address = metricsAddrFlag
	}
}

// rotatorFactory builds the control loop for a validated configuration
type rotatorFactory func(cfg *config.Config) (port.ConfigurationRotator, error)

// handleShutdownSignals cancels on SIGINT or SIGTERM. The returned function
// stops listening.
func handleShutdownSignals(cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			logging.GetLogger().WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

// serve wires the rotator and runs it until ctx is cancelled or a cycle fails.
// Cancellation is a clean shutdown and returns nil.
func serve(ctx context.Context, cfg *config.Config, newRotator rotatorFactory) error {
	logger := logging.GetLogger()

	rot, err := newRotator(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to create configuration rotator")
		return err
	}

	if cfg.Metrics.Address != "" {
		srv, err := metrics.Serve(cfg.Metrics.Address)
		if err != nil {
			logger.WithError(err).Error("Failed to start metrics server")
			return err
		}
		defer srv.Close()
	}

	if err := rot.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Shutting down")
			return nil
		}
		return err
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Regenerate the HAProxy configuration on an interval and reload HAProxy",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Create context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The handler only requests termination; the loop stops at the next cycle boundary
		stop := handleShutdownSignals(cancel)
		defer stop()

		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		applyFlags(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation error: %w", err)
		}

		logging.InitLogger(cfg.Logging)
		logging.GetLogger().WithField("config_file", configFlag).Info("Starting daemon")

		return serve(ctx, cfg, createConfigurationRotator)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML), optional")
	serveCmd.Flags().StringVar(&templateFlag, "template", config.DefaultTemplatePath, "Path to the HAProxy configuration template")
	serveCmd.Flags().StringVar(&outputFlag, "output", config.DefaultOutputPath, "Path of the generated HAProxy configuration")
	serveCmd.Flags().StringVar(&metricsAddrFlag, "metrics-addr", "", "Serve prometheus metrics on this address")
	rootCmd.AddCommand(serveCmd)
}
