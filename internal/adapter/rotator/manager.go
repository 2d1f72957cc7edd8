// Package rotator drives the periodic configuration rotation.
package rotator

import (
	"context"
	"fmt"
	"time"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/pkg/metrics"
	"ipv6-rotator/internal/port"
)

const configFilePerm = 0644

// Manager is the control loop that implements the ConfigurationRotator port.
// It is single threaded: a cycle always finishes, or fails the whole run,
// before the next one starts.
type Manager struct {
	builder    port.PoolBuilder
	renderer   port.ConfigRenderer
	fileMgr    port.FileManager
	reloader   port.Reloader
	outputPath string
	interval   time.Duration
	now        func() time.Time
}

// Ensure Manager implements the ConfigurationRotator port
var _ port.ConfigurationRotator = (*Manager)(nil)

// NewManager creates a control loop writing to outputPath every interval.
func NewManager(builder port.PoolBuilder, renderer port.ConfigRenderer, fileMgr port.FileManager, reloader port.Reloader, outputPath string, interval time.Duration) *Manager {
	return &Manager{
		builder:    builder,
		renderer:   renderer,
		fileMgr:    fileMgr,
		reloader:   reloader,
		outputPath: outputPath,
		interval:   interval,
		now:        time.Now,
	}
}

// Run executes cycles until ctx is cancelled or a cycle fails. Cancellation is
// only observed between cycles, so a cycle in flight runs to completion.
func (m *Manager) Run(ctx context.Context) error {
	logger := logging.WithComponent("rotator").WithField("output", m.outputPath)
	logger.WithField("interval", m.interval.String()).Info("Starting configuration rotation")

	cycleCtx := context.WithoutCancel(ctx)

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("Configuration rotation stopped due to context cancellation")
			return err
		}

		if err := m.RunCycle(cycleCtx); err != nil {
			logger.WithError(err).Error("Configuration cycle failed")
			return err
		}

		timer := time.NewTimer(m.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Configuration rotation stopped due to context cancellation")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// RunCycle checks the template, builds the pool, renders and writes the
// configuration, then reloads the load balancer, in that order.
func (m *Manager) RunCycle(ctx context.Context) error {
	if err := m.renderer.CheckTemplate(); err != nil {
		return err
	}

	pool, err := m.builder.Build(ctx)
	if err != nil {
		return err
	}
	metrics.PoolBuilt(pool)

	logger := logging.WithComponentAndMode("rotator", pool.Mode.String())

	rendered, err := m.renderer.Render(pool.RenderContext())
	if err != nil {
		return err
	}

	if err := m.fileMgr.WriteFile(m.outputPath, rendered, configFilePerm); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.WithField("path", m.outputPath).
		WithField("addresses", len(pool.Addresses)).
		Info("Rendered configuration saved")

	if err := m.reloader.Reload(ctx); err != nil {
		return fmt.Errorf("failed to reload load balancer: %w", err)
	}
	metrics.CycleCompleted(pool.Mode, m.now())
	logger.Info("Load balancer reloaded successfully")

	return nil
}
