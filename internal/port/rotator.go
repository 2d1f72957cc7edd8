// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"

	"ipv6-rotator/internal/types"
)

//go:generate mockgen -source=rotator.go -destination=../mock/mock_rotator.go -package=mock

// ConfigurationRotator is the primary port of the daemon.
// An implementation regenerates the load balancer configuration on an interval
// and asks the load balancer to reload it.
type ConfigurationRotator interface {
	// Run executes cycles until the context is cancelled or a cycle fails.
	// Cancellation is only observed between cycles; it returns context.Canceled
	// in that case and the cycle error otherwise.
	Run(ctx context.Context) error

	// RunCycle executes one generate, render, write and reload cycle.
	RunCycle(ctx context.Context) error
}

// PoolBuilder decides the operating mode for a cycle and returns its address pool.
type PoolBuilder interface {
	Build(ctx context.Context) (types.AddressPool, error)
}
