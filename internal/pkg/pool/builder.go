// Package pool decides the operating mode of a cycle and builds its address pool.
package pool

import (
	"context"
	"fmt"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/port"
	"ipv6-rotator/internal/types"
)

// Builder implements the PoolBuilder port. The probe runs on every Build call;
// reachability is never cached between cycles.
type Builder struct {
	generator    port.AddressGenerator
	prober       port.ConnectivityProber
	count        int
	ipv4Fallback string
}

// Ensure Builder implements the PoolBuilder port
var _ port.PoolBuilder = (*Builder)(nil)

// NewBuilder creates a builder returning count IPv6 addresses when IPv6 is
// reachable and ipv4Fallback otherwise. ipv4Fallback may be empty; that only
// becomes an error once IPv6 turns out to be unreachable.
func NewBuilder(generator port.AddressGenerator, prober port.ConnectivityProber, count int, ipv4Fallback string) *Builder {
	return &Builder{
		generator:    generator,
		prober:       prober,
		count:        count,
		ipv4Fallback: ipv4Fallback,
	}
}

// Build probes one random subnet address and returns the pool for the resulting mode.
func (b *Builder) Build(ctx context.Context) (types.AddressPool, error) {
	logger := logging.WithComponent("pool")

	probeAddr, err := b.generator.Generate()
	if err != nil {
		return types.AddressPool{}, fmt.Errorf("failed to generate probe address: %w", err)
	}

	if b.prober.Probe(ctx, probeAddr) {
		addrs := make([]string, 0, b.count)
		for i := 0; i < b.count; i++ {
			ip, err := b.generator.Generate()
			if err != nil {
				return types.AddressPool{}, fmt.Errorf("failed to generate pool address: %w", err)
			}
			addrs = append(addrs, ip.String())
		}
		logger.WithField("probe", probeAddr.String()).WithField("addresses", len(addrs)).Info("IPv6 reachable, using IPv6 pool")
		return types.AddressPool{Addresses: addrs, Mode: types.ModeIPv6}, nil
	}

	if b.ipv4Fallback == "" {
		return types.AddressPool{}, fmt.Errorf("%w: IPV4_ADDRESS must be set for IPv4 fallback", types.ErrConfiguration)
	}

	logger.WithField("probe", probeAddr.String()).WithField("address", b.ipv4Fallback).Warn("IPv6 unreachable, falling back to IPv4")
	return types.AddressPool{Addresses: []string{b.ipv4Fallback}, Mode: types.ModeIPv4}, nil
}
