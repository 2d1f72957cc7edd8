// Package probe provides the outbound IPv6 connectivity prober.
package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/port"
)

const (
	DefaultPort    = 80
	DefaultTimeout = 3 * time.Second
)

// TCPProber is an adapter that implements the ConnectivityProber port with a
// single TCP connect over IPv6.
type TCPProber struct {
	port    int
	timeout time.Duration
	dialer  func(ctx context.Context, network, address string) (net.Conn, error)
}

// Ensure TCPProber implements the ConnectivityProber port
var _ port.ConnectivityProber = (*TCPProber)(nil)

// NewTCPProber creates a prober dialing the given port. Zero values select
// DefaultPort and DefaultTimeout.
func NewTCPProber(dstPort int, timeout time.Duration) *TCPProber {
	if dstPort == 0 {
		dstPort = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &net.Dialer{}
	return &TCPProber{
		port:    dstPort,
		timeout: timeout,
		dialer:  d.DialContext,
	}
}

// Probe reports whether a TCP connection to addr could be established within the timeout.
func (p *TCPProber) Probe(ctx context.Context, addr net.IP) bool {
	logger := logging.WithComponent("probe").WithField("address", addr.String())

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer(ctx, "tcp6", net.JoinHostPort(addr.String(), strconv.Itoa(p.port)))
	if err != nil {
		logger.WithError(err).Debug("IPv6 probe failed")
		return false
	}
	defer conn.Close()

	logger.Debug("IPv6 probe succeeded")
	return true
}
