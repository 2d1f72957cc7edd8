// Package metrics exposes prometheus collectors for the rotation cycle.
package metrics

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipv6_rotator"

var (
	cycles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_total",
		Help:      "Number of completed configuration cycles, by address mode.",
	}, []string{"mode"})

	poolAddresses = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_addresses",
		Help:      "Number of addresses written in the last configuration.",
	})

	ipv6Reachable = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ipv6_reachable_bool",
		Help:      "1 if the last connectivity probe reached the IPv6 subnet.",
	})

	lastReload = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_reload_timestamp_seconds",
		Help:      "Unix time of the last successful load balancer reload.",
	})
)

func init() {
	prometheus.MustRegister(cycles)
	prometheus.MustRegister(poolAddresses)
	prometheus.MustRegister(ipv6Reachable)
	prometheus.MustRegister(lastReload)
}

// PoolBuilt records the outcome of the connectivity probe and the pool size.
func PoolBuilt(pool types.AddressPool) {
	poolAddresses.Set(float64(len(pool.Addresses)))
	if pool.Mode == types.ModeIPv6 {
		ipv6Reachable.Set(1)
	} else {
		ipv6Reachable.Set(0)
	}
}

// CycleCompleted records a cycle whose reload succeeded at t.
func CycleCompleted(mode types.Mode, t time.Time) {
	cycles.WithLabelValues(mode.String()).Inc()
	lastReload.Set(float64(t.Unix()))
}

// Serve binds addr and serves /metrics on it in the background. A bind
// failure is returned. The returned server is shut down by the caller and its
// Addr holds the bound address.
func Serve(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger := logging.WithComponent("metrics").WithField("address", srv.Addr)
	logger.Info("Serving metrics")
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()
	return srv, nil
}
