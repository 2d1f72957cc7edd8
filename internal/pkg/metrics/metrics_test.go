//go:build unit

package metrics

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"ipv6-rotator/internal/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolBuilt(t *testing.T) {
	PoolBuilt(types.AddressPool{Addresses: []string{"2001:db8::1", "2001:db8::2"}, Mode: types.ModeIPv6})
	assert.Equal(t, float64(2), testutil.ToFloat64(poolAddresses))
	assert.Equal(t, float64(1), testutil.ToFloat64(ipv6Reachable))

	PoolBuilt(types.AddressPool{Addresses: []string{"203.0.113.10"}, Mode: types.ModeIPv4})
	assert.Equal(t, float64(1), testutil.ToFloat64(poolAddresses))
	assert.Equal(t, float64(0), testutil.ToFloat64(ipv6Reachable))
}

func TestCycleCompleted(t *testing.T) {
	before := testutil.ToFloat64(cycles.WithLabelValues("ipv4"))
	now := time.Unix(1700000000, 0)

	CycleCompleted(types.ModeIPv4, now)

	assert.Equal(t, before+1, testutil.ToFloat64(cycles.WithLabelValues("ipv4")))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(lastReload))
}

func TestServe(t *testing.T) {
	t.Run("ExposesCollectors", func(t *testing.T) {
		srv, err := Serve("127.0.0.1:0")
		require.NoError(t, err)
		defer srv.Close()

		resp, err := http.Get("http://" + srv.Addr + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "ipv6_rotator_pool_addresses")
	})

	t.Run("AddressInUse", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		srv, err := Serve(ln.Addr().String())
		assert.Nil(t, srv)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen for metrics")
	})
}
