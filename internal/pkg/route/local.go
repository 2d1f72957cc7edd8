// Package route provisions the local route that lets the load balancer bind
// to any address of the subnet.
package route

import (
	"errors"
	"fmt"
	"net"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/port"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// EnsureLocalRoute makes sure "local <subnet> dev <device>" exists in the
// local routing table. An existing local route for the subnet on any device
// is accepted as is.
func EnsureLocalRoute(networkMgr port.NetworkManager, subnet *net.IPNet, device string) error {
	logger := logging.WithComponent("route").WithField("subnet", subnet.String()).WithField("device", device)

	link, err := networkMgr.GetLinkByName(device)
	if err != nil {
		return fmt.Errorf("failed to get device for local route: %w", err)
	}

	routes, err := networkMgr.ListLocalRoutes()
	if err != nil {
		return fmt.Errorf("failed to list local routes: %w", err)
	}

	for _, r := range routes {
		if r.Type == unix.RTN_LOCAL && sameNetwork(r.Dst, subnet) {
			logger.WithField("link_index", r.LinkIndex).Debug("Local route already configured, skipping")
			return nil
		}
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       subnet,
		Table:     unix.RT_TABLE_LOCAL,
		Type:      unix.RTN_LOCAL,
		Scope:     netlink.SCOPE_HOST,
	}
	if err := networkMgr.AddRoute(route); err != nil {
		// lost a race against another writer
		if errors.Is(err, unix.EEXIST) {
			logger.Debug("Local route already exists, ignoring error")
			return nil
		}
		return fmt.Errorf("failed to add local route for %s: %w", subnet, err)
	}

	logger.Info("Added local route for subnet")
	return nil
}

func sameNetwork(a, b *net.IPNet) bool {
	if a == nil || b == nil {
		return false
	}
	aOnes, aBits := a.Mask.Size()
	bOnes, bBits := b.Mask.Size()
	return aOnes == bOnes && aBits == bBits && a.IP.Equal(b.IP)
}
