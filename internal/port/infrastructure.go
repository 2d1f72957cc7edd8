// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
	"net"

	"ipv6-rotator/internal/types"

	"github.com/vishvananda/netlink"
)

//go:generate mockgen -source=infrastructure.go -destination=../mock/mock_infrastructure.go -package=mock

// AddressGenerator is a port for drawing random addresses out of a subnet.
type AddressGenerator interface {
	// Generate returns one address chosen uniformly over the whole subnet
	Generate() (net.IP, error)
}

// ConnectivityProber is a port for classifying outbound IPv6 reachability.
type ConnectivityProber interface {
	// Probe makes one short-lived connection attempt to addr.
	// Any failure is reported as false.
	Probe(ctx context.Context, addr net.IP) bool
}

// ConfigRenderer is a port for turning a RenderContext into configuration text.
type ConfigRenderer interface {
	// CheckTemplate fails with types.ErrMissingResource if the template is absent
	CheckTemplate() error

	// Render produces the configuration text for rc
	Render(rc types.RenderContext) ([]byte, error)
}

// Reloader is a port for asking the load balancer to reload its configuration.
type Reloader interface {
	// Reload blocks until the reload command finished
	Reload(ctx context.Context) error
}

// NetworkManager is a port for the netlink operations used for local routes.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListLocalRoutes returns IPv6 routes of the local routing table
	ListLocalRoutes() ([]netlink.Route, error)

	// AddRoute adds a route
	AddRoute(route *netlink.Route) error
}

// FileManager is a port for file system operations.
// This interface abstracts file read/write operations.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile replaces the file with data using the specified permissions
	WriteFile(filename string, data []byte, perm int) error

	// FileExists checks if a file exists
	FileExists(filename string) bool
}
