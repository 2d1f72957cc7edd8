// Package addrgen draws random IPv6 addresses out of a subnet.
package addrgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net"
	"strings"

	"ipv6-rotator/internal/port"
	"ipv6-rotator/internal/types"

	"github.com/apparentlymart/go-cidr/cidr"
)

// Generator picks addresses uniformly over every address of an IPv6 subnet,
// network and last address included.
type Generator struct {
	subnet *net.IPNet
	span   *big.Int // number of addresses in the subnet
	random io.Reader
}

// Ensure Generator implements the AddressGenerator port
var _ port.AddressGenerator = (*Generator)(nil)

// ParseSubnet parses an IPv6 CIDR. A bare address is taken as a /128. The
// address must be the network address; IPv4 and IPv4-mapped networks are
// rejected.
func ParseSubnet(subnet string) (*net.IPNet, error) {
	if !strings.Contains(subnet, "/") {
		subnet += "/128"
	}
	ip, network, err := net.ParseCIDR(subnet)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subnet %q: %v", types.ErrConfiguration, subnet, err)
	}
	if _, bits := network.Mask.Size(); bits != 128 {
		return nil, fmt.Errorf("%w: subnet %q is not an IPv6 network", types.ErrConfiguration, subnet)
	}
	if network.IP.To4() != nil {
		return nil, fmt.Errorf("%w: subnet %q is an IPv4-mapped network", types.ErrConfiguration, subnet)
	}
	if !ip.Equal(network.IP) {
		return nil, fmt.Errorf("%w: subnet %q has host bits set", types.ErrConfiguration, subnet)
	}
	return network, nil
}

// NewGenerator creates a generator for subnet. A nil random source means crypto/rand.
func NewGenerator(subnet string, random io.Reader) (*Generator, error) {
	network, err := ParseSubnet(subnet)
	if err != nil {
		return nil, err
	}
	if random == nil {
		random = rand.Reader
	}

	ones, bits := network.Mask.Size()
	span := new(big.Int).Lsh(big.NewInt(1), uint(bits-ones))

	return &Generator{
		subnet: network,
		span:   span,
		random: random,
	}, nil
}

// Subnet returns a copy of the parsed subnet.
func (g *Generator) Subnet() *net.IPNet {
	return &net.IPNet{
		IP:   append(net.IP(nil), g.subnet.IP...),
		Mask: append(net.IPMask(nil), g.subnet.Mask...),
	}
}

// Generate returns one random address of the subnet. Successive calls are
// independent, so repeats are possible.
func (g *Generator) Generate() (net.IP, error) {
	n, err := rand.Int(g.random, g.span)
	if err != nil {
		return nil, fmt.Errorf("failed to read random host number: %w", err)
	}

	ip, err := cidr.HostBig(g.subnet, n)
	if err != nil {
		return nil, fmt.Errorf("failed to compute host %s in %s: %w", n, g.subnet, err)
	}
	return ip, nil
}
