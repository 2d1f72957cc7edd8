// Package types defines common types used across the application.
package types

// Mode tells whether a cycle samples IPv6 addresses or uses the IPv4 fallback.
type Mode int

const (
	ModeIPv6 Mode = iota
	ModeIPv4
)

// String returns "ipv6" or "ipv4".
func (m Mode) String() string {
	if m == ModeIPv4 {
		return "ipv4"
	}
	return "ipv6"
}

// AddressPool is the set of addresses selected for one configuration cycle.
// It is never empty and never mixes address families.
type AddressPool struct {
	Addresses []string
	Mode      Mode
}

// RenderContext returns the template input for the pool.
func (p AddressPool) RenderContext() RenderContext {
	ips := make([]string, len(p.Addresses))
	copy(ips, p.Addresses)
	return RenderContext{
		IPs:     ips,
		UseIPv6: p.Mode == ModeIPv6,
	}
}

// RenderContext is the only data handed to the configuration template.
// Templates refer to it as {{ .IPs }} and {{ .UseIPv6 }}.
type RenderContext struct {
	IPs     []string
	UseIPv6 bool
}
