package types

import "errors"

// Error kinds. Every one of them is fatal to the process.
var (
	// ErrConfiguration covers missing or invalid runtime parameters, including
	// a missing IPv4 fallback when IPv6 is unreachable.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingResource is returned when the configuration template is absent.
	ErrMissingResource = errors.New("missing resource")

	// ErrReload is returned when the load balancer reload command fails.
	ErrReload = errors.New("reload failed")
)
