package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"ipv6-rotator/internal/pkg/addrgen"
	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/types"

	"gopkg.in/yaml.v3"
)

// Environment variables read at startup. They override the config file.
const (
	EnvSubnet           = "SUBNET"
	EnvIPCount          = "IP_COUNT"
	EnvInterval         = "INTERVAL"
	EnvIPv4Address      = "IPV4_ADDRESS"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvMetricsAddress   = "METRICS_ADDR"
	EnvLocalRouteDevice = "LOCAL_ROUTE_DEVICE"
)

const (
	DefaultIPCount      = 100
	DefaultInterval     = 3600
	DefaultTemplatePath = "haproxy.cfg.tmpl"
	DefaultOutputPath   = "haproxy/haproxy.cfg"
	DefaultProbePort    = 80
	DefaultProbeTimeout = 3
)

// ProbeConfig represents the connectivity probe settings
type ProbeConfig struct {
	Port           int `yaml:"port"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ReloadConfig represents the load balancer reload command; empty selects the
// docker-compose default
type ReloadConfig struct {
	Command []string `yaml:"command"`
}

// MetricsConfig represents the prometheus endpoint; empty address disables it
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// LocalRouteConfig names the device a local route for the subnet is added on.
// Empty disables route provisioning.
type LocalRouteConfig struct {
	Device string `yaml:"device"`
}

// Config represents the runtime parameters. It is built once at startup and
// not modified afterwards.
type Config struct {
	Logging      logging.LogConfig `yaml:"logging"`
	Subnet       string            `yaml:"subnet"`
	IPCount      int               `yaml:"ip_count"`
	Interval     int               `yaml:"interval"` // seconds
	IPv4Address  string            `yaml:"ipv4_address"`
	TemplatePath string            `yaml:"template"`
	OutputPath   string            `yaml:"output"`
	Probe        ProbeConfig       `yaml:"probe"`
	Reload       ReloadConfig      `yaml:"reload"`
	Metrics      MetricsConfig     `yaml:"metrics"`
	LocalRoute   LocalRouteConfig  `yaml:"local_route"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "text",
		},
		IPCount:      DefaultIPCount,
		Interval:     DefaultInterval,
		TemplatePath: DefaultTemplatePath,
		OutputPath:   DefaultOutputPath,
		Probe: ProbeConfig{
			Port:           DefaultProbePort,
			TimeoutSeconds: DefaultProbeTimeout,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath and the process environment, in increasing precedence.
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields with the environment variables present in lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvSubnet:           &c.Subnet,
		EnvIPv4Address:      &c.IPv4Address,
		EnvLogLevel:         &c.Logging.Level,
		EnvLogFormat:        &c.Logging.Format,
		EnvMetricsAddress:   &c.Metrics.Address,
		EnvLocalRouteDevice: &c.LocalRoute.Device,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		EnvIPCount:  &c.IPCount,
		EnvInterval: &c.Interval,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", types.ErrConfiguration, name, v)
		}
		*dst = n
	}
	return nil
}

// Validate validates the configuration. IPv4Address may be empty; the pool
// builder rejects that only if IPv6 is unreachable.
func (c *Config) Validate() error {
	if c.Subnet == "" {
		return fmt.Errorf("%w: %s environment variable must be set", types.ErrConfiguration, EnvSubnet)
	}
	if _, err := addrgen.ParseSubnet(c.Subnet); err != nil {
		return err
	}
	if c.IPCount < 1 {
		return fmt.Errorf("%w: ip_count must be at least 1, got %d", types.ErrConfiguration, c.IPCount)
	}
	if c.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1 second, got %d", types.ErrConfiguration, c.Interval)
	}
	if c.IPv4Address != "" {
		if ip := net.ParseIP(c.IPv4Address); ip == nil || ip.To4() == nil {
			return fmt.Errorf("%w: ipv4_address %q is not an IPv4 address", types.ErrConfiguration, c.IPv4Address)
		}
	}
	if c.TemplatePath == "" {
		return fmt.Errorf("%w: template path is required", types.ErrConfiguration)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", types.ErrConfiguration)
	}
	if c.Probe.Port < 1 || c.Probe.Port > 65535 {
		return fmt.Errorf("%w: probe port %d out of range", types.ErrConfiguration, c.Probe.Port)
	}
	if c.Probe.TimeoutSeconds < 1 {
		return fmt.Errorf("%w: probe timeout must be at least 1 second", types.ErrConfiguration)
	}
	if len(c.Reload.Command) > 0 && c.Reload.Command[0] == "" {
		return fmt.Errorf("%w: reload command has an empty program name", types.ErrConfiguration)
	}
	return nil
}

// IntervalDuration returns the time between cycles
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// ProbeTimeout returns the connectivity probe timeout
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Probe.TimeoutSeconds) * time.Second
}
