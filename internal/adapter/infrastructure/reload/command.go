// Package reload asks the load balancer to re-read its configuration.
package reload

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"ipv6-rotator/internal/pkg/logging"
	"ipv6-rotator/internal/port"
	"ipv6-rotator/internal/types"
)

// DefaultCommand sends SIGUSR2 to HAProxy (PID 1 of its container), which makes
// the master process reload without dropping connections.
var DefaultCommand = []string{
	"docker-compose", "-p", "haproxy-ipv6-demux",
	"exec", "haproxy", "bash", "-c", "kill -USR2 1",
}

// CommandReloader is an adapter that implements the Reloader port by running
// an external command, normally a container orchestrator exec.
type CommandReloader struct {
	argv []string
}

// Ensure CommandReloader implements the Reloader port
var _ port.Reloader = (*CommandReloader)(nil)

// NewCommandReloader creates a reloader running argv. An empty argv selects DefaultCommand.
func NewCommandReloader(argv []string) *CommandReloader {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &CommandReloader{argv: append([]string(nil), argv...)}
}

// Command returns the command line that Reload runs.
func (r *CommandReloader) Command() []string {
	return append([]string(nil), r.argv...)
}

// Reload runs the command and waits for it. A start failure or non-zero exit
// is returned as types.ErrReload.
func (r *CommandReloader) Reload(ctx context.Context) error {
	logger := logging.WithComponent("reload").WithField("command", strings.Join(r.argv, " "))

	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		out := strings.TrimSpace(string(output))
		logger.WithError(err).WithField("output", out).Error("Reload command failed")
		if out != "" {
			return fmt.Errorf("%w: %s: %v: %s", types.ErrReload, r.argv[0], err, out)
		}
		return fmt.Errorf("%w: %s: %v", types.ErrReload, r.argv[0], err)
	}

	logger.Debug("Reload command finished")
	return nil
}
