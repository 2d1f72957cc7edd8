//go:build integration
// +build integration

package test

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"testing"
	"time"
)

const fallbackIPv4 = "203.0.113.10"

// buildBinary compiles the daemon once into a temporary directory
func buildBinary(t *testing.T) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "ipv6-rotator")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join("..") // project root
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// workDir prepares a working directory with the sample template and a config file
func workDir(t *testing.T, withTemplate bool, configYAML string) string {
	t.Helper()

	dir := t.TempDir()
	if withTemplate {
		tmpl, err := os.ReadFile(filepath.Join("..", "haproxy.cfg.tmpl"))
		if err != nil {
			t.Fatalf("Failed to read sample template: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "haproxy.cfg.tmpl"), tmpl, 0644); err != nil {
			t.Fatalf("Failed to write template: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}

func daemon(bin, dir string, env ...string) (*exec.Cmd, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := exec.Command(bin, "serve", "--config", "config.yml")
	cmd.Dir = dir
	cmd.Env = append([]string{"PATH=" + os.Getenv("PATH")}, env...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	return cmd, &out
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

// waitForFile polls until path exists or the timeout expires
func waitForFile(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("%s was not created within %s", path, timeout)
}

func TestRotatorIntegration(t *testing.T) {
	bin := buildBinary(t)

	t.Run("Missing_Subnet_Fails_At_Startup", func(t *testing.T) {
		dir := workDir(t, true, "reload:\n  command: [\"true\"]\n")
		cmd, out := daemon(bin, dir)

		err := cmd.Run()
		if exitCode(err) == 0 {
			t.Fatalf("Expected non-zero exit, output:\n%s", out)
		}
		if !strings.Contains(out.String(), "SUBNET environment variable must be set") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("Missing_Template_Fails_Before_Write", func(t *testing.T) {
		marker := filepath.Join(t.TempDir(), "reloaded")
		dir := workDir(t, false, fmt.Sprintf("reload:\n  command: [\"touch\", %q]\n", marker))
		cmd, out := daemon(bin, dir, "SUBNET=2001:db8::/32", "IPV4_ADDRESS="+fallbackIPv4)

		err := cmd.Run()
		if exitCode(err) == 0 {
			t.Fatalf("Expected non-zero exit, output:\n%s", out)
		}
		if !strings.Contains(out.String(), "template file not found") {
			t.Errorf("Unexpected output:\n%s", out)
		}
		if _, err := os.Stat(filepath.Join(dir, "haproxy", "haproxy.cfg")); err == nil {
			t.Error("Configuration was written although the template is missing")
		}
		if _, err := os.Stat(marker); err == nil {
			t.Error("Reload ran although the template is missing")
		}
	})

	t.Run("Reload_Failure_After_Write", func(t *testing.T) {
		configYAML := "probe:\n  port: 9\n  timeout_seconds: 1\nreload:\n  command: [\"false\"]\n"
		dir := workDir(t, true, configYAML)
		cmd, out := daemon(bin, dir, "SUBNET=2001:db8::/32", "IPV4_ADDRESS="+fallbackIPv4)

		err := cmd.Run()
		if exitCode(err) == 0 {
			t.Fatalf("Expected non-zero exit, output:\n%s", out)
		}

		data, readErr := os.ReadFile(filepath.Join(dir, "haproxy", "haproxy.cfg"))
		if readErr != nil {
			t.Fatalf("Configuration was not written before reload: %v\n%s", readErr, out)
		}
		text := string(data)
		if !strings.Contains(text, "# address-mode: ipv4") {
			t.Errorf("Missing IPv4 mode marker:\n%s", text)
		}
		if strings.Count(text, fallbackIPv4) != 1 {
			t.Errorf("Expected %s exactly once:\n%s", fallbackIPv4, text)
		}
	})

	t.Run("Unreachable_Without_Fallback_Fails", func(t *testing.T) {
		configYAML := "probe:\n  port: 9\n  timeout_seconds: 1\nreload:\n  command: [\"true\"]\n"
		dir := workDir(t, true, configYAML)
		cmd, out := daemon(bin, dir, "SUBNET=2001:db8::/32")

		err := cmd.Run()
		if exitCode(err) == 0 {
			t.Fatalf("Expected non-zero exit, output:\n%s", out)
		}
		if !strings.Contains(out.String(), "IPV4_ADDRESS must be set") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("IPv6_Pool_And_Graceful_Shutdown", func(t *testing.T) {
		ln, err := net.Listen("tcp6", "[::1]:0")
		if err != nil {
			t.Skip("IPv6 loopback not available, skipping test")
		}
		defer ln.Close()
		go func() {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				conn.Close()
			}
		}()
		port := ln.Addr().(*net.TCPAddr).Port

		// the reload command leaves a marker once the configuration is written
		marker := filepath.Join(t.TempDir(), "reloaded")
		configYAML := fmt.Sprintf("probe:\n  port: %d\nreload:\n  command: [\"touch\", %q]\n", port, marker)
		dir := workDir(t, true, configYAML)
		cmd, out := daemon(bin, dir, "SUBNET=::1/128", "IP_COUNT=5", "INTERVAL=3600")

		if err := cmd.Start(); err != nil {
			t.Fatalf("Failed to start daemon: %v", err)
		}

		waitForFile(t, marker, 10*time.Second)
		data, err := os.ReadFile(filepath.Join(dir, "haproxy", "haproxy.cfg"))
		if err != nil {
			t.Fatalf("Failed to read configuration: %v", err)
		}
		text := string(data)
		if !strings.Contains(text, "# address-mode: ipv6") {
			t.Errorf("Missing IPv6 mode marker:\n%s", text)
		}
		servers := regexp.MustCompile(`source ipv6@::1\n`).FindAllString(text, -1)
		if len(servers) != 5 {
			t.Errorf("Expected 5 IPv6 servers, got %d:\n%s", len(servers), text)
		}

		// let the cycle finish so the loop is sleeping
		time.Sleep(500 * time.Millisecond)
		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
			t.Fatalf("Failed to signal daemon: %v", err)
		}

		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()
		select {
		case err := <-done:
			if code := exitCode(err); code != 0 {
				t.Errorf("Expected exit 0 on SIGTERM, got %d:\n%s", code, out)
			}
		case <-time.After(10 * time.Second):
			cmd.Process.Kill()
			t.Fatalf("Daemon did not stop after SIGTERM:\n%s", out)
		}
		if !strings.Contains(out.String(), "Received shutdown signal") {
			t.Errorf("Missing shutdown log:\n%s", out)
		}
	})
}
