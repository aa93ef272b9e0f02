package system

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// AptClient drives apt-get for the actual purge.
type AptClient struct {
	runner Runner
	binary string
	out    io.Writer
}

// NewAptClient builds a client that invokes the given apt binary (normally
// "apt-get") and writes apt's own output to out.
func NewAptClient(runner Runner, binary string, out io.Writer) *AptClient {
	if binary == "" {
		binary = "apt-get"
	}
	return &AptClient{runner: runner, binary: binary, out: out}
}

// Purge removes the named packages with their configuration. When simulate
// is true apt only prints what it would do; nothing is changed on disk.
// Confirmation is this tool's job, so the real run passes --assume-yes.
func (c *AptClient) Purge(ctx context.Context, names []string, simulate bool) error {
	if len(names) == 0 {
		return nil
	}
	args := []string{"purge"}
	if simulate {
		args = append(args, "--simulate")
	} else {
		args = append(args, "--assume-yes")
	}
	args = append(args, names...)

	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	if err := c.runner.Stream(ctx, c.out, env, c.binary, args...); err != nil {
		return fmt.Errorf("purge packages: %w", err)
	}
	return nil
}

// CheckBinary reports whether a command is available on PATH.
func CheckBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found on PATH", name)
	}
	return nil
}

// IsRoot reports whether the process runs with root privileges.
func IsRoot() bool {
	return os.Geteuid() == 0
}
