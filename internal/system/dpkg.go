package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MBarkerUK/apt-kernel-manager/internal/kernel"
	"github.com/spf13/afero"
)

// osReleasePath is the kernel's own report of the running release,
// equivalent to `uname -r`.
const osReleasePath = "/proc/sys/kernel/osrelease"

// DpkgClient reads the installed kernel package set from dpkg.
type DpkgClient struct {
	runner Runner
	fs     afero.Fs
}

// NewDpkgClient builds a client on the given runner and filesystem. Tests
// pass a fake runner and an afero.MemMapFs.
func NewDpkgClient(runner Runner, fs afero.Fs) *DpkgClient {
	return &DpkgClient{runner: runner, fs: fs}
}

// ListKernelPackages runs `dpkg --list linux-*` and parses the installed
// kernel packages out of the listing.
func (c *DpkgClient) ListKernelPackages(ctx context.Context) ([]kernel.Package, error) {
	out, err := c.runner.Output(ctx, "dpkg", "--list", "linux-*")
	if err != nil {
		// dpkg exits 1 when the pattern matches no packages; that is an
		// empty result, not a failure.
		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 1 {
			return nil, fmt.Errorf("list installed packages: %w", err)
		}
	}
	pkgs, err := kernel.ParseDpkgList(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("parse dpkg listing: %w", err)
	}
	return pkgs, nil
}

// RunningRelease returns the bare release of the booted kernel, with the
// flavor suffix stripped ("6.8.0-45-generic" -> "6.8.0-45").
func (c *DpkgClient) RunningRelease() (string, error) {
	raw, err := afero.ReadFile(c.fs, osReleasePath)
	if err != nil {
		return "", fmt.Errorf("read running kernel release: %w", err)
	}
	release := strings.TrimSpace(string(raw))
	if release == "" {
		return "", fmt.Errorf("empty kernel release in %s", osReleasePath)
	}
	return kernel.StripFlavor(release), nil
}
