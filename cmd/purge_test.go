package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MBarkerUK/apt-kernel-manager/internal/system"
	"github.com/MBarkerUK/apt-kernel-manager/types"
)

func TestExitStatus(t *testing.T) {
	assert.Equal(t, 0, exitStatus(nil))
	assert.Equal(t, 100, exitStatus(&system.ExitError{Command: "apt-get", Code: 100}))
	assert.Equal(t, 1, exitStatus(errors.New("boom")))
}

func TestPurgeFailureMessage(t *testing.T) {
	msg := purgeFailureMessage(&system.ExitError{Command: "apt-get", Code: 100})
	assert.Contains(t, msg, "exit status 100")

	assert.Equal(t, "apt-get purge failed.", purgeFailureMessage(errors.New("boom")))
}

func TestHistoryDir(t *testing.T) {
	orig := GlobalAppConfig
	defer func() { GlobalAppConfig = orig }()

	GlobalAppConfig = types.AppConfig{
		Project: types.ProjectConfig{RootDir: "/var/lib/akm"},
		History: types.HistoryConfig{Dir: "history"},
	}
	assert.Equal(t, filepath.Join("/var/lib/akm", "history"), HistoryDir())

	GlobalAppConfig.History.Dir = "/absolute/history"
	assert.Equal(t, "/absolute/history", HistoryDir())

	GlobalAppConfig.History.Dir = ""
	assert.Equal(t, filepath.Join("/var/lib/akm", "history"), HistoryDir())
}

func TestPurgeSummary(t *testing.T) {
	plan := testPlan(t)
	out := purgeSummary(plan)

	assert.Contains(t, out, "Purge complete")
	assert.Contains(t, out, "1 packages purged")
	// running 6.8.0-45 plus most recent 6.8.0-49 remain
	assert.Contains(t, out, "2 distinct kernel releases remain")
	// bordered box output
	assert.Contains(t, out, "│")
}

func TestSummarizeNames(t *testing.T) {
	assert.Equal(t, "-", summarizeNames(nil))
	assert.Equal(t, "pkg-a", summarizeNames([]string{"pkg-a"}))
	assert.Equal(t, "3 pkgs (pkg-a, ...)", summarizeNames([]string{"pkg-a", "pkg-b", "pkg-c"}))
}

func TestDefaultAllowlist(t *testing.T) {
	allow := defaultAllowlist()
	assert.Contains(t, allow, "linux-image-generic")
	assert.Contains(t, allow, "linux-image-amd64")
}
