/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/MBarkerUK/apt-kernel-manager/internal/system"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and diagnose issues",
	Long: `Validate that this host can be managed by apt-kernel-manager.

Checks:
  • dpkg and apt-get are available on PATH
  • The running kernel release can be determined
  • Root privileges (required for a real purge)
  • Configuration is valid
  • History directory is writable

Use this to troubleshoot before running a purge.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string
	Status  string // "ok", "warn", "fail"
	Message string
	Hint    string
}

func runDoctor() error {
	fmt.Println("🩺 apt-kernel-manager Doctor")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	checks := []DoctorCheck{
		checkBinary("dpkg"),
		checkBinary(GetConfig().Apt.Binary),
		checkRunningRelease(),
		checkPrivileges(),
		checkRetention(),
		checkHistoryDir(),
	}

	hasErrors := false
	for _, c := range checks {
		printCheck(c)
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if hasErrors {
		fmt.Println("❌ Issues found. Fix the errors above before purging.")
	} else {
		fmt.Println("✅ Everything looks good!")
	}
	return nil
}

func printCheck(c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}
	fmt.Printf("%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" {
		fmt.Printf("   ↳ %s\n", c.Hint)
	}
}

func checkBinary(name string) DoctorCheck {
	if err := system.CheckBinary(name); err != nil {
		return DoctorCheck{
			Name:    name,
			Status:  "fail",
			Message: "not found on PATH",
			Hint:    "Is this a Debian-family system?",
		}
	}
	return DoctorCheck{Name: name, Status: "ok", Message: "found on PATH"}
}

func checkRunningRelease() DoctorCheck {
	release, err := newDpkgClient().RunningRelease()
	if err != nil {
		return DoctorCheck{
			Name:    "Running kernel",
			Status:  "fail",
			Message: "could not determine the running kernel release",
			Hint:    err.Error(),
		}
	}
	return DoctorCheck{Name: "Running kernel", Status: "ok", Message: release}
}

func checkPrivileges() DoctorCheck {
	if !system.IsRoot() {
		return DoctorCheck{
			Name:    "Privileges",
			Status:  "warn",
			Message: "not running as root",
			Hint:    "list and dry-run work unprivileged; a real purge needs sudo",
		}
	}
	return DoctorCheck{Name: "Privileges", Status: "ok", Message: "running as root"}
}

func checkRetention() DoctorCheck {
	cfg := GetConfig()
	if cfg.Retention.Keep < 1 {
		return DoctorCheck{
			Name:    "Retention policy",
			Status:  "fail",
			Message: fmt.Sprintf("retention.keep is %d", cfg.Retention.Keep),
			Hint:    "at least one kernel release must be kept",
		}
	}
	return DoctorCheck{
		Name:   "Retention policy",
		Status: "ok",
		Message: fmt.Sprintf("keep %d releases, %d allow-list entries",
			cfg.Retention.Keep, len(cfg.Retention.Allowlist)),
	}
}

func checkHistoryDir() DoctorCheck {
	cfg := GetConfig()
	if !cfg.History.Enabled {
		return DoctorCheck{Name: "History", Status: "warn", Message: "disabled in config"}
	}
	dir := HistoryDir()
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return DoctorCheck{
			Name:    "History",
			Status:  "fail",
			Message: fmt.Sprintf("cannot create %s", dir),
			Hint:    err.Error(),
		}
	}
	return DoctorCheck{Name: "History", Status: "ok", Message: dir}
}
