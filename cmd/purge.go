/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MBarkerUK/apt-kernel-manager/internal/kernel"
	"github.com/MBarkerUK/apt-kernel-manager/internal/system"
	"github.com/MBarkerUK/apt-kernel-manager/internal/ui"
	"github.com/MBarkerUK/apt-kernel-manager/store"
)

var (
	purgeKeep   int
	purgeDryRun bool
	purgeYes    bool
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge old kernel packages, keeping the running kernel and the N most recent",
	Long: `Purge kernel packages that fall outside the retention policy.

The running kernel, allow-listed packages, and the N most recent distinct
kernel releases are always kept. Everything else is removed with
"apt-get purge".

Safety features:
- Preview of every package before anything is removed
- Interactive confirmation (unless --yes is used)
- Dry-run mode that only simulates the purge
- A JSON record of every real run is kept for later review

Examples:
  apt-kernel-manager purge              # purge with the configured policy
  apt-kernel-manager purge --keep 3     # keep the 3 most recent releases
  apt-kernel-manager purge --dry-run    # show what would happen
  apt-kernel-manager purge --yes        # skip the confirmation prompt`,
	Run: func(cmd *cobra.Command, args []string) {
		runPurge(cmd.Context())
	},
}

func runPurge(ctx context.Context) {
	cfg := GetConfig()

	plan, _, err := buildCurrentPlan(ctx, purgeKeep)
	if err != nil {
		HandleError("Could not inspect installed kernel packages.", err)
	}

	if len(plan.Purge) == 0 {
		fmt.Println("Nothing to purge. All installed kernel packages fall within the retention policy.")
		return
	}

	showPurgePreview(plan)

	apt := system.NewAptClient(system.NewRunner(), cfg.Apt.Binary, os.Stdout)
	timeout := time.Duration(cfg.Apt.TimeoutSeconds) * time.Second
	aptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if purgeDryRun {
		fmt.Println(ui.StyleSubtle.Render("Dry run: simulating apt-get purge, nothing will be removed."))
		fmt.Println()
		if err := apt.Purge(aptCtx, plan.PurgeNames(), true); err != nil {
			HandleError(purgeFailureMessage(err), err)
		}
		return
	}

	if !system.IsRoot() {
		HandleError("Purging kernel packages requires root privileges. Re-run with sudo.", nil)
	}

	if !purgeYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			HandleError("Refusing to purge without confirmation in a non-interactive session. Pass --yes to proceed.", nil)
		}
		if err := confirmPurge(len(plan.Purge)); err != nil {
			fmt.Println("Purge cancelled.")
			return
		}
	}

	err = apt.Purge(aptCtx, plan.PurgeNames(), false)
	recordPurge(plan, err)
	if err != nil {
		HandleError(purgeFailureMessage(err), err)
	}

	fmt.Println()
	fmt.Println(purgeSummary(plan))
}

// purgeSummary renders the post-purge result box.
func purgeSummary(plan kernel.Plan) string {
	remaining := map[string]bool{}
	for _, p := range plan.Keep {
		if p.Release != "" {
			remaining[p.Release] = true
		}
	}
	return ui.InfoBox(ui.StyleSuccess.Render("✔")+" Purge complete", []string{
		fmt.Sprintf("%d packages purged", len(plan.Purge)),
		fmt.Sprintf("%d distinct kernel releases remain", len(remaining)),
	})
}

// showPurgePreview prints the warning box describing exactly what the purge
// will touch.
func showPurgePreview(plan kernel.Plan) {
	lines := []string{
		fmt.Sprintf("Running kernel %s is always kept.", plan.RunningRelease),
		fmt.Sprintf("Keeping the %d most recent releases.", plan.KeepCount),
		"",
		fmt.Sprintf("The following %d packages will be PURGED:", len(plan.Purge)),
	}
	for _, p := range plan.Purge {
		lines = append(lines, ui.Bullet(p.Name))
	}
	fmt.Println(ui.WarningBox("⚠ Kernel package purge", lines))
	fmt.Println()
}

func confirmPurge(count int) error {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Purge %d kernel packages permanently? This cannot be undone", count),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err == promptui.ErrAbort {
		return fmt.Errorf("cancelled by user")
	}
	return err
}

// recordPurge appends the run to the history store. History failures only
// warn; the purge outcome matters more than its bookkeeping.
func recordPurge(plan kernel.Plan, purgeErr error) {
	cfg := GetConfig()
	if !cfg.History.Enabled {
		return
	}
	rec := store.Record{
		RunningRelease: plan.RunningRelease,
		KeepCount:      plan.KeepCount,
		Purged:         plan.PurgeNames(),
		ExitStatus:     exitStatus(purgeErr),
	}
	for _, p := range plan.Keep {
		rec.Kept = append(rec.Kept, p.Name)
	}
	hs := store.NewFileHistoryStore(afero.NewOsFs(), HistoryDir())
	saved, err := hs.Append(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record purge history: %v\n", err)
		return
	}
	LogError(fmt.Sprintf("recorded purge history %s", saved.ID), nil)
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *system.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func purgeFailureMessage(err error) string {
	var exitErr *system.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("apt-get purge failed with exit status %d.", exitErr.Code)
	}
	return "apt-get purge failed."
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().IntVarP(&purgeKeep, "keep", "k", 0, "Override the configured number of releases to keep")
	purgeCmd.Flags().BoolVarP(&purgeDryRun, "dry-run", "n", false, "Simulate the purge without removing anything")
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "Skip the confirmation prompt")
}
