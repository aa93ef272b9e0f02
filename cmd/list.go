/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MBarkerUK/apt-kernel-manager/internal/kernel"
	"github.com/MBarkerUK/apt-kernel-manager/internal/ui"
)

var (
	listJSON bool
	listKeep int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed kernel packages and their keep/purge classification",
	Long: `List every installed kernel package together with its extracted
release, flavor, class, and the decision the current retention policy
would make for it. Nothing is changed on the system.`,
	Run: func(cmd *cobra.Command, args []string) {
		plan, pkgs, err := buildCurrentPlan(cmd.Context(), listKeep)
		if err != nil {
			HandleError("Could not inspect installed kernel packages.", err)
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(plan); err != nil {
				HandleError("Could not encode plan as JSON.", err)
			}
			return
		}

		if len(pkgs) == 0 {
			fmt.Println("No kernel packages found. Is this a Debian-family system?")
			return
		}

		fmt.Printf("Running kernel: %s   (keeping %d most recent releases)\n\n",
			ui.StyleSuccess.Render(plan.RunningRelease), plan.KeepCount)

		table := planTable(plan)
		fmt.Print(table.Render())

		fmt.Printf("\n%d packages, %d distinct releases, %d slated for purge\n",
			len(pkgs), len(plan.Releases), len(plan.Purge))
	},
}

// planTable renders the retention plan as a table, kept packages first.
func planTable(plan kernel.Plan) ui.Table {
	table := ui.Table{
		Headers: []string{"PACKAGE", "RELEASE", "FLAVOR", "CLASS", "DECISION"},
	}
	for _, set := range [][]kernel.Package{plan.Keep, plan.Purge} {
		for _, p := range set {
			decision := plan.Decision(p)
			if decision == "PURGE" {
				decision = ui.StyleError.Render(decision)
			} else {
				decision = ui.StyleSuccess.Render(decision)
			}
			table.Rows = append(table.Rows, []string{
				p.Name, p.Release, p.Flavor, string(p.Class), decision,
			})
		}
	}
	return table
}

// buildCurrentPlan gathers the installed kernel packages and the running
// release and applies the retention policy. keepOverride > 0 replaces the
// configured keep count.
func buildCurrentPlan(ctx context.Context, keepOverride int) (kernel.Plan, []kernel.Package, error) {
	cfg := GetConfig()
	dpkg := newDpkgClient()

	pkgs, err := dpkg.ListKernelPackages(ctx)
	if err != nil {
		return kernel.Plan{}, nil, err
	}
	running, err := dpkg.RunningRelease()
	if err != nil {
		return kernel.Plan{}, nil, err
	}

	keep := cfg.Retention.Keep
	if keepOverride > 0 {
		keep = keepOverride
	}
	plan, err := kernel.BuildPlan(pkgs, kernel.PlanOptions{
		RunningRelease: running,
		KeepCount:      keep,
		Allowlist:      cfg.Retention.Allowlist,
	})
	if err != nil {
		return kernel.Plan{}, nil, err
	}
	return plan, pkgs, nil
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the plan as JSON")
	listCmd.Flags().IntVar(&listKeep, "keep", 0, "Override the configured number of releases to keep")
}
