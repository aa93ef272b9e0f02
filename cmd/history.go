/*
Copyright © 2025 Matt Barker
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/MBarkerUK/apt-kernel-manager/internal/ui"
	"github.com/MBarkerUK/apt-kernel-manager/store"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past purge runs",
	Long:  `Show the recorded purge runs, newest first. Dry runs are not recorded.`,
	Run: func(cmd *cobra.Command, args []string) {
		hs := store.NewFileHistoryStore(afero.NewOsFs(), HistoryDir())
		records, err := hs.List()
		if err != nil {
			HandleError("Could not read purge history.", err)
		}
		if len(records) == 0 {
			fmt.Println("No purge history yet. Records are written after each real purge.")
			return
		}

		table := ui.Table{
			Headers:  []string{"WHEN", "RUNNING", "KEEP", "PURGED", "STATUS"},
			MaxWidth: 60,
		}
		for _, r := range records {
			status := "ok"
			if r.ExitStatus != 0 {
				status = "exit " + strconv.Itoa(r.ExitStatus)
			}
			table.Rows = append(table.Rows, []string{
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.RunningRelease,
				strconv.Itoa(r.KeepCount),
				summarizeNames(r.Purged),
				status,
			})
		}
		fmt.Print(table.Render())
	},
}

// summarizeNames compresses a package list to a count plus the first name.
func summarizeNames(names []string) string {
	switch len(names) {
	case 0:
		return "-"
	case 1:
		return names[0]
	default:
		return fmt.Sprintf("%d pkgs (%s, ...)", len(names), strings.TrimSpace(names[0]))
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
