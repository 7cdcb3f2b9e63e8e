package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/git"
)

var historyLimit int

// historyCmd lists completed intervals.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently completed intervals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		records := app.history.Recent(ctx, historyLimit)
		today := app.history.GetDailyStats(ctx, time.Now())
		out := cmd.OutOrStdout()

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(records))
			for _, r := range records {
				entry := map[string]interface{}{
					"id":         r.ID,
					"mode":       string(r.Mode),
					"started_at": r.StartTime.Format(time.RFC3339),
					"ended_at":   r.EndTime.Format(time.RFC3339),
				}
				if r.GitBranch != "" {
					entry["git_branch"] = r.GitBranch
					entry["git_commit"] = r.GitCommit
				}
				list = append(list, entry)
			}
			return printJSON(out, map[string]interface{}{
				"sessions":             list,
				"today_focus_sessions": today.FocusSessions,
			})
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No completed intervals yet.")
			return nil
		}

		fmt.Fprintf(out, "🕘 Recent intervals (%d):\n\n", len(records))
		for _, r := range records {
			line := fmt.Sprintf("  %s  %s-%s  %-11s %s",
				r.EndTime.Local().Format("2006-01-02"),
				r.StartTime.Local().Format("15:04"),
				r.EndTime.Local().Format("15:04"),
				r.Mode.Label(),
				formatMinutes(r.EndTime.Sub(r.StartTime)))
			if r.GitBranch != "" {
				line += fmt.Sprintf("  %s@%s", r.GitBranch, git.ShortCommit(r.GitCommit))
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintf(out, "\n📊 Today: %d focus sessions, %s focused\n", today.FocusSessions, formatMinutes(today.TotalFocusTime))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of intervals to show")
}
