package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/domain"
)

// deadlineCmd groups the deadline subcommands.
var deadlineCmd = &cobra.Command{
	Use:     "deadline",
	Aliases: []string{"deadlines"},
	Short:   "Manage deadlines",
}

var deadlineAddCmd = &cobra.Command{
	Use:   "add [name] [YYYY-MM-DD]",
	Short: "Add a deadline",
	Long: `Add a deadline. The last argument is the date; everything before it
is the name.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args[:len(args)-1], " ")
		date := args[len(args)-1]

		d, err := app.deadlines.AddDeadline(cmd.Context(), name, date)
		if err != nil {
			return fmt.Errorf("failed to add deadline: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{
				"id":        d.ID,
				"name":      d.Name,
				"date":      d.Date,
				"days_left": d.DaysLeft(time.Now()),
			})
		}
		fmt.Fprintf(out, "📅 Added deadline: %s on %s (ID: %s)\n", d.Name, d.Date, shortID(d.ID))
		return nil
	},
}

var deadlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deadlines by date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		upcoming := app.deadlines.Upcoming(time.Now())
		out := cmd.OutOrStdout()

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(upcoming))
			for _, d := range upcoming {
				list = append(list, map[string]interface{}{
					"id":        d.ID,
					"name":      d.Name,
					"date":      d.Date,
					"days_left": d.DaysLeft,
				})
			}
			return printJSON(out, map[string]interface{}{
				"deadlines": list,
				"count":     len(list),
			})
		}

		if len(upcoming) == 0 {
			fmt.Fprintln(out, "No deadlines.")
			return nil
		}

		fmt.Fprintf(out, "📅 Deadlines (%d):\n\n", len(upcoming))
		for _, d := range upcoming {
			fmt.Fprintf(out, "  %s  %-30s %s (ID: %s)\n", d.Date, d.Name, daysLeftLabel(d.DaysLeft), shortID(d.ID))
		}
		return nil
	},
}

var deadlineDeleteCmd = &cobra.Command{
	Use:   "delete [deadline]",
	Short: "Delete a deadline by id, id prefix or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := app.deadlines.ResolveDeadline(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := app.deadlines.DeleteDeadline(cmd.Context(), d.ID); err != nil {
			return fmt.Errorf("failed to delete deadline: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted deadline: %s\n", d.Name)
		return nil
	},
}

func init() {
	deadlineCmd.AddCommand(deadlineAddCmd)
	deadlineCmd.AddCommand(deadlineListCmd)
	deadlineCmd.AddCommand(deadlineDeleteCmd)
}

func daysLeftLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// sortedDeadlines returns a copy of deadlines ordered by date.
func sortedDeadlines(deadlines []domain.Deadline) []domain.Deadline {
	sorted := append([]domain.Deadline(nil), deadlines...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}
