package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Show the timer settings, the focused task, upcoming deadlines and today's focus count.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := app.state.GetCurrentState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get current state: %w", err)
		}

		now := time.Now()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), statusJSON(snap, now))
		}
		printStatus(cmd.OutOrStdout(), snap, now)
		return nil
	},
}

func statusJSON(snap *domain.Snapshot, now time.Time) map[string]interface{} {
	pending := 0
	for _, t := range snap.Tasks {
		if !t.Completed {
			pending++
		}
	}

	result := map[string]interface{}{
		"settings":     snap.Settings,
		"focused_task": nil,
		"tasks": map[string]interface{}{
			"total":   len(snap.Tasks),
			"pending": pending,
		},
		"deadlines": upcomingJSON(snap.Deadlines, now),
		"today_stats": map[string]interface{}{
			"focus_sessions":   snap.TodayStats.FocusSessions,
			"breaks_taken":     snap.TodayStats.BreaksTaken,
			"total_focus_time": snap.TodayStats.TotalFocusTime.String(),
		},
	}
	if snap.FocusedTask != nil {
		result["focused_task"] = taskJSON(*snap.FocusedTask, true)
	}
	return result
}

func upcomingJSON(deadlines []domain.Deadline, now time.Time) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(deadlines))
	for _, d := range sortedDeadlines(deadlines) {
		list = append(list, map[string]interface{}{
			"id":        d.ID,
			"name":      d.Name,
			"date":      d.Date,
			"days_left": d.DaysLeft(now),
		})
	}
	return list
}

func printStatus(w io.Writer, snap *domain.Snapshot, now time.Time) {
	s := snap.Settings
	fmt.Fprintf(w, "⏱️  %s focus · %s short · %s long every %d\n",
		formatMinutes(time.Duration(s.FocusDuration)*time.Minute),
		formatMinutes(time.Duration(s.ShortBreakDuration)*time.Minute),
		formatMinutes(time.Duration(s.LongBreakDuration)*time.Minute),
		s.SessionsUntilLongBreak)
	if s.StrictFocusMode {
		fmt.Fprintln(w, "🔒 Strict focus is on")
	}

	if snap.FocusedTask != nil {
		fmt.Fprintf(w, "\n🎯 Focused task: %s\n", snap.FocusedTask.Text)
	} else {
		fmt.Fprintln(w, "\n🎯 No focused task")
	}

	pending := 0
	for _, t := range snap.Tasks {
		if !t.Completed {
			pending++
		}
	}
	fmt.Fprintf(w, "📋 Tasks: %d pending of %d\n", pending, len(snap.Tasks))

	if len(snap.Deadlines) > 0 {
		fmt.Fprintln(w, "\n📅 Deadlines:")
		for _, d := range sortedDeadlines(snap.Deadlines) {
			fmt.Fprintf(w, "   %s  %s (%s)\n", d.Date, d.Name, daysLeftLabel(d.DaysLeft(now)))
		}
	}

	stats := snap.TodayStats
	fmt.Fprintf(w, "\n📊 Today: %d focus sessions, %d breaks, %s focused\n",
		stats.FocusSessions, stats.BreaksTaken, formatMinutes(stats.TotalFocusTime))
}
