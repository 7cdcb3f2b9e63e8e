package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/report"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/services"
)

// reportCmd writes the planner PDF.
var reportCmd = &cobra.Command{
	Use:   "report [file.pdf]",
	Short: "Write a PDF planner of deadlines, tasks and today's sessions",
	Long: `Write a PDF planner. Without a file name the report is written to
striktflow-YYYY-MM-DD.pdf in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		filename := fmt.Sprintf("striktflow-%s.pdf", now.Format(domain.DateLayout))
		if len(args) == 1 {
			filename = args[0]
		}

		planner := buildPlanner(cmd, now)

		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		if err := report.Write(f, planner); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}

		absPath, _ := filepath.Abs(filename)
		fmt.Fprintf(cmd.OutOrStdout(), "📄 Report written: %s\n", absPath)
		return nil
	},
}

func buildPlanner(cmd *cobra.Command, now time.Time) report.Planner {
	ctx := cmd.Context()
	planner := report.Planner{
		GeneratedAt: now,
		Settings:    app.settings.Load(ctx),
		Tasks:       app.tasks.ListTasks(),
		Deadlines:   app.deadlines.ListDeadlines(),
		Today:       app.history.GetDailyStats(ctx, now),
		Sessions:    app.history.Recent(ctx, services.MaxHistoryEntries),
	}
	if focused := app.tasks.FocusedTask(); focused != nil {
		planner.FocusedID = focused.ID
	}
	return planner
}
