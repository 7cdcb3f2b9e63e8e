package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/tui"
	"github.com/xvierd/striktflow/internal/domain"
	"golang.org/x/term"
)

var taskListPending bool

var errNotInteractive = errors.New("stdin is not a terminal, pass the value as an argument")

// taskCmd groups the task subcommands.
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, toggle and delete tasks, and choose the task you are focused on.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.AddTask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, taskJSON(*task, false))
		}
		fmt.Fprintf(out, "✅ Added task: %s (ID: %s)\n", task.Text, shortID(task.ID))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks := app.tasks.ListTasks()
		focused := app.tasks.FocusedTask()
		if taskListPending {
			pending := tasks[:0:0]
			for _, t := range tasks {
				if !t.Completed {
					pending = append(pending, t)
				}
			}
			tasks = pending
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(tasks))
			for _, t := range tasks {
				list = append(list, taskJSON(t, focused != nil && focused.ID == t.ID))
			}
			return printJSON(out, map[string]interface{}{
				"tasks": list,
				"count": len(list),
			})
		}

		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "📋 Tasks (%d):\n\n", len(tasks))
		for _, t := range tasks {
			marker := " "
			if focused != nil && focused.ID == t.ID {
				marker = "▸"
			}
			fmt.Fprintf(out, "%s %s %s (ID: %s)\n", marker, statusIcon(t), t.Text, shortID(t.ID))
		}
		return nil
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle [task]",
	Short: "Mark a task completed or pending",
	Long:  `Toggle a task. The task can be given by id, id prefix or text.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.ResolveTask(strings.Join(args, " "))
		if err != nil {
			return err
		}
		task, err = app.tasks.ToggleTask(cmd.Context(), task.ID)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, taskJSON(*task, false))
		}
		fmt.Fprintf(out, "%s %s\n", statusIcon(*task), task.Text)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task]",
	Short: "Delete a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.tasks.ResolveTask(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := app.tasks.DeleteTask(cmd.Context(), task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted task: %s\n", task.Text)
		return nil
	},
}

var taskFocusCmd = &cobra.Command{
	Use:   "focus [task]",
	Short: "Focus on a task",
	Long: `Set the task shown under the timer. Without an argument an
interactive picker lists the pending tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var task *domain.Task
		if len(args) > 0 {
			var err error
			task, err = app.tasks.ResolveTask(strings.Join(args, " "))
			if err != nil {
				return err
			}
		} else {
			var err error
			task, err = pickTask(cmd.Context())
			if err != nil || task == nil {
				return err
			}
		}

		if err := app.tasks.SetFocus(cmd.Context(), &task.ID); err != nil {
			return fmt.Errorf("failed to focus task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🎯 Focused on: %s\n", task.Text)
		return nil
	},
}

var taskUnfocusCmd = &cobra.Command{
	Use:   "unfocus",
	Short: "Clear the focused task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.tasks.SetFocus(cmd.Context(), nil); err != nil {
			return fmt.Errorf("failed to clear focus: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No task focused.")
		return nil
	},
}

func init() {
	taskListCmd.Flags().BoolVarP(&taskListPending, "pending", "p", false, "Only list pending tasks")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskFocusCmd)
	taskCmd.AddCommand(taskUnfocusCmd)
}

// pickTask lets the user choose a pending task interactively. It returns
// nil when the picker is dismissed.
func pickTask(ctx context.Context) (*domain.Task, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errNotInteractive
	}

	var pending []domain.Task
	var items []tui.PickerItem
	for _, t := range app.tasks.ListTasks() {
		if t.Completed {
			continue
		}
		pending = append(pending, t)
		items = append(items, tui.PickerItem{Label: shortID(t.ID), Desc: t.Text})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no pending tasks: add one with \"striktflow task add\"")
	}

	themeID := app.settings.Load(ctx).ThemeID
	result := tui.RunPicker("Focus on:", items, "", themeID)
	if result.Aborted {
		return nil, nil
	}
	return &pending[result.Index], nil
}

func statusIcon(t domain.Task) string {
	if t.Completed {
		return "✅"
	}
	return "⏳"
}

func taskJSON(t domain.Task, focused bool) map[string]interface{} {
	return map[string]interface{}{
		"id":        t.ID,
		"text":      t.Text,
		"completed": t.Completed,
		"focused":   focused,
	}
}
