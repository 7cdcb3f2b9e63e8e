package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/notification"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

var (
	runMode      string
	runIntervals int
)

// runEvent carries one observer callback to the print loop. expired is
// nil for a tick.
type runEvent struct {
	state   domain.SessionState
	expired *domain.IntervalExpired
}

// runCmd is a plain stdout timer for scripts and terminals without a TUI.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the timer without the interactive interface",
	Long: `Run the timer in plain text. The countdown is printed on one line and
each finished interval is announced. The next interval starts right away
until --intervals have finished or the command is interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := domain.ParseMode(runMode)
		if err != nil {
			return err
		}
		if runIntervals < 1 {
			return fmt.Errorf("--intervals must be at least 1")
		}

		ctx, cancel := setupSignalHandler(contextOf(cmd))
		defer cancel()

		ctrl := newController(ctx)
		defer ctrl.Close()

		// Observers run on the ticker goroutine. Only this goroutine
		// writes to out.
		out := cmd.OutOrStdout()
		events := make(chan runEvent, 16)
		ctrl.AddObserver(ports.ObserverFuncs{
			Tick: func(state domain.SessionState) {
				select {
				case events <- runEvent{state: state}:
				default:
				}
			},
			Expired: func(ev domain.IntervalExpired) {
				select {
				case events <- runEvent{expired: &ev}:
				case <-ctx.Done():
				}
			},
		})

		if mode != domain.ModeFocus {
			ctrl.SwitchMode(mode)
		}
		if task := app.tasks.FocusedTask(); task != nil {
			fmt.Fprintf(out, "🎯 %s\n", task.Text)
		}
		ctrl.ToggleRunning()

		for done := 0; done < runIntervals; {
			select {
			case <-ctx.Done():
				fmt.Fprintln(out)
				return nil
			case ev := <-events:
				if ev.expired == nil {
					fmt.Fprintf(out, "\r%-11s %s ", ev.state.Mode.Label(), formatClock(ev.state.Remaining()))
					continue
				}
				done++
				title, message := notification.Message(*ev.expired)
				fmt.Fprintf(out, "\r✅ %s. %s\n", title, message)
				if done < runIntervals && !ctrl.State().IsRunning {
					ctrl.ToggleRunning()
				}
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", string(domain.ModeFocus), "Interval to start with: focus, short_break, long_break")
	runCmd.Flags().IntVarP(&runIntervals, "intervals", "n", 1, "Number of intervals to run before exiting")
}
