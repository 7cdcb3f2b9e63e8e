package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/adapters/audio"
)

// soundCmd groups the audio cue subcommands.
var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Work with the timer sounds",
}

var soundExportCmd = &cobra.Command{
	Use:       "export [chime|tick] [file.wav]",
	Short:     "Render a timer sound to a WAV file",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(audio.CueChime), string(audio.CueTick)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cue, err := audio.ParseCue(args[0])
		if err != nil {
			return err
		}

		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create sound file: %w", err)
		}
		if err := audio.Render(f, cue); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write sound file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🔔 Wrote %s sound to %s\n", cue, args[1])
		return nil
	},
}

func init() {
	soundCmd.AddCommand(soundExportCmd)
}
