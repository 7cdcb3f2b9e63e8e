package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/domain"
)

// themeCmd groups the theme subcommands.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "List or choose colour themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := app.settings.Load(cmd.Context()).ThemeID
		out := cmd.OutOrStdout()

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(domain.Themes))
			for _, th := range domain.Themes {
				list = append(list, map[string]interface{}{
					"id":      th.ID,
					"name":    th.Name,
					"primary": th.Primary,
					"dark":    th.IsDark,
					"active":  th.ID == current,
				})
			}
			return printJSON(out, list)
		}

		for _, th := range domain.Themes {
			marker := " "
			if th.ID == current {
				marker = "▸"
			}
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Render("██")
			variant := "light"
			if th.IsDark {
				variant = "dark"
			}
			fmt.Fprintf(out, "%s %s %-20s %-18s %s\n", marker, swatch, th.ID, th.Name, variant)
		}
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set [theme-id]",
	Short: "Choose the active theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		settings, err := app.settings.Update(cmd.Context(), domain.SettingsPatch{ThemeID: &id})
		if err != nil {
			return err
		}
		theme := domain.ResolveTheme(settings.ThemeID)
		fmt.Fprintf(cmd.OutOrStdout(), "🎨 Theme set to %s\n", theme.Name)
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeSetCmd)
}
