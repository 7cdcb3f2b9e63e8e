package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/xvierd/striktflow/internal/domain"
	"golang.org/x/term"
)

// settingsCmd groups the timer settings subcommands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the timer settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := app.settings.Load(cmd.Context())
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settings)
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change one or more settings",
	Long: `Change settings with key=value pairs. All pairs are applied together;
if any value is invalid nothing changes.

Keys:
  focus, short_break, long_break   minutes (positive)
  long_break_every                 focus sessions per long break (positive)
  sound, auto_start_breaks,
  auto_start_focus, strict         true or false
  theme                            theme id (see "striktflow theme list")`,
	Example: "  striktflow settings set focus=50 short_break=10 strict=true",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := parseSettingsArgs(args)
		if err != nil {
			return err
		}
		settings, err := app.settings.Update(cmd.Context(), patch)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settings)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Settings updated")
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings in an interactive form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errNotInteractive
		}

		current := app.settings.Load(cmd.Context())
		form, values := buildSettingsForm(current)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("failed to run settings form: %w", err)
		}

		patch, err := values.patch()
		if err != nil {
			return err
		}
		settings, err := app.settings.Update(cmd.Context(), patch)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Settings updated")
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsEditCmd)
}

func printSettings(w io.Writer, s domain.TimerSettings) {
	theme := domain.ResolveTheme(s.ThemeID)
	fmt.Fprintf(w, "⏱️  Focus:       %s\n", formatMinutes(time.Duration(s.FocusDuration)*time.Minute))
	fmt.Fprintf(w, "☕ Short break: %s\n", formatMinutes(time.Duration(s.ShortBreakDuration)*time.Minute))
	fmt.Fprintf(w, "🌴 Long break:  %s every %d sessions\n", formatMinutes(time.Duration(s.LongBreakDuration)*time.Minute), s.SessionsUntilLongBreak)
	fmt.Fprintf(w, "🔔 Sound:       %s\n", onOff(s.SoundEnabled))
	fmt.Fprintf(w, "▶️  Auto-start:  breaks %s, focus %s\n", onOff(s.AutoStartBreaks), onOff(s.AutoStartFocus))
	fmt.Fprintf(w, "🔒 Strict:      %s\n", onOff(s.StrictFocusMode))
	fmt.Fprintf(w, "🎨 Theme:       %s (%s)\n", theme.Name, theme.ID)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// parseSettingsArgs turns key=value pairs into a patch.
func parseSettingsArgs(args []string) (domain.SettingsPatch, error) {
	var patch domain.SettingsPatch
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return patch, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidSettingValue, arg)
		}
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "focus":
			patch.FocusDuration, err = parseWhole(key, value)
		case "short_break":
			patch.ShortBreakDuration, err = parseWhole(key, value)
		case "long_break":
			patch.LongBreakDuration, err = parseWhole(key, value)
		case "long_break_every", "sessions_until_long_break":
			patch.SessionsUntilLongBreak, err = parseWhole(key, value)
		case "sound":
			patch.SoundEnabled, err = parseSwitch(key, value)
		case "auto_start_breaks":
			patch.AutoStartBreaks, err = parseSwitch(key, value)
		case "auto_start_focus":
			patch.AutoStartFocus, err = parseSwitch(key, value)
		case "strict", "strict_focus":
			patch.StrictFocusMode, err = parseSwitch(key, value)
		case "theme":
			v := value
			patch.ThemeID = &v
		default:
			return patch, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidSettingValue, key)
		}
		if err != nil {
			return patch, err
		}
	}
	return patch, nil
}

func parseWhole(key, value string) (*int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number, got %q", domain.ErrInvalidSettingValue, key, value)
	}
	return &n, nil
}

func parseSwitch(key, value string) (*bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		b := true
		return &b, nil
	case "off", "no":
		b := false
		return &b, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidSettingValue, key, value)
	}
	return &b, nil
}

// settingsFormValues holds the form fields bound to huh inputs.
type settingsFormValues struct {
	focus, shortBreak, longBreak, every string
	sound, autoBreaks, autoFocus, strict bool
	theme                                string
}

func (v *settingsFormValues) patch() (domain.SettingsPatch, error) {
	return parseSettingsArgs([]string{
		"focus=" + v.focus,
		"short_break=" + v.shortBreak,
		"long_break=" + v.longBreak,
		"long_break_every=" + v.every,
		"sound=" + strconv.FormatBool(v.sound),
		"auto_start_breaks=" + strconv.FormatBool(v.autoBreaks),
		"auto_start_focus=" + strconv.FormatBool(v.autoFocus),
		"strict=" + strconv.FormatBool(v.strict),
		"theme=" + v.theme,
	})
}

func buildSettingsForm(s domain.TimerSettings) (*huh.Form, *settingsFormValues) {
	v := &settingsFormValues{
		focus:      strconv.Itoa(s.FocusDuration),
		shortBreak: strconv.Itoa(s.ShortBreakDuration),
		longBreak:  strconv.Itoa(s.LongBreakDuration),
		every:      strconv.Itoa(s.SessionsUntilLongBreak),
		sound:      s.SoundEnabled,
		autoBreaks: s.AutoStartBreaks,
		autoFocus:  s.AutoStartFocus,
		strict:     s.StrictFocusMode,
		theme:      s.ThemeID,
	}

	themes := make([]huh.Option[string], 0, len(domain.Themes))
	for _, th := range domain.Themes {
		themes = append(themes, huh.NewOption(th.Name, th.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus (minutes)").
				Value(&v.focus).
				Validate(validatePositive),
			huh.NewInput().
				Title("Short break (minutes)").
				Value(&v.shortBreak).
				Validate(validatePositive),
			huh.NewInput().
				Title("Long break (minutes)").
				Value(&v.longBreak).
				Validate(validatePositive),
			huh.NewInput().
				Title("Focus sessions per long break").
				Value(&v.every).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sound").
				Affirmative("On").
				Negative("Off").
				Value(&v.sound),
			huh.NewConfirm().
				Title("Start breaks automatically").
				Value(&v.autoBreaks),
			huh.NewConfirm().
				Title("Start focus automatically").
				Value(&v.autoFocus),
			huh.NewConfirm().
				Title("Strict focus").
				Description("Pausing, resetting and switching are refused while focusing").
				Value(&v.strict),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&v.theme),
		),
	)
	return form, v
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}
