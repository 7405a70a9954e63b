// Package main provides the CLI entrypoint for datewheel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/datewheel/internal/calendar"
	"github.com/verte-zerg/datewheel/internal/config"
	"github.com/verte-zerg/datewheel/internal/history"
	"github.com/verte-zerg/datewheel/internal/historyui"
	"github.com/verte-zerg/datewheel/internal/locale"
	"github.com/verte-zerg/datewheel/internal/model"
	"github.com/verte-zerg/datewheel/internal/picker"
	"github.com/verte-zerg/datewheel/internal/store"
	"github.com/verte-zerg/datewheel/internal/tui"
)

const (
	defaultLocale = "en-US"
	defaultMin    = "1900-01-01"
	defaultMax    = "2100-12-31"
	defaultFormat = "2006-01-02"

	dateLayout = "2006-01-02"
)

var (
	pickLocale    string
	pickMin       string
	pickMax       string
	pickDate      string
	pickFormat    string
	pickNoHistory bool

	historySince string
	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "datewheel",
		Short:         "TUI date picker with infinite wheels",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPickCmd,
	}

	rootCmd.Flags().StringVar(&pickLocale, "locale", defaultLocale, "locale tag for wheel order and month names")
	rootCmd.Flags().StringVar(&pickMin, "min", defaultMin, "minimum pickable date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&pickMax, "max", defaultMax, "maximum pickable date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&pickDate, "date", "", "initial date (YYYY-MM-DD, default today)")
	rootCmd.Flags().StringVar(&pickFormat, "format", defaultFormat, "output format (Go reference layout)")
	rootCmd.Flags().BoolVar(&pickNoHistory, "no-history", false, "do not record the pick")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLocalesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "locale", &pickLocale, fileCfg.Picker.Locale)
	applyStringConfig(cmd, "min", &pickMin, fileCfg.Picker.Min)
	applyStringConfig(cmd, "max", &pickMax, fileCfg.Picker.Max)
	applyStringConfig(cmd, "format", &pickFormat, fileCfg.Picker.Format)
	applyBoolConfig(cmd, "no-history", &pickNoHistory, fileCfg.Picker.NoHistory)

	cfg, err := resolvePickConfig()
	if err != nil {
		return err
	}
	loc, err := locale.Resolve(cfg.Locale)
	if err != nil {
		return err
	}

	sys := calendar.NewGregorian(time.Local)
	ctrl := picker.New(sys, loc, cfg.Min, cfg.Max, cfg.Initial)
	m := tui.NewModel(ctrl, cfg.Format)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	result, ok := final.(*tui.Model)
	if !ok || !result.Confirmed() {
		return fmt.Errorf("selection canceled")
	}

	picked := ctrl.Date()
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), picked.Format(cfg.Format)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !cfg.NoHistory {
		recordPick(picked, ctrl, loc)
	}
	return nil
}

// recordPick stores the confirmed pick. History is best-effort; a broken
// database must not swallow the printed date.
func recordPick(picked time.Time, ctrl *picker.Control, loc locale.Locale) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	rec := model.PickRecord{
		PickedAt: time.Now(),
		Date:     picked,
		Locale:   loc.String(),
		MinDate:  ctrl.MinimumDate(),
		MaxDate:  ctrl.MaximumDate(),
	}
	if _, err := st.InsertPick(context.Background(), rec); err != nil {
		logErrf("failed to record pick: %v\n", err)
	}
}

func resolvePickConfig() (model.Config, error) {
	min, err := time.ParseInLocation(dateLayout, pickMin, time.Local)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --min value: %w", err)
	}
	max, err := time.ParseInLocation(dateLayout, pickMax, time.Local)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --max value: %w", err)
	}
	if !min.Before(max) {
		return model.Config{}, fmt.Errorf("--min must be strictly before --max")
	}
	initial := time.Now()
	if pickDate != "" {
		initial, err = time.ParseInLocation(dateLayout, pickDate, time.Local)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid --date value: %w", err)
		}
	}
	if strings.TrimSpace(pickFormat) == "" {
		return model.Config{}, fmt.Errorf("--format must not be empty")
	}
	return model.Config{
		Locale:    pickLocale,
		Min:       min,
		Max:       max,
		Initial:   initial,
		Format:    pickFormat,
		NoHistory: pickNoHistory,
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List supported locale tags",
		Args:  cobra.NoArgs,
		RunE:  runLocalesCmd,
	}
}

func runLocalesCmd(cmd *cobra.Command, _ []string) error {
	for _, tag := range locale.Supported() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), tag); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show pick history",
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N picks")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "plain text output instead of the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation(dateLayout, historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.HistoryConfig{Since: sinceTime, Last: historyLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printPlainHistory(cmd, st, cfg)
	}

	m := historyui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func printPlainHistory(cmd *cobra.Command, st *store.Store, cfg model.HistoryConfig) error {
	report, err := history.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if report.Total == 0 {
		if _, err := fmt.Fprintln(out, "No picks recorded yet."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	for _, p := range report.Picks {
		line := fmt.Sprintf("%s  %s  %s", p.PickedAt.Format("2006-01-02 15:04"), p.Date.Format(dateLayout), p.Locale)
		if len(line) > width {
			line = line[:width]
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "%d picks between %s and %s\n",
		report.Total,
		report.First.Format(dateLayout),
		report.Last.Format(dateLayout),
	); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# datewheel configuration
# Uncomment a value to enable it. CLI flags override config values.

[picker]
# locale = %q        # Locale tag (wheel order, month names)
# min = %q      # Minimum pickable date
# max = %q      # Maximum pickable date
# format = %q      # Output format (Go reference layout)
# no-history = false      # Do not record picks
`,
		defaultLocale,
		defaultMin,
		defaultMax,
		defaultFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
