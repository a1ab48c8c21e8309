// Package main provides the CLI entrypoint for mindsight.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/config"
	"github.com/verte-zerg/mindsight/internal/keymap"
	"github.com/verte-zerg/mindsight/internal/logging"
	"github.com/verte-zerg/mindsight/internal/model"
	"github.com/verte-zerg/mindsight/internal/selection"
	"github.com/verte-zerg/mindsight/internal/stats"
	"github.com/verte-zerg/mindsight/internal/store"
	"github.com/verte-zerg/mindsight/internal/tui"
)

const (
	defaultFPS         = 60
	maxFPS             = 120
	defaultCurveWindow = 5
)

var (
	playKeys     string
	playSkipKey  string
	playQuitKey  string
	playSeed     int64
	playHints    bool
	playFPS      int
	playCategory string
	playItems    string
	playPreset   string
	playDebug    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mindsight",
		Short:         "Terminal reaction-time trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	defaultKeys := keymap.DefaultKeys
	rootCmd.Flags().StringVar(&playKeys, "keys", strings.Join(defaultKeys[:], ","), "two response keys, first and second pick")
	rootCmd.Flags().StringVar(&playSkipKey, "skip-key", keymap.DefaultSkipKey, "key that skips a trial")
	rootCmd.Flags().StringVar(&playQuitKey, "quit-key", keymap.DefaultQuitKey, "key that ends a run")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for stimuli (0 = time based)")
	rootCmd.Flags().BoolVar(&playHints, "hints", false, "show key hints during a run")
	rootCmd.Flags().IntVar(&playFPS, "fps", defaultFPS, "frames per second")
	rootCmd.Flags().StringVar(&playCategory, "category", "", "start in a category: colors, shapes or letters")
	rootCmd.Flags().StringVar(&playItems, "items", "", "two comma-separated items; skips the menus (needs --category)")
	rootCmd.Flags().StringVar(&playPreset, "preset", "", "start with a saved preset")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "log every trial")
	rootCmd.MarkFlagsMutuallyExclusive("preset", "items")
	rootCmd.MarkFlagsMutuallyExclusive("preset", "category")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newHowtoCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "skip-key", &playSkipKey, fileCfg.Play.SkipKey)
	applyStringConfig(cmd, "quit-key", &playQuitKey, fileCfg.Play.QuitKey)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Play.Seed)
	applyBoolConfig(cmd, "hints", &playHints, fileCfg.Play.Hints)
	applyIntConfig(cmd, "fps", &playFPS, fileCfg.Play.FPS)

	keys, err := resolveKeys(cmd, fileCfg.Play.Keys)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Keys:    keys,
		SkipKey: keymap.NormalizeKey(playSkipKey),
		QuitKey: keymap.NormalizeKey(playQuitKey),
		Seed:    playSeed,
		Hints:   playHints,
		FPS:     playFPS,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, logErr := logging.NewOrNop(config.DefaultLogPath(), playDebug)
	if logErr != nil {
		logErrf("logging disabled: %v\n", logErr)
	}
	defer func() {
		// Sync on a file sink is best-effort.
		_ = logger.Sync()
	}()

	opts := []tui.Option{tui.WithLogger(logger)}
	startOpt, err := resolveStart(cmd.Context(), playPreset, playCategory, playItems)
	if err != nil {
		return err
	}
	if startOpt != nil {
		opts = append(opts, startOpt)
	}

	m, err := tui.NewModel(cfg, opts...)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithFPS(cfg.FPS))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if st, interrupted := m.Interrupted(); interrupted {
		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, stats.Summarize(st)); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if len(st.ResponseTimes) > 1 {
			if err := stats.RenderResponseCurve(out, st.ResponseTimes, defaultCurveWindow); err != nil {
				return fmt.Errorf("failed to write response curve: %w", err)
			}
		}
	}
	return nil
}

// resolveStart turns --preset, --category and --items into the screen the
// game opens on. A nil option means the category menu.
func resolveStart(ctx context.Context, preset, category, items string) (tui.Option, error) {
	if strings.TrimSpace(preset) != "" {
		sel, err := loadPreset(ctx, preset)
		if err != nil {
			return nil, err
		}
		return tui.WithSelection(sel), nil
	}
	if strings.TrimSpace(items) != "" {
		if strings.TrimSpace(category) == "" {
			return nil, fmt.Errorf("--items needs --category")
		}
		sel, err := parseSelection(category, items)
		if err != nil {
			return nil, err
		}
		return tui.WithSelection(sel), nil
	}
	if strings.TrimSpace(category) != "" {
		c, err := catalog.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("--category: %w", err)
		}
		return tui.WithCategory(c), nil
	}
	return nil, nil
}

func parseSelection(category, items string) (selection.Selection, error) {
	c, err := catalog.ParseCategory(category)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("--category: %w", err)
	}
	names := splitList(items)
	if len(names) != selection.PairSize {
		return selection.Selection{}, fmt.Errorf("--items must name exactly two items")
	}
	sel, err := selection.FromNames(c, names)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("--items: %w", err)
	}
	return sel, nil
}

func loadPreset(ctx context.Context, name string) (selection.Selection, error) {
	st, err := openStore()
	if err != nil {
		return selection.Selection{}, err
	}
	defer closeStore(st)

	p, err := st.GetPreset(ctx, name)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	return parseSelection(p.Category, strings.Join(p.Items[:], ","))
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
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

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories [category]",
		Short: "List categories or the items of one category",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCategoriesCmd,
	}
}

func runCategoriesCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		rows := make([][]string, 0, len(catalog.Categories()))
		for _, c := range catalog.Categories() {
			rows = append(rows, []string{c.String(), fmt.Sprintf("%d items", len(catalog.Options(c)))})
		}
		if err := stats.RenderTable(out, nil, rows); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	c, err := catalog.ParseCategory(args[0])
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(catalog.Options(c)))
	for _, item := range catalog.Options(c) {
		row := []string{item.Name}
		if c == catalog.Colors {
			row = append(row, item.Color.Hex())
		}
		rows = append(rows, row)
	}
	if err := stats.RenderTable(out, nil, rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveKeys takes the response keys from --keys when it was given and
// from the config file otherwise. Config entries are used as-is, so keys
// like "," or " " survive.
func resolveKeys(cmd *cobra.Command, fromConfig *[]string) ([selection.PairSize]string, error) {
	if fromConfig == nil || cmd.Flags().Changed("keys") {
		return parseKeyList(playKeys)
	}
	return configKeyList(*fromConfig)
}

func configKeyList(values []string) ([selection.PairSize]string, error) {
	var keys [selection.PairSize]string
	if len(values) != selection.PairSize {
		return keys, fmt.Errorf("config keys must name exactly two keys, got %d", len(values))
	}
	for i, v := range values {
		keys[i] = keymap.NormalizeKey(v)
	}
	return keys, nil
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
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
	return fmt.Sprintf(`# mindsight configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# keys = [%q, %q]     # Response keys for the first and second picked item
# skip-key = %q    # Skips the current trial
# quit-key = %q      # Ends the run and shows the summary
# seed = 0              # Random seed for stimuli (0 = time based)
# hints = false         # Show key hints during a run
# fps = %d              # Frames per second (1-%d)
`,
		keymap.DefaultKeys[0],
		keymap.DefaultKeys[1],
		keymap.DefaultSkipKey,
		keymap.DefaultQuitKey,
		defaultFPS,
		maxFPS,
	)
}

func parseKeyList(value string) ([selection.PairSize]string, error) {
	var keys [selection.PairSize]string
	parts := splitList(value)
	if len(parts) != selection.PairSize {
		return keys, fmt.Errorf("--keys must name exactly two keys")
	}
	for i, part := range parts {
		keys[i] = keymap.NormalizeKey(part)
	}
	return keys, nil
}

func validateConfig(cfg model.Config) error {
	for _, k := range cfg.Keys {
		if k == "" {
			return fmt.Errorf("--keys must not be empty")
		}
		if k == "ctrl+c" {
			return fmt.Errorf("--keys must not use ctrl+c")
		}
		if k == cfg.SkipKey || k == cfg.QuitKey {
			return fmt.Errorf("--keys must not use the skip or quit key")
		}
	}
	if cfg.Keys[0] == cfg.Keys[1] {
		return fmt.Errorf("--keys must name two different keys")
	}
	if cfg.SkipKey == "" {
		return fmt.Errorf("--skip-key must not be empty")
	}
	if cfg.QuitKey == "" {
		return fmt.Errorf("--quit-key must not be empty")
	}
	if cfg.SkipKey == cfg.QuitKey {
		return fmt.Errorf("--skip-key and --quit-key must differ")
	}
	if cfg.SkipKey == "ctrl+c" || cfg.QuitKey == "ctrl+c" {
		return fmt.Errorf("--skip-key and --quit-key must not use ctrl+c")
	}
	if cfg.FPS < 1 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
