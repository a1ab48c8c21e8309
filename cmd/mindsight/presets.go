package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/mindsight/internal/model"
	"github.com/verte-zerg/mindsight/internal/stats"
)

var (
	presetCategory string
	presetItems    string
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved category and item pairs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE:  runPresetsListCmd,
	})

	saveCmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runPresetsSaveCmd,
	}
	saveCmd.Flags().StringVar(&presetCategory, "category", "", "category: colors, shapes or letters")
	saveCmd.Flags().StringVar(&presetItems, "items", "", "two comma-separated items")
	_ = saveCmd.MarkFlagRequired("category")
	_ = saveCmd.MarkFlagRequired("items")
	cmd.AddCommand(saveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Remove a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runPresetsRmCmd,
	})
	return cmd
}

func runPresetsListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	presets, err := st.ListPresets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	if len(presets) == 0 {
		logErrf("No presets saved. Save one with: mindsight presets save NAME --category C --items a,b\n")
		return nil
	}
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Name,
			p.Category,
			strings.Join(p.Items[:], ","),
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	if err := stats.RenderTable(cmd.OutOrStdout(), []string{"Name", "Category", "Items", "Saved"}, rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runPresetsSaveCmd(cmd *cobra.Command, args []string) error {
	sel, err := parseSelection(presetCategory, presetItems)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	p := model.Preset{
		Name:      strings.TrimSpace(args[0]),
		Category:  sel.Category.String(),
		Items:     sel.Names(),
		CreatedAt: time.Now(),
	}
	if err := st.SavePreset(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s %s\n", p.Name, p.Category, strings.Join(p.Items[:], ",")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runPresetsRmCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	removed, err := st.DeletePreset(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove preset: %w", err)
	}
	if !removed {
		return fmt.Errorf("preset %q not found", args[0])
	}
	return nil
}
