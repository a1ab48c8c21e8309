package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/keymap"
)

const howtoWrap = 80

func newHowtoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "howto",
		Short: "Explain how to play",
		Args:  cobra.NoArgs,
		RunE:  runHowtoCmd,
	}
}

func runHowtoCmd(cmd *cobra.Command, _ []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(howtoWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(howtoMarkdown())
	if err != nil {
		return fmt.Errorf("failed to render help: %w", err)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func howtoMarkdown() string {
	var b strings.Builder
	keys := keymap.DefaultKeys
	first := keymap.DisplayName(keys[0])
	second := keymap.DisplayName(keys[1])
	skip := keymap.DisplayName(keymap.DefaultSkipKey)
	quit := keymap.DisplayName(keymap.DefaultQuitKey)

	b.WriteString("# mindsight\n\n")
	b.WriteString("Train how fast you tell two stimuli apart.\n\n")
	b.WriteString("## Setup\n\n")
	b.WriteString("1. Pick a category with the arrow keys and press **Enter** or **Space**.\n")
	b.WriteString("2. Toggle exactly two items with **Enter**, then confirm with **Space**.\n")
	fmt.Fprintf(&b, "3. The first item you picked goes to **%s**, the second to **%s**. Press **Space** to start.\n\n", first, second)
	b.WriteString("## Playing\n\n")
	b.WriteString("One of your two items fills the screen. Press its key as fast as you can.\n\n")
	fmt.Fprintf(&b, "- **%s** / **%s**: answer\n", first, second)
	fmt.Fprintf(&b, "- **%s**: skip the stimulus (not timed, not scored)\n", skip)
	fmt.Fprintf(&b, "- **%s**: end the run and see your score\n", quit)
	b.WriteString("- **Ctrl+C**: leave at once; the score is printed after the terminal is restored\n\n")
	b.WriteString("## Score\n\n")
	b.WriteString("Percent correct counts answered trials only. The average response time covers every answer, right or wrong.\n\n")
	b.WriteString("## Categories\n\n")
	for _, c := range catalog.Categories() {
		opts := catalog.Options(c)
		labels := make([]string, len(opts))
		for i, item := range opts {
			labels[i] = item.Label()
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", c.Title(), strings.Join(labels, ", "))
	}
	b.WriteString("\nKeys, skip, quit and more can be changed with `mindsight config`.\n")
	return b.String()
}
