package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/agroguide/agroguide/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive advisory chat over the indexed corpus",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.shutdown()

		assistant, err := a.assistant(cmd.Context())
		if err != nil {
			return err
		}

		mode := "template answers"
		if a.cfg.Generation.Enabled {
			mode = "generative answers (" + a.cfg.Generation.Model + ")"
		}
		summary := fmt.Sprintf("index: %s | %s | Ctrl+C to quit", a.cfg.Index.Dir, mode)

		p := tea.NewProgram(tui.New(assistant, summary), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run chat: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
