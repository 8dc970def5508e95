package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single farming question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.shutdown()
		ctx := cmd.Context()

		assistant, err := a.assistant(ctx)
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		text, err := assistant.Answer(ctx, question)
		if err != nil {
			return fmt.Errorf("answer: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
