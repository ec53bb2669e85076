package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"strings"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question...]",
	Short: "Ask the Bible guide; without a question an interactive session starts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return app.Chat(cmd.Context())
		}
		reply := app.Ask(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <sermon-id>",
	Short: "Generate a study summary of a sermon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRowID(args[0])
		if err != nil {
			return err
		}
		return app.Summary(cmd.Context(), id)
	},
}
