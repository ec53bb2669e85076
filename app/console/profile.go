package main

import (
	"github.com/spf13/cobra"
)

var profileName, profileTitle string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Name and title used for posts and chat",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app.ProfileShow()
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change name or title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var name, title *string
		if cmd.Flags().Changed("name") {
			name = &profileName
		}
		if cmd.Flags().Changed("title") {
			title = &profileTitle
		}
		return app.ProfileSet(name, title)
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileTitle, "title", "", "church title, e.g. 집사")
	profileCmd.AddCommand(profileSetCmd)
}
