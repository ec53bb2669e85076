package main

import (
	"github.com/spf13/cobra"
)

var sectionSets []string

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Show and edit the editable parts of the site",
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every editable section",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.SectionList(cmd.Context())
	},
}

var sectionShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print the current value of a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.SectionShow(cmd.Context(), args[0])
	},
}

var sectionSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Replace a text section, or patch pastor_profile with --set",
	Example: `  sgch section set hero_title "하나님을 기쁘시게"
  sgch section set pastor_profile --set greeting=환영합니다 --set "paragraphs=첫 문단|둘째 문단"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseSets(sectionSets)
		if err != nil {
			return err
		}
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		return app.SectionSet(cmd.Context(), args[0], value, fields)
	},
}

var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Edit rows of a list section",
}

var rowAddCmd = &cobra.Command{
	Use:     "add <key>",
	Short:   "Add a row",
	Example: `  sgch section row add sermons_list --set title=새설교 --set youtubeUrl=https://youtu.be/... --set startTime=1:30 --set endTime=31:30`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseSets(sectionSets)
		if err != nil {
			return err
		}
		return app.RowSave(cmd.Context(), args[0], 0, fields)
	},
}

var rowUpdateCmd = &cobra.Command{
	Use:   "update <key> <id>",
	Short: "Change fields of a row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRowID(args[1])
		if err != nil {
			return err
		}
		fields, err := parseSets(sectionSets)
		if err != nil {
			return err
		}
		return app.RowSave(cmd.Context(), args[0], id, fields)
	},
}

var rowDeleteCmd = &cobra.Command{
	Use:   "delete <key> <id>",
	Short: "Remove a row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRowID(args[1])
		if err != nil {
			return err
		}
		return app.RowDelete(cmd.Context(), args[0], id)
	},
}

func init() {
	sectionSetCmd.Flags().StringArrayVar(&sectionSets, "set", nil, "field=value, repeatable")
	rowAddCmd.Flags().StringArrayVar(&sectionSets, "set", nil, "field=value, repeatable")
	rowUpdateCmd.Flags().StringArrayVar(&sectionSets, "set", nil, "field=value, repeatable")

	rowCmd.AddCommand(rowAddCmd, rowUpdateCmd, rowDeleteCmd)
	sectionCmd.AddCommand(sectionListCmd, sectionShowCmd, sectionSetCmd, rowCmd)
}
