package main

import (
	"github.com/spf13/cobra"
	"shinkwang-site/app/console/client"
)

var (
	newcomer     client.Newcomer
	newcomerSets []string
)

var newcomerCmd = &cobra.Command{
	Use:   "newcomer",
	Short: "새가족 등록",
}

var newcomerRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register as a newcomer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewcomerRegister(cmd.Context(), newcomer)
	},
}

var newcomerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered newcomers (administrator)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewcomerList(cmd.Context())
	},
}

var newcomerUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change a newcomer's details (administrator)",
	Example: `  sgch newcomer update 3 --set phone=010-1234-5678 --set "description=3월 등록 심방"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		fields, err := parseSets(newcomerSets)
		if err != nil {
			return err
		}
		return app.NewcomerUpdate(cmd.Context(), id, fields)
	},
}

var newcomerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a newcomer (administrator)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.NewcomerDelete(cmd.Context(), id)
	},
}

func init() {
	f := newcomerRegisterCmd.Flags()
	f.StringVar(&newcomer.Name, "name", "", "name (required)")
	f.StringVar(&newcomer.Phone, "phone", "", "phone number")
	f.StringVar(&newcomer.BirthDate, "birth-date", "", "birth date")
	f.StringVar(&newcomer.Address, "address", "", "address")
	f.StringVar(&newcomer.Description, "description", "", "how you came to know the church, prayer requests")

	newcomerUpdateCmd.Flags().StringArrayVar(&newcomerSets, "set", nil, "field=value, repeatable")

	newcomerCmd.AddCommand(newcomerRegisterCmd, newcomerListCmd, newcomerUpdateCmd, newcomerDeleteCmd)
}
