package main

import (
	"bufio"
	"fmt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"os"
	"strings"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Enter or leave administrator mode",
}

var adminEnterCmd = &cobra.Command{
	Use:   "enter [secret]",
	Short: "Unlock administrator mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := ""
		if len(args) == 1 {
			secret = args[0]
		} else {
			var err error
			if secret, err = readSecret(); err != nil {
				return err
			}
		}
		return app.AdminEnter(cmd.Context(), secret)
	},
}

var adminExitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Leave administrator mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.AdminExit(cmd.Context())
	},
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.AdminStatus(cmd.Context())
	},
}

func init() {
	adminCmd.AddCommand(adminEnterCmd, adminExitCmd, adminStatusCmd)
}

// readSecret prompts without echo on a terminal and reads one line otherwise.
func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "관리자 비밀번호: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}
