package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"shinkwang-site/app/console/client"
	"shinkwang-site/app/console/handlers"
	"shinkwang-site/app/console/inits"
	"shinkwang-site/app/console/prefs"
	"syscall"
)

var (
	flagConfigDir string

	app *handlers.App
	l   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "sgch",
	Short:         "성남신광교회 홈페이지 콘솔",
	Long:          "Reads and edits the Seongnam Shinkwang Church site from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// load config
		cfg, err := inits.Config(flagConfigDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// init logger
		l, err = inits.Logger(cfg.Debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		l.Debug("logger initialized", zap.String("server", cfg.ServerEndpoint))

		p, err := prefs.Load(cfg.PrefsFile)
		if err != nil {
			return err
		}

		api := client.New(cfg.ServerEndpoint, cfg.RequestTimeout)
		app = handlers.NewApp(cfg, l, api, p, os.Stdin, os.Stdout)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = l.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", inits.DefaultConfigDir(), "directory holding config.yaml and prefs")

	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(qtCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(newcomerCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "오류:", err)
		stop()
		os.Exit(1)
	}
}
