package main

import (
	"github.com/spf13/cobra"
	"shinkwang-site/app/console/handlers"
	"time"
)

var (
	qtDate      string
	qtBible     string
	qtPrayer    string
	qtGratitude []string
	qtCheck     []string
	qtUncheck   []string
)

var qtCmd = &cobra.Command{
	Use:   "qt",
	Short: "경건생활 체크리스트",
}

var qtGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the checklist of a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.QTGet(cmd.Context(), qtDay())
	},
}

var qtSaveCmd = &cobra.Command{
	Use:     "save",
	Short:   "Update the checklist of a day",
	Example: `  sgch qt save --bible "시편 23편" --prayer 1시간 --gratitude "건강" --gratitude "가족"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		edit := handlers.QTEdit{
			Gratitude: qtGratitude,
			Check:     qtCheck,
			Uncheck:   qtUncheck,
		}
		if cmd.Flags().Changed("bible") {
			edit.BibleText = &qtBible
		}
		if cmd.Flags().Changed("prayer") {
			edit.PrayerTime = &qtPrayer
		}
		return app.QTSave(cmd.Context(), qtDay(), edit)
	},
}

func qtDay() string {
	if qtDate != "" {
		return qtDate
	}
	return handlers.QTDateKey(time.Now())
}

func init() {
	qtCmd.PersistentFlags().StringVar(&qtDate, "date", "", "day as YYYY-M-D (default today)")

	qtSaveCmd.Flags().StringVar(&qtBible, "bible", "", "passage read today")
	qtSaveCmd.Flags().StringVar(&qtPrayer, "prayer", "", "prayer time, e.g. 30분; marks prayer done")
	qtSaveCmd.Flags().StringArrayVar(&qtGratitude, "gratitude", nil, "gratitude note, repeatable in order")
	qtSaveCmd.Flags().StringSliceVar(&qtCheck, "check", nil, "mark items done: bible, prayer, gratitude")
	qtSaveCmd.Flags().StringSliceVar(&qtUncheck, "uncheck", nil, "mark items not done")

	qtCmd.AddCommand(qtGetCmd, qtSaveCmd)
}
