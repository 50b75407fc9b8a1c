package main

import (
	"context"

	"github.com/spf13/cobra"

	"expoadmin/gcal"
)

var (
	calendarsRefresh bool
	calendarsJSON    bool
	calendarsUse     []string
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List the Google calendars offered in the event form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := gcal.LoadConfig()
		if err != nil {
			return err
		}
		if len(calendarsUse) > 0 {
			cfg.CalendarIDs = calendarsUse
			if err := gcal.SaveConfig(cfg); err != nil {
				return err
			}
			logger.Logf("calendars set to %v", calendarsUse)
		}
		if calendarsRefresh {
			if err := gcal.ClearOptionsCache(); err != nil {
				return err
			}
		}

		srv, err := gcal.GetCalendarService()
		if err != nil {
			logger.LogError(err)
			return err
		}
		options, err := gcal.Source(srv, cfg.CalendarIDs)(context.Background())
		if err != nil {
			logger.LogError(err)
			return err
		}
		if calendarsJSON {
			return writeJSON(cmd.OutOrStdout(), options)
		}
		return printOptions(cmd.OutOrStdout(), options)
	},
}

func init() {
	calendarsCmd.Flags().BoolVar(&calendarsRefresh, "refresh", false, "ignore the cached list")
	calendarsCmd.Flags().BoolVar(&calendarsJSON, "json", false, "print options as JSON")
	calendarsCmd.Flags().StringSliceVar(&calendarsUse, "use", nil, "calendar IDs to offer from now on (\"primary\" for your own)")
	rootCmd.AddCommand(calendarsCmd)
}
