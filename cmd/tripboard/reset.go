package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/tripboard/internal/database"
)

func newResetCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every point and restore the sample itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all points; pass --yes to confirm")
			}
			db, err := database.Prepare(cmd.Context(), opts.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Reset(cmd.Context(), db); err != nil {
				return err
			}
			opts.log.Info("itinerary reset")
			fmt.Fprintln(cmd.OutOrStdout(), "itinerary reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
