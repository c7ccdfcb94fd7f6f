package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/tripboard/internal/view"
)

func newListCmd(opts *options) *cobra.Command {
	var favorites bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, db, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			format := opts.format()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.NewInfoView(st.Summary(), format).View())
			for _, p := range st.Points() {
				if favorites && !p.IsFavorite {
					continue
				}
				dest, err := st.DestinationByID(p.DestinationID)
				if err != nil {
					return err
				}
				offers, err := st.OffersByID(p.Type, p.OfferIDs)
				if err != nil {
					return err
				}
				row := view.NewPointView(view.PointViewParams{
					Point:       p,
					Destination: dest,
					Offers:      offers,
					Format:      format,
				})
				fmt.Fprintln(out, row.View())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only print favorite points")
	return cmd
}
