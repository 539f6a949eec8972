package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/courtline/courtline/internal/client"
	"github.com/courtline/courtline/internal/reservation"
)

func newListCmd() *cobra.Command {
	var (
		page int
		size int
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List your reservations page by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			lister := client.NewLister(newClient())
			if err := lister.SetPageSize(ctx, size); err != nil {
				return err
			}
			for i := 0; i < page && lister.HasNext(); i++ {
				if err := lister.Next(ctx); err != nil {
					return err
				}
			}

			printListing(cmd, lister)
			return nil
		},
	}

	c.Flags().IntVar(&page, "page", 0, "0-based page index")
	c.Flags().IntVar(&size, "size", client.DefaultPageSize, "page size (5, 10 or 20)")

	return c
}

func printListing(cmd *cobra.Command, lister *client.Lister) {
	records := lister.Records()
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tDATE\tSITE\tTIME & COURTS\tPRIORITY\tSTATUS")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			rec.Uid,
			rec.Reservation.Date,
			reservation.SiteName(rec.Reservation.Site),
			describePreferences(rec.Reservation.Preferences),
			reservation.PriorityLabel(rec.Reservation.Priority),
			rec.Status.Code.Label(),
		)
		// Terminal records carry detail worth showing inline.
		if rec.Status.Code == reservation.Success {
			for court, at := range rec.Status.CourtTime {
				fmt.Fprintf(w, "\t\t\t%s %s\t\t\n", court, at)
			}
		} else if rec.Status.Terminal() && rec.Status.Msg != "" {
			fmt.Fprintf(w, "\t\t\t%s\t\t\n", rec.Status.Msg)
		}
	}
	w.Flush()

	first := lister.PageIndex()*lister.PageSize() + 1
	last := first + len(records) - 1
	if len(records) == 0 {
		first = 0
		last = 0
	}
	fmt.Fprintf(out, "%d ~ %d of %d", first, last, lister.Count())
	if lister.HasPrev() {
		fmt.Fprint(out, "  [prev available]")
	}
	if lister.HasNext() {
		fmt.Fprint(out, "  [next available]")
	}
	fmt.Fprintln(out)
}

func describePreferences(prefs []reservation.Preference) string {
	parts := make([]string, 0, len(prefs))
	for _, p := range prefs {
		s := p.TimeRange()
		if len(p.CourtNamePreference) > 0 {
			s += " " + strings.Join(p.CourtNamePreference, ", ")
		} else {
			s += " any court"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
