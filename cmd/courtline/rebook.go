package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtline/courtline/internal/reservation"
	"github.com/courtline/courtline/internal/timeutil"
)

func newRebookCmd() *cobra.Command {
	var (
		encoded string
		date    string
		place   bool
	)

	c := &cobra.Command{
		Use:   "rebook",
		Short: "Seed a new request from an existing record's encoded reservation",
		Long: `Rebook decodes the URL-escaped reservation parameter carried by a rebook
link. The decoded draft keeps the site, priority, and preferences of the
original but its date is reset: pass --date to pick a new one. A corrupt
parameter yields an empty draft instead of an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := reservation.DecodeRebook(encoded)
			if date != "" {
				draft.Date = date
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date:     %s\n", draft.Date)
			fmt.Fprintf(out, "Site:     %s (%d)\n", reservation.SiteName(draft.Site), draft.Site)
			fmt.Fprintf(out, "Priority: %s\n", reservation.PriorityLabel(draft.Priority))
			for i, p := range draft.Preferences {
				fmt.Fprintf(out, "Pref %d:   %s, %s\n", i+1, p.TimeRange(), timeutil.FormatDuration(p.DurationSec))
			}

			if !place {
				return nil
			}
			if draft.Date == reservation.DateUnset || draft.Date == "" {
				return fmt.Errorf("a new --date is required before resubmitting")
			}
			if err := draft.Validate(nowFunc()); err != nil {
				return fmt.Errorf("invalid reservation: %s", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			uid, err := newClient().Submit(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Reservation placed: uid %d\n", uid)
			return nil
		},
	}

	c.Flags().StringVar(&encoded, "encoded", "", "URL-escaped reservation JSON from a rebook link")
	c.Flags().StringVar(&date, "date", "", "new target date (YYYY-MM-DD)")
	c.Flags().BoolVar(&place, "submit", false, "submit the rebooked draft")
	_ = c.MarkFlagRequired("encoded")

	return c
}

func newSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "Show the bookable site catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range reservation.Sites() {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}
