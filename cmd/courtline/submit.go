package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/courtline/courtline/internal/reservation"
	"github.com/courtline/courtline/internal/timeutil"
)

func newSubmitCmd() *cobra.Command {
	var (
		date     string
		site     int
		priority int
		prefs    []string
	)

	c := &cobra.Command{
		Use:   "submit",
		Short: "Submit a reservation request with ranked fallback preferences",
		Long: `Submit a reservation request. Each --pref is one fallback option in the
form "HH:MM,minutes[,court,court...]"; preferences are tried in the order
given and at most one of them is booked. Without --pref a single default
preference (16:00, 2 hours, any court) is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := reservation.NewEditor()
			if len(prefs) > 0 {
				parsed := make([]reservation.Preference, 0, len(prefs))
				for _, raw := range prefs {
					p, err := parsePreference(raw)
					if err != nil {
						return err
					}
					parsed = append(parsed, p)
				}
				editor.Seed(parsed)
			}

			draft := reservation.Draft{
				Date:        date,
				Site:        site,
				Priority:    priority,
				Preferences: editor.Preferences(),
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
			fmt.Fprintf(cmd.OutOrStdout(), "Reservation placed: uid %d (%s, %s, %s)\n",
				uid, draft.Date, reservation.SiteName(draft.Site), reservation.PriorityLabel(draft.Priority))
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "target date (YYYY-MM-DD)")
	c.Flags().IntVar(&site, "site", 82, "site id (see 'courtline sites')")
	c.Flags().IntVar(&priority, "priority", 3, "priority, lower books first (0=Critical .. 3=Normal, 4+=Low)")
	c.Flags().StringArrayVar(&prefs, "pref", nil, `fallback preference "HH:MM,minutes[,court...]" (repeatable, order matters)`)
	_ = c.MarkFlagRequired("date")

	return c
}

// parsePreference parses "HH:MM,minutes[,court,court...]".
func parsePreference(raw string) (reservation.Preference, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return reservation.Preference{}, fmt.Errorf("preference %q: want \"HH:MM,minutes[,court...]\"", raw)
	}
	if !strings.Contains(parts[0], ":") {
		return reservation.Preference{}, fmt.Errorf("preference %q: start time must look like HH:MM", raw)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return reservation.Preference{}, fmt.Errorf("preference %q: bad duration: %w", raw, err)
	}

	p := reservation.DefaultPreference()
	p.StartTimeSec = timeutil.ParseTimeOfDay(strings.TrimSpace(parts[0]))
	p.DurationSec = minutes * 60
	for _, court := range parts[2:] {
		p = reservation.AddCourtName(p, strings.TrimSpace(court))
	}
	return p, nil
}
