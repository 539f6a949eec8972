package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCancelCmd() *cobra.Command {
	var (
		uid int64
		yes bool
	)

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a pending reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Do you really want to cancel reservation %d?", uid)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := newClient().Cancel(ctx, uid); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled successfully")
			return nil
		},
	}

	c.Flags().Int64Var(&uid, "uid", 0, "uid of the reservation to cancel")
	c.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	_ = c.MarkFlagRequired("uid")

	return c
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
