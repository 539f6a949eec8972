package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/courtline/courtline/internal/client"
)

var (
	serverURL      string
	requestTimeout time.Duration

	nowFunc = time.Now
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "courtline",
		Short: "Place, list, and cancel priority-ordered court reservation requests",
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the reservation service")
	root.PersistentFlags().DurationVar(&requestTimeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(newSubmitCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCancelCmd())
	root.AddCommand(newRebookCmd())
	root.AddCommand(newSitesCmd())

	return root
}

func newClient() *client.Client {
	return client.New(serverURL, requestTimeout)
}
