package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the account events published on the bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tDESCRIPTION")
			fmt.Fprintln(w, "-----\t-----------")
			fmt.Fprintf(w, "%s\t%s\n", pubsub.Registered.Name(), "An account was created through the join form")
			fmt.Fprintf(w, "%s\t%s\n", pubsub.RolledBack.Name(), "Credentials were removed after an undelivered password mail")
			return w.Flush()
		},
	}
}
