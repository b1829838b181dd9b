package cmd

import (
	"fmt"
	"sort"

	"github.com/nfrund/joinform/internal/joinfields"
	"github.com/spf13/cobra"
)

func newVocabularyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocabulary",
		Short: "List the field ids join_form_fields accepts",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Join fields:")
			for _, name := range joinfields.JoinConstants {
				fmt.Fprintf(out, "  %s\n", name)
			}

			var extra []string
			for name := range joinfields.Known() {
				if !joinfields.JoinConstants.Contains(name) && name != joinfields.PasswordCtl {
					extra = append(extra, string(name))
				}
			}
			sort.Strings(extra)
			fmt.Fprintln(out, "User data fields:")
			for _, name := range extra {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
