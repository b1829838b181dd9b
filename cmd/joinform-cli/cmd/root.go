package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the joinform-cli command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "joinform-cli",
		Short: "Inspect the join form configuration",
		Long: `joinform-cli inspects how the join form is configured.

Available commands:
  fields       Print the field order the join form renders
  vocabulary   List the field ids join_form_fields accepts
  events       List the account events published on the bus
  version      Print the version

Use "joinform-cli [command] --help" for more information about a command.`,
		SilenceUsage: true,
	}
	root.AddCommand(newFieldsCmd(), newVocabularyCmd(), newEventsCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
