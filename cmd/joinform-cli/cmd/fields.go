package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/joinform/internal/joinfields"
	"github.com/nfrund/joinform/internal/siteconfig"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type fieldsOptions struct {
	configPath    string
	validateEmail bool
	format        string
	fs            afero.Fs
}

func newFieldsCmd() *cobra.Command {
	opts := &fieldsOptions{fs: afero.NewOsFs()}
	cmd := &cobra.Command{
		Use:   "fields [field ...]",
		Short: "Print the field order the join form renders",
		Long: `Print the fields the join form renders, in order.

The base list comes from the site settings file (--config) or, when field
ids are given as arguments, from the arguments. Unknown ids are dropped.
Without --config only --validate-email turns on mandatory email
validation; with --config the file's setting (default true) applies.

Examples:
  joinform-cli fields --config site.yaml
  joinform-cli fields fullname email --validate-email
  joinform-cli fields --config site.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to the site settings YAML file")
	cmd.Flags().BoolVar(&opts.validateEmail, "validate-email", false, "force mandatory email validation")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table or json")
	return cmd
}

func runFields(cmd *cobra.Command, opts *fieldsOptions, args []string) error {
	base := siteconfig.Default.JoinFormFields
	validateEmail := opts.validateEmail

	if opts.configPath != "" {
		store := siteconfig.New(opts.fs, opts.configPath)
		if err := store.Load(); err != nil {
			return err
		}
		cfg := store.Current()
		base = cfg.JoinFormFields
		validateEmail = validateEmail || cfg.ValidateEmail
	}
	if len(args) > 0 {
		base = args
	}

	fields := joinfields.ForSite(base, validateEmail)
	out := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	case "table":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tWIDGET\tREQUIRED\tTITLE")
		fmt.Fprintln(w, "----\t------\t--------\t-----")
		for _, f := range fields {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", f.Name, f.Widget, f.Required, f.Title)
		}
		return w.Flush()
	default:
		return fmt.Errorf("invalid format %q: use table or json", opts.format)
	}
}
