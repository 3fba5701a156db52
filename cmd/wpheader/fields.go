package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/croemmich/wpheader/pkg/exitcodes"
	"github.com/croemmich/wpheader/pkg/header"
)

type fieldListing struct {
	Kind   header.Kind    `json:"kind" yaml:"kind"`
	Fields []header.Field `json:"fields" yaml:"fields"`
}

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields [plugin|theme]",
		Short: "List the header fields that are extracted",
		Long: heredoc.Doc(`
			List each logical field name and the label matched in files, for one kind
			or both. Fields added with --fields-file are included.
		`),
		Example: heredoc.Doc(`
			$ wpheader fields plugin
			$ wpheader fields --fields-file extra-fields.yaml -o json
		`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(header.KindPlugin), string(header.KindTheme)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := header.Kinds
			if len(args) == 1 {
				kind, err := header.ParseKind(args[0])
				if err != nil {
					return exitcodes.Wrap(exitcodes.ExitUnknownKind, err)
				}
				kinds = []header.Kind{kind}
			}

			listings := make([]fieldListing, 0, len(kinds))
			for _, kind := range kinds {
				set, err := a.patterns(kind)
				if err != nil {
					return exitcodes.Wrap(exitcodes.ExitInputConfigurationError, err)
				}
				listing := fieldListing{Kind: kind}
				for _, p := range set.Patterns() {
					listing.Fields = append(listing.Fields, header.Field{Name: p.Field, Label: p.Label})
				}
				listings = append(listings, listing)
			}
			return a.writeOutput(cmd, listings)
		},
	}
}
