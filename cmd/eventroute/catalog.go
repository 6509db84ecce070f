package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventroute/pkg/eventroute/setup"
)

func newCatalogCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   "Print the event catalog seeded from config",
		Example: "  eventroute catalog --config app.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}
			svc, ok := setup.Service(settings)
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "eventroute is disabled in config")
				return nil
			}
			// Error events are part of the catalog; hooks are not needed here.
			monSettings := settings
			monSettings.Testing = true
			setup.ErrorMonitoring(cmd.Context(), svc, monSettings)

			catalog := svc.Catalog()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tEVENT\tNAME")
			for _, tag := range slices.Sorted(maps.Keys(catalog)) {
				names := catalog[tag]
				for _, machine := range slices.Sorted(maps.Keys(names)) {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", tag, machine, names[machine])
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
