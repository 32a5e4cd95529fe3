package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
)

func newCatalogCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Dump the content catalog",
		Long:  `Print every role record, resource and discussion topic the dashboard shows.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if err := cat.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return cat.WriteJSON(out)
			case "yaml", "yml":
				return cat.WriteYAML(out)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")
	return cmd
}
