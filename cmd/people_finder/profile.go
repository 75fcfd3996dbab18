package main

import (
	"encoding/json"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/observability"
	"github.com/jonathan/people-finder/internal/profile"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Show the profile of one person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := profile.NewService(fetch.NewClient(a.cfg.FetchOptions()), nil)
			p, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}
