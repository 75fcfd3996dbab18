package main

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/observability"
	"github.com/jonathan/people-finder/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		identityType string
		limit        int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search people or organizations",
		Long:  "Run one streaming search and print the normalized results once the stream ends.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := search.NewService(fetch.NewClient(a.cfg.FetchOptions()), nil)
			resp, err := svc.Search(cmd.Context(), search.Request{
				Query:        strings.Join(args, " "),
				IdentityType: search.IdentityType(identityType),
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintResults(resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identityType, "type", "t", string(search.IdentityPerson), "Identity type: person or organization")
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "Maximum number of results (capped at 100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
