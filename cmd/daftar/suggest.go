package main

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <partial name>",
		Short: "Suggest debtor names containing the given text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			summaries, err := svc.Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), toDebtorResponseList(summaries))
		},
	}
}
