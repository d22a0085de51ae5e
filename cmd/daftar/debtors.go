package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
)

func parseDebtType(s string) (debt.Type, error) {
	switch t := debt.Type(s); t {
	case debt.TypeAll, debt.TypeGiven, debt.TypeTaken:
		return t, nil
	}

	return "", fmt.Errorf("unknown debt type %q: want all, given or taken", s)
}

func newDebtorsCmd(a *app) *cobra.Command {
	var debtType string

	cmd := &cobra.Command{
		Use:   "debtors",
		Short: "List debtors with their balances, largest unreturned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseDebtType(debtType)
			if err != nil {
				return err
			}

			svc, release, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			summaries, err := svc.Debtors(cmd.Context(), t)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), toDebtorResponseList(summaries))
		},
	}

	cmd.Flags().StringVar(&debtType, "type", string(debt.TypeAll), "debt type: all, given or taken")

	return cmd
}
