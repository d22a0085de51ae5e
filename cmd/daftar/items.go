package main

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/daftar/internal/lineitem"
)

func newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items <encoded products>",
		Short: "Decode a products field such as \"Apple*2*10*5|Banana*1*3*3\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), toItemsResponse(lineitem.Text(args[0])))
		},
	}
}
