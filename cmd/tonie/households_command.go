package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHouseholdsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "households",
		Short: "List the households on the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			households, err := client.Households(cmd.Context())
			if err != nil {
				return err
			}
			if len(households) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No households found")
				return nil
			}

			rows := make([][]string, 0, len(households))
			for _, h := range households {
				rows = append(rows, []string{h.ID, h.Name, h.Access, h.OwnerName, yesNo(h.CanLeave)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Access", "Owner", "Can Leave"},
				rows,
				nil,
			))
			return nil
		},
	}
}
