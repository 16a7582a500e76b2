package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the Tonie cloud",
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
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Login successful")
			fmt.Fprintf(out, "Account has %d household(s)\n", len(households))
			return nil
		},
	}
}
