package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newToniesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tonies",
		Short: "List the Creative Tonies in a household",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			household, err := ctx.household(cmd.Context(), client)
			if err != nil {
				return err
			}
			tonies, err := client.CreativeTonies(cmd.Context(), household)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tonies) == 0 {
				fmt.Fprintf(out, "No Creative Tonies in household %s\n", household.Name)
				return nil
			}

			rows := make([][]string, 0, len(tonies))
			for _, tonie := range tonies {
				rows = append(rows, []string{
					tonie.ID,
					tonie.Name,
					strconv.Itoa(len(tonie.Chapters)),
					formatSeconds(tonie.SecondsPresent),
					formatSeconds(tonie.SecondsRemaining),
					yesNo(tonie.Transcoding),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Chapters", "Used", "Free", "Transcoding"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}
